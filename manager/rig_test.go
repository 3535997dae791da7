// This file is part of tasengine.
//
// tasengine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tasengine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tasengine.  If not, see <https://www.gnu.org/licenses/>.

package manager_test

import (
	"testing"

	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/manager"
	"github.com/tasworks/tasengine/savestates"
	"github.com/tasworks/tasengine/settings"
	"github.com/tasworks/tasengine/studio"
	"github.com/tasworks/tasengine/test"
)

type fakeHost struct {
	scene   host.Scene
	active  bool
	fc      uint64
	in      device.Inputs
	pads    [device.NumGamePads]device.GamePadState
	virtual int
}

func (h *fakeHost) Scene() host.Scene                      { return h.scene }
func (h *fakeHost) IsActive() bool                         { return h.active }
func (h *fakeHost) FrameCounter() uint64                   { return h.fc }
func (h *fakeHost) Inputs() *device.Inputs                 { return &h.in }
func (h *fakeHost) UpdateVirtualInputs()                   { h.virtual++ }
func (h *fakeHost) GamePadState(i int) device.GamePadState { return h.pads[i] }
func (h *fakeHost) Version() string                        { return "fake 1.0" }

type fakeDevice struct {
	kb  device.KeyboardState
	pad device.GamePadState
}

func (d *fakeDevice) Keyboard() device.KeyboardState { return d.kb }
func (d *fakeDevice) GamePad() device.GamePadState   { return d.pad }

type fakeCapability struct {
	saved      bool
	refuseLoad bool
	saves      int
	loads      int
	clears     int
}

func (c *fakeCapability) SaveState() bool {
	c.saves++
	c.saved = true
	return true
}

func (c *fakeCapability) LoadState() bool {
	c.loads++
	return c.saved && !c.refuseLoad
}

func (c *fakeCapability) ClearState() {
	c.clears++
	c.saved = false
}

func (c *fakeCapability) IsSaved() bool    { return c.saved }
func (c *fakeCapability) SavedByTas() bool { return c.saved }

type fakeStudio struct {
	infos []studio.Info
}

func (s *fakeStudio) Send(inf studio.Info) {
	s.infos = append(s.infos, inf)
}

type hook struct {
	enabled  int
	disabled int
	onEnable func()
}

func (h *hook) OnEnable() {
	h.enabled++
	if h.onEnable != nil {
		h.onEnable()
	}
}

func (h *hook) OnDisable() {
	h.disabled++
}

type observer struct {
	frames []int
}

func (o *observer) PlayedFrame(frame int, _ inputs.Frame) {
	o.frames = append(o.frames, frame)
}

type rig struct {
	mgr      *manager.Manager
	hk       *hotkeys.Hotkeys
	obs      *observer
	host     *fakeHost
	dev      *fakeDevice
	cap      *fakeCapability
	src      *inputs.StaticSource
	cursor   *inputs.Controller
	studio   *fakeStudio
	hook     *hook
	settings *settings.Settings
	info     *gameinfo.Holder
}

// newRig creates a manager playing the movie. the capability is only
// installed if withSaveTool is true.
func newRig(t *testing.T, movie string, withSaveTool bool) *rig {
	t.Helper()
	return newRigWith(t, movie, withSaveTool, nil)
}

// newRigWith is like newRig but the configuration can be altered before the
// manager is created.
func newRigWith(t *testing.T, movie string, withSaveTool bool, configure func(*manager.Config)) *rig {
	t.Helper()

	s, err := settings.NewSettings("")
	test.DemandSuccess(t, err)

	src, err := inputs.NewStaticSourceFromYAML([]byte(movie))
	test.DemandSuccess(t, err)

	r := &rig{
		host:     &fakeHost{scene: host.Level, active: true},
		dev:      &fakeDevice{},
		src:      src,
		cursor:   inputs.NewController(src),
		studio:   &fakeStudio{},
		hook:     &hook{},
		settings: s,
		info:     gameinfo.NewHolder(nil),
		obs:      &observer{},
	}
	r.hk = hotkeys.NewHotkeys(r.dev, s)

	cfg := manager.Config{
		Host:     r.host,
		Cursor:   r.cursor,
		Hotkeys:  r.hk,
		Settings: s,
		Studio:   r.studio,
		GameInfo: r.info,
		Hooks:    []manager.Hook{r.hook},

		Observers: []manager.FrameObserver{r.obs},
	}

	if withSaveTool {
		r.cap = &fakeCapability{}
		cfg.Capability = r.cap
	}

	if configure != nil {
		configure(&cfg)
	}

	r.mgr, err = manager.NewManager(cfg)
	test.DemandSuccess(t, err)

	return r
}

func (r *rig) tick() {
	r.mgr.Tick()
	r.host.fc++
}

func (r *rig) ticks(n int) {
	for i := 0; i < n; i++ {
		r.tick()
	}
}

// press holds the keys for one tick and then releases them for one tick
func (r *rig) press(keys ...device.Keys) {
	r.dev.kb = device.NewKeyboardState(keys...)
	r.tick()
	r.dev.kb = device.KeyboardState{}
	r.tick()
}

// a savestates.Capability must be satisfied by the fake
var _ savestates.Capability = (*fakeCapability)(nil)
