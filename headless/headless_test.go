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

package headless_test

import (
	"context"
	"testing"

	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/headless"
	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/manager"
	"github.com/tasworks/tasengine/settings"
	"github.com/tasworks/tasengine/test"
)

type setup struct {
	game   *headless.Game
	script *headless.Script
	mgr    *manager.Manager
	cursor *inputs.Controller
	runner *headless.Runner
}

func newSetup(t *testing.T, movie string, schedule []headless.SceneChange) *setup {
	t.Helper()

	s, err := settings.NewSettings("")
	test.DemandSuccess(t, err)

	src, err := inputs.NewStaticSourceFromYAML([]byte(movie))
	test.DemandSuccess(t, err)

	su := &setup{
		game:   headless.NewGame(schedule),
		script: &headless.Script{},
		cursor: inputs.NewController(src),
	}
	su.game.AttachLive(su.script)

	info := gameinfo.NewHolder(su.game)

	su.mgr, err = manager.NewManager(manager.Config{
		Host:       su.game,
		Cursor:     su.cursor,
		Hotkeys:    hotkeys.NewHotkeys(su.script, s),
		Settings:   s,
		Capability: su.game,
		GameInfo:   info,
	})
	test.DemandSuccess(t, err)

	su.runner = &headless.Runner{
		Game:     su.game,
		Engine:   su.mgr,
		GameInfo: info,
		Advance:  []headless.Advancer{su.script},
	}

	return su
}

func TestPlayMovie(t *testing.T) {
	su := newSetup(t, "- frames: 10\n  actions: R\n- frames: 5\n", nil)
	su.script.Press(0, 1, device.KeyRightControl, device.KeyOemOpenBrackets)

	test.ExpectSuccess(t, su.runner.Run(context.Background(), 20, false))
	test.ExpectEquality(t, su.runner.Ticks(), uint64(20))

	st := su.game.State()
	test.ExpectEquality(t, st.Frame, 20)
	test.ExpectApproximate(t, st.X, 10, 0.001)
	test.ExpectApproximate(t, st.Y, 0, 0.001)

	// the run ended when the movie ran out
	test.ExpectFailure(t, su.mgr.Running())
	test.ExpectEquality(t, su.cursor.CurrentFrame(), 0)
}

func TestJump(t *testing.T) {
	su := newSetup(t, "- frames: 1\n  actions: J\n- frames: 1\n", nil)
	su.script.Press(0, 1, device.KeyRightControl, device.KeyOemOpenBrackets)

	su.runner.Frame()
	su.runner.Frame()
	test.ExpectApproximate(t, su.game.State().Y, -4, 0.001)
	su.runner.Frame()
	test.ExpectApproximate(t, su.game.State().VelY, -3.75, 0.001)
	test.ExpectApproximate(t, su.game.State().Y, -7.75, 0.001)
}

func TestContextCancelled(t *testing.T) {
	su := newSetup(t, "- frames: 1\n", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.ExpectFailure(t, su.runner.Run(ctx, 0, false))
	test.ExpectEquality(t, su.runner.Ticks(), uint64(0))
}

func TestSchedule(t *testing.T) {
	g := headless.NewGame([]headless.SceneChange{
		{Frame: 5, Scene: host.Level},
		{Frame: 0, Scene: host.LevelLoader},
	})
	test.ExpectEquality(t, g.Scene(), host.LevelLoader)

	// saving is refused while loading
	test.ExpectFailure(t, g.SaveState())

	for i := 0; i < 5; i++ {
		g.Update()
	}
	test.ExpectEquality(t, g.Scene(), host.Level)
	test.ExpectEquality(t, g.FrameCounter(), uint64(5))
}

func TestSaveAndLoad(t *testing.T) {
	g := headless.NewGame(nil)
	test.ExpectFailure(t, g.LoadState())
	test.ExpectFailure(t, g.IsSaved())

	g.Update()
	test.ExpectSuccess(t, g.SaveState())
	test.ExpectSuccess(t, g.IsSaved())
	test.ExpectSuccess(t, g.SavedByTas())

	g.Update()
	g.Update()
	test.ExpectEquality(t, g.State().Frame, 3)

	test.ExpectSuccess(t, g.LoadState())
	test.ExpectEquality(t, g.State().Frame, 1)

	// the engine frame counter is not rewound
	test.ExpectEquality(t, g.FrameCounter(), uint64(3))

	g.SaveStateManually()
	test.ExpectSuccess(t, g.IsSaved())
	test.ExpectFailure(t, g.SavedByTas())

	g.ClearState()
	test.ExpectFailure(t, g.IsSaved())
}

type engine struct {
	loops float64
	skip  bool
	ticks int
}

func (e *engine) Tick()               { e.ticks++ }
func (e *engine) FrameLoops() float64 { return e.loops }
func (e *engine) SkipFrame() bool     { return e.skip }
func (e *engine) Running() bool       { return false }
func (e *engine) Recording() bool     { return false }

func TestFrameLoops(t *testing.T) {
	g := headless.NewGame(nil)
	e := &engine{loops: 3}
	r := &headless.Runner{Game: g, Engine: e}

	r.Frame()
	test.ExpectEquality(t, e.ticks, 3)
	test.ExpectEquality(t, g.State().Frame, 3)

	// slow forwarding runs the manager but not the game
	e.loops = 0.5
	e.skip = true
	r.Frame()
	test.ExpectEquality(t, e.ticks, 4)
	test.ExpectEquality(t, g.State().Frame, 3)

	// but the engine frame counter still moves on
	test.ExpectEquality(t, g.FrameCounter(), uint64(4))
}

func TestSlowForward(t *testing.T) {
	su := newSetup(t, "- frames: 100\n  actions: R\n", nil)
	su.script.Press(0, 1, device.KeyRightControl, device.KeyOemOpenBrackets)

	// right stick pushed halfway to the left
	su.script.SetGamePad(device.GamePadState{
		IsConnected: true,
		ThumbSticks: device.GamePadThumbSticks{Right: device.Vector2{X: -0.5}},
	})

	const frames = 41
	for i := 0; i < frames; i++ {
		su.runner.Frame()
	}
	test.ExpectEquality(t, su.runner.Ticks(), uint64(frames))
	test.ExpectApproximate(t, su.mgr.FrameLoops(), 0.5, 0.001)
	test.ExpectSuccess(t, su.mgr.Running())

	// every tick is counted by the engine but only about half of them play
	// a frame of the movie
	test.ExpectEquality(t, su.game.FrameCounter(), uint64(frames))
	played := su.cursor.CurrentFrame()
	if played < 19 || played > 22 {
		t.Errorf("expected about half of %d ticks to play a frame, got %d", frames, played)
	}

	// the game only updates on ticks that play a frame. the extra update is
	// from the tick before the run was enabled
	test.ExpectEquality(t, su.game.State().Frame, played+1)
}

func TestScript(t *testing.T) {
	s := &headless.Script{}
	s.Press(1, 2, device.KeyOemPlus)

	test.ExpectFailure(t, s.Keyboard().IsKeyDown(device.KeyOemPlus))
	s.Advance()
	test.ExpectSuccess(t, s.Keyboard().IsKeyDown(device.KeyOemPlus))
	s.Advance()
	test.ExpectSuccess(t, s.Keyboard().IsKeyDown(device.KeyOemPlus))
	s.Advance()
	test.ExpectFailure(t, s.Keyboard().IsKeyDown(device.KeyOemPlus))
	test.ExpectEquality(t, s.Tick(), uint64(3))
}

func TestStop(t *testing.T) {
	g := headless.NewGame(nil)
	e := &engine{loops: 1}
	r := &headless.Runner{Game: g, Engine: e}
	r.Stop = func() bool { return e.ticks >= 5 }

	test.ExpectSuccess(t, r.Run(context.Background(), 0, false))
	test.ExpectEquality(t, e.ticks, 5)
}
