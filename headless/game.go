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

package headless

import (
	"fmt"
	"sort"

	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/logger"
)

// Version of the headless game reported to the studio.
const Version = "headless 1.0"

// SceneChange moves the game to a new scene at the given game frame.
type SceneChange struct {
	Frame int
	Scene host.Scene
}

// State is everything the game saves in a savestate.
type State struct {
	Frame int
	Scene host.Scene

	X, Y       float32
	VelX, VelY float32

	Dashes   int
	DashTime float32
}

// Game implements host.Host, savestates.Capability and gameinfo.Provider.
type Game struct {
	state    State
	schedule []SceneChange

	// engine frame counter. unlike the game frame it is never rewound
	fc uint64

	in     device.Inputs
	active bool

	// the live devices of the player. nil means no devices are attached
	live hotkeys.Device

	saved      *State
	savedByTas bool

	// number of calls to UpdateVirtualInputs()
	virtual int
}

// NewGame is the preferred method of initialisation for the Game type. The
// schedule is sorted by frame. An empty schedule leaves the game in the Level
// scene.
func NewGame(schedule []SceneChange) *Game {
	g := &Game{
		schedule: append([]SceneChange(nil), schedule...),
		active:   true,
	}
	sort.SliceStable(g.schedule, func(i, j int) bool {
		return g.schedule[i].Frame < g.schedule[j].Frame
	})
	g.state.Scene = g.sceneAt(0)
	return g
}

func (g *Game) String() string {
	return fmt.Sprintf("frame %d %s pos %.2f,%.2f", g.state.Frame, g.state.Scene, g.state.X, g.state.Y)
}

func (g *Game) sceneAt(frame int) host.Scene {
	sc := host.Level
	for _, s := range g.schedule {
		if s.Frame > frame {
			break
		}
		sc = s.Scene
	}
	return sc
}

// AttachLive sets the device polled for the player's live input.
func (g *Game) AttachLive(dev hotkeys.Device) {
	g.live = dev
}

// SetActive changes whether the game window has focus.
func (g *Game) SetActive(active bool) {
	g.active = active
}

// State returns a copy of the current game state.
func (g *Game) State() State {
	return g.state
}

// VirtualUpdates returns the number of times the virtual inputs have been
// refreshed.
func (g *Game) VirtualUpdates() int {
	return g.virtual
}

// Scene implements the host.Host interface.
func (g *Game) Scene() host.Scene {
	return g.state.Scene
}

// IsActive implements the host.Host interface.
func (g *Game) IsActive() bool {
	return g.active
}

// FrameCounter implements the host.Host interface.
func (g *Game) FrameCounter() uint64 {
	return g.fc
}

// Inputs implements the host.Host interface.
func (g *Game) Inputs() *device.Inputs {
	return &g.in
}

// UpdateVirtualInputs implements the host.Host interface.
func (g *Game) UpdateVirtualInputs() {
	g.virtual++
}

// GamePadState implements the host.Host interface.
func (g *Game) GamePadState(i int) device.GamePadState {
	if g.live == nil || i != g.in.Gamepad {
		return device.GamePadState{}
	}
	return g.live.GamePad()
}

// Version implements the host.Host interface.
func (g *Game) Version() string {
	return Version
}

// Poll copies the state of the live devices into the game's inputs. Devices
// are ignored when the game does not have focus.
func (g *Game) Poll() {
	g.in.Active = g.active
	if g.live == nil || !g.active {
		return
	}
	g.in.Keyboard.Update(g.live.Keyboard())
	g.in.Player().Update(g.live.GamePad())
}

// SaveState implements the savestates.Capability interface. The game refuses
// to save while loading.
func (g *Game) SaveState() bool {
	if host.IsLoading(g.state.Scene) {
		return false
	}
	st := g.state
	g.saved = &st
	g.savedByTas = true
	logger.Logf(logger.Allow, "headless", "saved state at frame %d", st.Frame)
	return true
}

// SaveStateManually is a savestate made by the player rather than by the
// manager.
func (g *Game) SaveStateManually() {
	st := g.state
	g.saved = &st
	g.savedByTas = false
}

// LoadState implements the savestates.Capability interface.
func (g *Game) LoadState() bool {
	if g.saved == nil {
		return false
	}
	g.state = *g.saved
	logger.Logf(logger.Allow, "headless", "loaded state at frame %d", g.state.Frame)
	return true
}

// ClearState implements the savestates.Capability interface.
func (g *Game) ClearState() {
	g.saved = nil
	g.savedByTas = false
}

// IsSaved implements the savestates.Capability interface.
func (g *Game) IsSaved() bool {
	return g.saved != nil
}

// SavedByTas implements the savestates.Capability interface.
func (g *Game) SavedByTas() bool {
	return g.saved != nil && g.savedByTas
}

const (
	runSpeed   = 1.0
	jumpSpeed  = -4.0
	gravity    = 0.25
	dashLength = 5.0
	dashFrames = 10
)

// Idle moves the engine frame counter on without updating the game. It should
// be called on ticks where the update is skipped.
func (g *Game) Idle() {
	g.fc++
}

// Update advances the game by one frame using the current inputs.
func (g *Game) Update() {
	g.fc++
	g.state.Frame++
	g.state.Scene = g.sceneAt(g.state.Frame)

	if g.state.Scene != host.Level {
		return
	}

	pad := g.in.Player()
	cur := pad.Current
	prev := pad.Previous

	var dx, dy float32
	if cur.IsButtonDown(device.DPadLeft) {
		dx--
	}
	if cur.IsButtonDown(device.DPadRight) {
		dx++
	}
	if cur.IsButtonDown(device.DPadUp) {
		dy--
	}
	if cur.IsButtonDown(device.DPadDown) {
		dy++
	}

	// the analog stick is only used when the dpad is released
	if dx == 0 && dy == 0 && cur.ThumbSticks.Left.Length() > 0 {
		dx = cur.ThumbSticks.Left.X
		dy = -cur.ThumbSticks.Left.Y
	}

	g.state.VelX = dx * runSpeed

	onFloor := g.state.Y >= 0
	if onFloor {
		g.state.Y = 0
		g.state.VelY = 0
		g.state.Dashes = 1
		if cur.IsButtonDown(device.A) && !prev.IsButtonDown(device.A) {
			g.state.VelY = jumpSpeed
		}
	} else {
		g.state.VelY += gravity
	}

	if g.state.DashTime > 0 {
		g.state.DashTime--
	} else if g.state.Dashes > 0 && cur.IsButtonDown(device.B) && !prev.IsButtonDown(device.B) {
		g.state.Dashes--
		g.state.DashTime = dashFrames
		g.state.X += dx * dashLength
		g.state.Y += dy * dashLength
	}

	g.state.X += g.state.VelX
	g.state.Y += g.state.VelY
	if g.state.Y > 0 {
		g.state.Y = 0
	}
}

// GameInfo implements the gameinfo.Provider interface.
func (g *Game) GameInfo() gameinfo.Info {
	pos := fmt.Sprintf("Pos: %.2f, %.2f", g.state.X, g.state.Y)
	vel := fmt.Sprintf("Speed: %.2f, %.2f", g.state.VelX, g.state.VelY)
	time := fmt.Sprintf("%d.%03d", g.state.Frame/60, (g.state.Frame%60)*1000/60)

	return gameinfo.Info{
		Status:            fmt.Sprintf("%s\n%s\nDashes: %d\n[%s]", pos, vel, g.state.Dashes, time),
		StatusWithoutTime: fmt.Sprintf("%s\n%s\nDashes: %d", pos, vel, g.state.Dashes),
		LevelName:         "headless",
		ChapterTime:       time,
		FileTime:          fmt.Sprintf("%d", g.fc),
		LastPos:           pos,
		LastVel:           vel,
		DashTime:          g.state.DashTime,
	}
}
