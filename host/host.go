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

// Package host defines the contract between tasengine and the game it drives.
// The game engine is never called directly by any other package.
package host

import "github.com/tasworks/tasengine/device"

// Scene classifies the host's current scene.
type Scene int

// List of valid Scene values.
const (
	Other Scene = iota
	Level
	LevelLoader
	LevelExit
	GameLoader
	Overworld
	LevelExitToLobby
)

func (s Scene) String() string {
	switch s {
	case Level:
		return "level"
	case LevelLoader:
		return "level loader"
	case LevelExit:
		return "level exit"
	case GameLoader:
		return "game loader"
	case Overworld:
		return "overworld"
	case LevelExitToLobby:
		return "level exit to lobby"
	}
	return "other"
}

// IsLoading returns true if the scene is one where the host is loading or
// unloading a level.
func IsLoading(s Scene) bool {
	switch s {
	case LevelLoader, LevelExit, GameLoader, LevelExitToLobby:
		return true
	}
	return false
}

// InputSafe returns true if synthetic input can be applied in the scene
// without the risk of it landing somewhere unintended.
func InputSafe(s Scene) bool {
	switch s {
	case Level, LevelLoader, LevelExit:
		return true
	}
	return false
}

// Host is the game engine being driven.
type Host interface {
	Scene() Scene

	// whether the host window has focus
	IsActive() bool

	// number of frames the host has run for since it started
	FrameCounter() uint64

	// the input state read by the host's input system. the returned value
	// is written to directly by tasengine
	Inputs() *device.Inputs

	// recalculates the host's virtual inputs (the bindings between device
	// state and game actions) from the current device state
	UpdateVirtualInputs()

	// the state of the physical gamepad with the specified index
	GamePadState(i int) device.GamePadState

	// version string reported to the studio
	Version() string
}
