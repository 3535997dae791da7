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

package device

import (
	"fmt"
	"math"
	"strings"
)

// ButtonState is the state of a single digital button.
type ButtonState bool

// List of valid ButtonState values.
const (
	Released ButtonState = false
	Pressed  ButtonState = true
)

// Buttons is a bitfield of gamepad buttons.
type Buttons uint32

// List of gamepad buttons.
const (
	DPadUp               Buttons = 0x1
	DPadDown             Buttons = 0x2
	DPadLeft             Buttons = 0x4
	DPadRight            Buttons = 0x8
	Start                Buttons = 0x10
	Back                 Buttons = 0x20
	LeftStick            Buttons = 0x40
	RightStick           Buttons = 0x80
	LeftShoulder         Buttons = 0x100
	RightShoulder        Buttons = 0x200
	BigButton            Buttons = 0x800
	A                    Buttons = 0x1000
	B                    Buttons = 0x2000
	X                    Buttons = 0x4000
	Y                    Buttons = 0x8000
	LeftThumbstickLeft   Buttons = 0x200000
	RightTrigger         Buttons = 0x400000
	LeftTrigger          Buttons = 0x800000
	RightThumbstickUp    Buttons = 0x1000000
	RightThumbstickDown  Buttons = 0x2000000
	RightThumbstickRight Buttons = 0x4000000
	RightThumbstickLeft  Buttons = 0x8000000
	LeftThumbstickUp     Buttons = 0x10000000
	LeftThumbstickDown   Buttons = 0x20000000
	LeftThumbstickRight  Buttons = 0x40000000
)

var namedButtons = map[string]Buttons{
	"DPadUp":               DPadUp,
	"DPadDown":             DPadDown,
	"DPadLeft":             DPadLeft,
	"DPadRight":            DPadRight,
	"Start":                Start,
	"Back":                 Back,
	"LeftStick":            LeftStick,
	"RightStick":           RightStick,
	"LeftShoulder":         LeftShoulder,
	"RightShoulder":        RightShoulder,
	"BigButton":            BigButton,
	"A":                    A,
	"B":                    B,
	"X":                    X,
	"Y":                    Y,
	"LeftThumbstickLeft":   LeftThumbstickLeft,
	"RightTrigger":         RightTrigger,
	"LeftTrigger":          LeftTrigger,
	"RightThumbstickUp":    RightThumbstickUp,
	"RightThumbstickDown":  RightThumbstickDown,
	"RightThumbstickRight": RightThumbstickRight,
	"RightThumbstickLeft":  RightThumbstickLeft,
	"LeftThumbstickUp":     LeftThumbstickUp,
	"LeftThumbstickDown":   LeftThumbstickDown,
	"LeftThumbstickRight":  LeftThumbstickRight,
}

// ParseButton converts a button name to a Buttons value.
func ParseButton(s string) (Buttons, error) {
	if b, ok := namedButtons[strings.TrimSpace(s)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown button name (%s)", s)
}

// Vector2 is a two dimensional vector.
type Vector2 struct {
	X, Y float32
}

// Length of the vector.
func (v Vector2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// GamePadDPad is the state of the directional pad.
type GamePadDPad struct {
	Up, Down, Left, Right ButtonState
}

// GamePadThumbSticks is the state of both analog sticks.
type GamePadThumbSticks struct {
	Left, Right Vector2
}

// GamePadTriggers is the state of both analog triggers. Values are in the
// range 0 to 1.
type GamePadTriggers struct {
	Left, Right float32
}

// GamePadState is the state of a gamepad at a single moment.
type GamePadState struct {
	ThumbSticks GamePadThumbSticks
	Triggers    GamePadTriggers
	Buttons     Buttons
	DPad        GamePadDPad
	IsConnected bool
}

// IsButtonDown returns true if the button is held. The directional pad
// buttons are also reported through the DPad field.
func (st GamePadState) IsButtonDown(b Buttons) bool {
	if st.Buttons&b == b {
		return true
	}
	switch b {
	case DPadUp:
		return bool(st.DPad.Up)
	case DPadDown:
		return bool(st.DPad.Down)
	case DPadLeft:
		return bool(st.DPad.Left)
	case DPadRight:
		return bool(st.DPad.Right)
	}
	return false
}

// GamePadData is the double-buffered gamepad state.
type GamePadData struct {
	Previous GamePadState
	Current  GamePadState
	Attached bool
}

// Update moves the current state into the previous state and sets the new
// current state.
func (d *GamePadData) Update(st GamePadState) {
	d.Previous = d.Current
	d.Current = st
	d.Attached = st.IsConnected
}

// UpdateNull is the same as Update() with an empty state. The Attached field
// is not changed.
func (d *GamePadData) UpdateNull() {
	d.Previous = d.Current
	d.Current = GamePadState{}
}

// NumGamePads is the number of gamepads supported by the host.
const NumGamePads = 4

// Inputs is the complete input state of the host.
type Inputs struct {
	Keyboard KeyboardData
	Mouse    MouseData
	GamePads [NumGamePads]GamePadData

	// whether the host is accepting input from physical devices
	Active bool

	// index of the gamepad used by the player
	Gamepad int
}

// FirstAttached returns the first gamepad that is attached or nil if none
// are attached.
func (in *Inputs) FirstAttached() *GamePadData {
	for i := range in.GamePads {
		if in.GamePads[i].Attached {
			return &in.GamePads[i]
		}
	}
	return nil
}

// Player returns the gamepad used by the player.
func (in *Inputs) Player() *GamePadData {
	if in.Gamepad < 0 || in.Gamepad >= NumGamePads {
		return &in.GamePads[0]
	}
	return &in.GamePads[in.Gamepad]
}
