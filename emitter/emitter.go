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

// Package emitter translates frames of a movie into the device state read by
// the host's input system.
//
// The translation is a fixed table. Every action maps to exactly one gamepad
// button, with the exception of the directional actions which are reported
// through the DPad and the Feather action which is reported through the left
// analog stick. The Journal action additionally drives the left trigger axis
// and the Confirm action is reported through the keyboard.
package emitter

import (
	"math"

	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/inputs"
)

// Target is the recipient of emitted device state.
type Target interface {
	Inputs() *device.Inputs
	UpdateVirtualInputs()
}

// Binding of action to gamepad button.
type Binding struct {
	Action inputs.Actions
	Button device.Buttons
}

// Bindings is the table used by Apply() and Capture().
var Bindings = []Binding{
	{inputs.Jump, device.A},
	{inputs.Jump2, device.Y},
	{inputs.Dash, device.B},
	{inputs.Dash2, device.X},
	{inputs.Grab, device.LeftShoulder},
	{inputs.Start, device.Start},
	{inputs.Restart, device.Back},
	{inputs.Journal, device.LeftTrigger},
	{inputs.DemoDash, device.RightShoulder},
	{inputs.DemoDash2, device.RightStick},
	{inputs.Up, device.DPadUp},
	{inputs.Down, device.DPadDown},
	{inputs.Left, device.DPadLeft},
	{inputs.Right, device.DPadRight},
}

// ConfirmKey is the keyboard key used for the Confirm action.
const ConfirmKey = device.KeyC

// Emitter writes frames to a Target.
type Emitter struct {
	target Target
}

// NewEmitter is the preferred method of initialisation for the Emitter type.
func NewEmitter(target Target) *Emitter {
	return &Emitter{target: target}
}

// GamePadState returns the gamepad state for the frame.
func GamePadState(f inputs.Frame) device.GamePadState {
	st := device.GamePadState{IsConnected: true}

	if f.Actions.Has(inputs.Feather) {
		st.ThumbSticks.Left = f.AngleVector()
	} else {
		st.DPad = device.GamePadDPad{
			Up:    device.ButtonState(f.Actions.Has(inputs.Up)),
			Down:  device.ButtonState(f.Actions.Has(inputs.Down)),
			Left:  device.ButtonState(f.Actions.Has(inputs.Left)),
			Right: device.ButtonState(f.Actions.Has(inputs.Right)),
		}
	}

	if f.Actions.Has(inputs.Journal) {
		st.Triggers.Left = 1
	}

	for _, b := range Bindings {
		if f.Actions.Has(b.Action) {
			st.Buttons |= b.Button
		}
	}

	// directions are reported only through the analog stick in feather mode.
	// IsButtonDown() looks at the bits before the DPad struct so both must be
	// released
	if f.Actions.Has(inputs.Feather) {
		st.Buttons &^= device.DPadUp | device.DPadDown | device.DPadLeft | device.DPadRight
	}

	return st
}

// KeyboardState returns the keyboard state for the frame.
func KeyboardState(f inputs.Frame) device.KeyboardState {
	if f.Actions.Has(inputs.Confirm) {
		return device.NewKeyboardState(ConfirmKey)
	}
	return device.KeyboardState{}
}

// Apply the frame to the target. The previous device state is overwritten by
// the current device state before the new state is applied.
func (em *Emitter) Apply(f inputs.Frame) {
	in := em.target.Inputs()
	in.Player().Update(GamePadState(f))
	in.Keyboard.Update(KeyboardState(f))
	em.target.UpdateVirtualInputs()
}

// Capture is the inverse of Apply(). It creates a single frame from the
// current state of the player's gamepad and the keyboard.
//
// A feather frame that also names a direction does not survive the round
// trip. Apply() releases the directions in feather mode so the captured frame
// carries only the angle.
func Capture(in *device.Inputs) inputs.Frame {
	f := inputs.Frame{Frames: 1}
	st := in.Player().Current

	for _, b := range Bindings {
		if st.IsButtonDown(b.Button) {
			f.Actions |= b.Action
		}
	}

	if st.Triggers.Left >= 0.5 {
		f.Actions |= inputs.Journal
	}

	if in.Keyboard.Current.IsKeyDown(ConfirmKey) {
		f.Actions |= inputs.Confirm
	}

	// an analog stick with no digital direction is recorded as a feather
	// angle
	const deadzone = 0.1
	dirs := inputs.Up | inputs.Down | inputs.Left | inputs.Right
	stick := st.ThumbSticks.Left
	if f.Actions&dirs == inputs.None && stick.Length() > deadzone {
		a := math.Atan2(float64(stick.X), float64(stick.Y)) * 180 / math.Pi
		if a < 0 {
			a += 360
		}
		f.Actions |= inputs.Feather
		f.Angle = float32(math.Round(a*1000) / 1000)
	}

	return f
}
