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

package emitter_test

import (
	"testing"

	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/emitter"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/test"
)

type target struct {
	in      device.Inputs
	virtual int
}

func (t *target) Inputs() *device.Inputs { return &t.in }
func (t *target) UpdateVirtualInputs()   { t.virtual++ }

func TestDigital(t *testing.T) {
	tgt := &target{}
	em := emitter.NewEmitter(tgt)

	em.Apply(inputs.Frame{Actions: inputs.Right | inputs.Jump | inputs.Grab, Frames: 1})
	st := tgt.in.Player().Current
	test.ExpectSuccess(t, st.IsConnected)
	test.ExpectEquality(t, st.DPad.Right, device.Pressed)
	test.ExpectEquality(t, st.DPad.Left, device.Released)
	test.ExpectSuccess(t, st.IsButtonDown(device.A))
	test.ExpectSuccess(t, st.IsButtonDown(device.LeftShoulder))
	test.ExpectFailure(t, st.IsButtonDown(device.B))
	test.ExpectEquality(t, st.ThumbSticks.Left, device.Vector2{})
	test.ExpectEquality(t, tgt.virtual, 1)

	// previous state is the state from the last call to Apply()
	em.Apply(inputs.Frame{Actions: inputs.Dash, Frames: 1})
	test.ExpectSuccess(t, tgt.in.Player().Previous.IsButtonDown(device.A))
	test.ExpectSuccess(t, tgt.in.Player().Current.IsButtonDown(device.B))
	test.ExpectFailure(t, tgt.in.Player().Current.IsButtonDown(device.A))
	test.ExpectEquality(t, tgt.virtual, 2)
}

func TestFeather(t *testing.T) {
	st := emitter.GamePadState(inputs.Frame{Actions: inputs.Feather | inputs.Up, Angle: 90, Frames: 1})
	test.ExpectEquality(t, st.DPad, device.GamePadDPad{})
	test.ExpectFailure(t, st.IsButtonDown(device.DPadUp))
	test.ExpectApproximate(t, st.ThumbSticks.Left.X, 1, 0.0001)
	test.ExpectApproximate(t, st.ThumbSticks.Left.Y, 0, 0.0001)

	// the directions are dropped so capturing gives the angle alone
	tgt := &target{}
	emitter.NewEmitter(tgt).Apply(inputs.Frame{Actions: inputs.Feather | inputs.Up | inputs.Jump, Angle: 90, Frames: 1})
	c := emitter.Capture(tgt.Inputs())
	test.ExpectEquality(t, c.Actions, inputs.Feather|inputs.Jump)
	test.ExpectApproximate(t, c.Angle, 90, 0.001)
}

func TestJournalAndConfirm(t *testing.T) {
	tgt := &target{}
	em := emitter.NewEmitter(tgt)

	em.Apply(inputs.Frame{Actions: inputs.Journal | inputs.Confirm, Frames: 1})
	st := tgt.in.Player().Current
	test.ExpectEquality(t, st.Triggers.Left, 1)
	test.ExpectSuccess(t, st.IsButtonDown(device.LeftTrigger))
	test.ExpectSuccess(t, tgt.in.Keyboard.Current.IsKeyDown(device.KeyC))

	em.Apply(inputs.Frame{Frames: 1})
	test.ExpectSuccess(t, tgt.in.Keyboard.Current.IsEmpty())
	test.ExpectSuccess(t, tgt.in.Keyboard.Previous.IsKeyDown(device.KeyC))
}

func TestPlayerGamepad(t *testing.T) {
	tgt := &target{}
	tgt.in.Gamepad = 2
	em := emitter.NewEmitter(tgt)
	em.Apply(inputs.Frame{Actions: inputs.Jump, Frames: 1})
	test.ExpectSuccess(t, tgt.in.GamePads[2].Current.IsButtonDown(device.A))
	test.ExpectFailure(t, tgt.in.GamePads[0].Current.IsButtonDown(device.A))
}

func TestCapture(t *testing.T) {
	frames := []inputs.Frame{
		{Actions: inputs.None, Frames: 1},
		{Actions: inputs.Left | inputs.Dash2 | inputs.Journal, Frames: 1},
		{Actions: inputs.Restart | inputs.Confirm | inputs.DemoDash2, Frames: 1},
		{Actions: inputs.Feather | inputs.Jump, Angle: 135, Frames: 1},
	}

	tgt := &target{}
	em := emitter.NewEmitter(tgt)
	for _, f := range frames {
		em.Apply(f)
		c := emitter.Capture(tgt.Inputs())
		test.ExpectEquality(t, c.String(), f.String())
	}
}
