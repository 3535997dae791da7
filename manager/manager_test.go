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
	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/manager"
	"github.com/tasworks/tasengine/test"
)

const tenFrames = "- frames: 10\n"

func TestState(t *testing.T) {
	test.ExpectEquality(t, manager.None.String(), "none")
	s := manager.Enable | manager.FrameStep
	test.ExpectEquality(t, s.String(), "enable|framestep")
	test.ExpectSuccess(t, s.Has(manager.Enable))
	test.ExpectFailure(t, s.Has(manager.Enable|manager.Record))
	test.ExpectEquality(t, int(manager.Disable), 8)
}

func TestIncompleteConfig(t *testing.T) {
	_, err := manager.NewManager(manager.Config{})
	test.ExpectFailure(t, err)
}

func TestFrameLoopsWhenDisabled(t *testing.T) {
	r := newRig(t, tenFrames, false)

	// fast-forward hotkey and analog stick are both ignored
	r.dev.kb = device.NewKeyboardState(device.KeyRightControl, device.KeyRightShift)
	r.dev.pad.ThumbSticks.Right = device.Vector2{X: 1}

	for i := 0; i < 5; i++ {
		r.tick()
		test.ExpectEquality(t, r.mgr.FrameLoops(), 1.0)
		test.ExpectFailure(t, r.mgr.State().Has(manager.Enable))
		test.ExpectFailure(t, r.mgr.Running())
	}
}

func TestStartStop(t *testing.T) {
	r := newRig(t, tenFrames, false)

	r.dev.kb = device.NewKeyboardState(device.KeyRightControl, device.KeyOemOpenBrackets)
	r.tick()
	test.ExpectSuccess(t, r.mgr.NextState().Has(manager.Enable))
	test.ExpectFailure(t, r.mgr.State().Has(manager.Enable))

	// the request is acted upon in the next tick
	r.dev.kb = device.KeyboardState{}
	r.tick()
	test.ExpectSuccess(t, r.mgr.State().Has(manager.Enable))
	test.ExpectSuccess(t, r.mgr.Running())
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 1)
	test.ExpectEquality(t, r.hook.enabled, 1)

	// the start/stop combination includes the frame advance key but frame
	// advance is suppressed while start/stop is held
	r.dev.kb = device.NewKeyboardState(device.KeyRightControl, device.KeyOemOpenBrackets)
	r.tick()
	test.ExpectSuccess(t, r.mgr.NextState().Has(manager.Disable))
	test.ExpectFailure(t, r.mgr.State().Has(manager.FrameStep))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 2)

	r.dev.kb = device.KeyboardState{}
	r.tick()
	test.ExpectEquality(t, r.mgr.State(), manager.None)
	test.ExpectEquality(t, r.mgr.NextState(), manager.None)
	test.ExpectFailure(t, r.mgr.Running())
	test.ExpectEquality(t, r.hook.disabled, 1)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 0)
}

func TestPlayToEnd(t *testing.T) {
	r := newRig(t, "- frames: 5\n", false)
	r.mgr.EnableRun()

	r.ticks(5)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 5)
	test.ExpectSuccess(t, r.mgr.State().Has(manager.Enable))

	inf := r.studio.infos[len(r.studio.infos)-1]
	test.ExpectEquality(t, inf.CurrentLine, 1)
	test.ExpectEquality(t, inf.FrameInput, "5")
	test.ExpectEquality(t, inf.CurrentFrameInTas, 5)
	test.ExpectEquality(t, inf.TotalFrames, 5)
	test.ExpectEquality(t, inf.HighlightLine, -1)
	test.ExpectEquality(t, inf.StateBits, int(manager.Enable))
	test.ExpectEquality(t, inf.VersionString, "fake 1.0")

	// nothing left to play
	r.tick()
	test.ExpectEquality(t, r.mgr.State(), manager.None)
	test.ExpectEquality(t, r.hook.disabled, 1)
	test.ExpectEquality(t, len(r.studio.infos), 6)

	inf = r.studio.infos[len(r.studio.infos)-1]
	test.ExpectEquality(t, inf.CurrentLine, -1)
	test.ExpectEquality(t, inf.StateBits, 0)
}

func TestFrameAdvance(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.mgr.EnableRun()
	r.tick()
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 1)

	// first press starts frame-stepping immediately
	r.press(device.KeyOemOpenBrackets)
	test.ExpectSuccess(t, r.mgr.State().Has(manager.FrameStep))
	test.ExpectFailure(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 1)

	r.ticks(3)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 1)

	// second press plays one frame and requests frame-stepping for the next
	// tick. nothing is sent to the studio while the request is pending
	sent := len(r.studio.infos)
	r.dev.kb = device.NewKeyboardState(device.KeyOemOpenBrackets)
	r.tick()
	test.ExpectFailure(t, r.mgr.State().Has(manager.FrameStep))
	test.ExpectSuccess(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 2)
	test.ExpectEquality(t, len(r.studio.infos), sent)

	r.dev.kb = device.KeyboardState{}
	r.tick()
	test.ExpectSuccess(t, r.mgr.State().Has(manager.FrameStep))
	test.ExpectFailure(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 2)
	test.ExpectEquality(t, len(r.studio.infos), sent+1)
}

func TestPauseResume(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.mgr.EnableRun()
	r.tick()

	r.press(device.KeyOemCloseBrackets)
	test.ExpectSuccess(t, r.mgr.State().Has(manager.FrameStep))
	r.tick()
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 1)

	// second press resumes completely
	r.press(device.KeyOemCloseBrackets)
	test.ExpectFailure(t, r.mgr.State().Has(manager.FrameStep))
	test.ExpectFailure(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 3)
}

func TestFastForwardWhileStepping(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.mgr.EnableRun()
	r.press(device.KeyOemCloseBrackets)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 0)

	// holding fast-forward while stepping plays every other tick
	r.dev.kb = device.NewKeyboardState(device.KeyRightControl, device.KeyRightShift)
	r.ticks(4)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 2)

	// unless fast-forward through comments is also held
	r.dev.kb = device.NewKeyboardState(device.KeyRightControl, device.KeyRightShift, device.KeyRightAlt, device.KeyOemPeriod)
	r.ticks(4)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 2)
}

func TestSlowForwardSchedule(t *testing.T) {
	for fc := uint64(0); fc < 10; fc++ {
		test.ExpectEquality(t, manager.SkipSlowForwardingFrame(fc, 0.5), fc%2 == 0, fc)
	}
	test.ExpectFailure(t, manager.SkipSlowForwardingFrame(0, 1))

	r := newRig(t, "- frames: 20\n", false)
	r.mgr.EnableRun()
	r.dev.pad.ThumbSticks.Right = device.Vector2{X: -0.5}

	r.ticks(10)
	test.ExpectEquality(t, r.mgr.FrameLoops(), 0.5)
	test.ExpectSuccess(t, r.mgr.SlowForwarding())
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 5)
}

func TestFastForward(t *testing.T) {
	r := newRig(t, "- frames: 200\n", false)
	r.mgr.EnableRun()

	r.dev.kb = device.NewKeyboardState(device.KeyRightControl, device.KeyRightShift)
	r.tick()
	test.ExpectEquality(t, r.mgr.FrameLoops(), 10.0)

	r.dev.kb = device.KeyboardState{}
	r.dev.pad.ThumbSticks.Right = device.Vector2{X: 0.5}
	r.tick()
	test.ExpectEquality(t, r.mgr.FrameLoops(), 5.0)

	// small deflections are ignored
	r.dev.pad.ThumbSticks.Right = device.Vector2{X: 0.1}
	r.tick()
	test.ExpectEquality(t, r.mgr.FrameLoops(), 1.0)

	// the slowest speed is limited by the settings
	r.dev.pad.ThumbSticks.Right = device.Vector2{X: -1}
	r.tick()
	test.ExpectApproximate(t, r.mgr.FrameLoops(), 1.0/60.0, 0.00001)
}

func TestBreakpoint(t *testing.T) {
	r := newRig(t, "- frames: 3\n- breakpoint: {}\n- frames: 7\n", false)
	r.mgr.EnableRun()

	r.tick()
	test.ExpectEquality(t, r.mgr.FrameLoops(), 400.0)
	test.ExpectSuccess(t, r.mgr.UltraFastForwarding())
	test.ExpectFailure(t, r.mgr.AllowLogging())
	test.ExpectEquality(t, len(r.studio.infos), 1)

	// throttled during ultra fast-forward
	r.tick()
	test.ExpectEquality(t, len(r.studio.infos), 1)

	// arrive at the breakpoint
	r.tick()
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 3)
	test.ExpectEquality(t, r.mgr.FrameLoops(), 1.0)
	test.ExpectSuccess(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, len(r.studio.infos), 1)

	r.tick()
	test.ExpectSuccess(t, r.mgr.State().Has(manager.FrameStep))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 3)
	test.ExpectEquality(t, len(r.studio.infos), 2)
	test.ExpectSuccess(t, r.mgr.AllowLogging())
}

func TestFastForwardOverride(t *testing.T) {
	r := newRig(t, "- frames: 1\n- breakpoint: {}\n- frames: 5\n", false)
	r.hk.FastForward.Override = true
	r.mgr.EnableRun()

	// the pending frame-step does not prevent the state being sent
	r.tick()
	test.ExpectSuccess(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, len(r.studio.infos), 1)
	test.ExpectEquality(t, r.studio.infos[0].CurrentFrameInTas, 1)
}

func TestObserver(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.mgr.EnableRun()
	r.ticks(3)
	test.ExpectEquality(t, len(r.obs.frames), 3)
	for i, f := range r.obs.frames {
		test.ExpectEquality(t, f, i)
	}
}

func TestUnsafeInput(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.host.scene = host.Overworld
	r.mgr.EnableRun()

	// the first frame is always allowed
	r.tick()
	test.ExpectSuccess(t, r.mgr.State().Has(manager.Enable))

	r.tick()
	test.ExpectEquality(t, r.mgr.State(), manager.None)
	test.ExpectEquality(t, r.hook.disabled, 1)

	// allowed by a hook
	r.hook.onEnable = func() { r.mgr.SetAllowUnsafeInput(true) }
	r.mgr.EnableRun()
	r.ticks(5)
	test.ExpectSuccess(t, r.mgr.State().Has(manager.Enable))
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 5)

	r.mgr.DisableRun(false)
	test.ExpectFailure(t, r.mgr.AllowUnsafeInput())
}

func TestDisableRun(t *testing.T) {
	r := newRig(t, "- frames: 5\n  actions: J\n", false)
	r.mgr.EnableRun()
	r.mgr.SetEnforceLegal(true)
	r.tick()

	pad := r.host.in.Player()
	test.ExpectSuccess(t, pad.Attached)
	test.ExpectSuccess(t, pad.Current.IsButtonDown(device.A))

	r.mgr.DisableRun(false)
	test.ExpectEquality(t, pad.Current, device.GamePadState{})
	test.ExpectFailure(t, r.mgr.EnforceLegal())
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 0)
	test.ExpectEquality(t, r.cursor.TotalFrames(), 5)

	r.mgr.DisableRun(true)
	test.ExpectEquality(t, r.cursor.TotalFrames(), 0)

	// the movie is read again when the run is enabled
	r.mgr.EnableRun()
	test.ExpectEquality(t, r.cursor.TotalFrames(), 5)
}

func TestGameLoader(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.host.scene = host.GameLoader
	r.mgr.EnableRun()
	test.ExpectEquality(t, r.mgr.State(), manager.None)
	test.ExpectEquality(t, r.hook.enabled, 0)
}

func TestRestartWithoutSaveTool(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.mgr.EnableRun()
	r.ticks(3)

	r.press(device.KeyOemPlus)
	test.ExpectEquality(t, r.cursor.CurrentFrame(), 2)
	test.ExpectEquality(t, r.hook.enabled, 2)
	test.ExpectEquality(t, r.hook.disabled, 1)
}

func TestInactiveHost(t *testing.T) {
	r := newRig(t, tenFrames, false)
	r.host.active = false
	r.host.in.Active = true
	r.host.in.Keyboard.Current = device.NewKeyboardState(device.KeyC)
	r.host.pads[1] = device.GamePadState{Buttons: device.A, IsConnected: true}

	r.tick()
	test.ExpectSuccess(t, r.host.in.Keyboard.Current.IsEmpty())
	test.ExpectSuccess(t, r.host.in.Keyboard.Previous.IsKeyDown(device.KeyC))
	test.ExpectSuccess(t, r.host.in.GamePads[1].Current.IsButtonDown(device.A))
	test.ExpectEquality(t, r.host.virtual, 1)

	r.host.in.Active = false
	r.tick()
	test.ExpectEquality(t, r.host.in.GamePads[1].Current, device.GamePadState{})
	test.ExpectEquality(t, r.host.virtual, 2)

	// nothing happens while the host is active
	r.host.active = true
	r.tick()
	test.ExpectEquality(t, r.host.virtual, 2)
}

func TestStudioRepeat(t *testing.T) {
	const movie = `- frames: 2
  actions: R
- repeat:
    count: 2
    inputs:
      - frames: 3
        actions: J
`
	r := newRig(t, movie, false)
	r.mgr.EnableRun()
	r.ticks(4)

	inf := r.studio.infos[len(r.studio.infos)-1]
	test.ExpectEquality(t, inf.CurrentLine, 6)
	test.ExpectEquality(t, inf.FrameInput, "2 1/2")
	test.ExpectEquality(t, inf.TotalFrames, 8)
}
