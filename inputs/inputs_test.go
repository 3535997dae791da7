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

package inputs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/test"
)

const movie = `
- frames: 3
  actions: R,J
- breakpoint: {}
- frames: 2
  actions: F
  angle: 90
- breakpoint: {speed: 0.5, savestate: true}
- repeat:
    count: 2
    inputs:
      - frames: 1
        actions: X
- frames: 1
`

func newController(t *testing.T, data string) (*inputs.Controller, *inputs.StaticSource) {
	t.Helper()
	src, err := inputs.NewStaticSourceFromYAML([]byte(data))
	test.DemandSuccess(t, err)
	c := inputs.NewController(src)
	c.RefreshInputs(true)
	return c, src
}

func TestActions(t *testing.T) {
	a, err := inputs.ParseActions("R, jump,x")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, inputs.Right|inputs.Jump|inputs.Dash)
	test.ExpectEquality(t, a.String(), "R,J,X")

	_, err = inputs.ParseActions("R,W")
	test.ExpectFailure(t, err)

	a, err = inputs.ParseActions("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, inputs.None)
}

func TestAngleVector(t *testing.T) {
	v := inputs.Frame{Angle: 0}.AngleVector()
	test.ExpectApproximate(t, v.X, 0, 0.0001)
	test.ExpectApproximate(t, v.Y, 1, 0.0001)

	v = inputs.Frame{Angle: 90}.AngleVector()
	test.ExpectApproximate(t, v.X, 1, 0.0001)
	test.ExpectApproximate(t, v.Y, 0, 0.0001)

	v = inputs.Frame{Angle: 225}.AngleVector()
	test.ExpectApproximate(t, v.X, -0.7071, 0.001)
	test.ExpectApproximate(t, v.Y, -0.7071, 0.001)
}

func TestParseMovie(t *testing.T) {
	mv, err := inputs.ParseMovie([]byte(movie))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, len(mv.Frames), 5)
	test.ExpectEquality(t, mv.TotalFrames(), 8)
	test.ExpectEquality(t, mv.Frames[0].Line, 2)
	test.ExpectEquality(t, mv.Frames[1].Angle, 90)

	// repeated lines share a source line but differ in repeat index
	test.ExpectEquality(t, mv.Frames[2].Line, mv.Frames[3].Line)
	test.ExpectEquality(t, mv.Frames[2].RepeatString(), " 1/2")
	test.ExpectEquality(t, mv.Frames[3].RepeatString(), " 2/2")
	test.ExpectEquality(t, mv.Frames[4].RepeatString(), "")

	test.DemandEquality(t, len(mv.FastForwards), 2)
	test.ExpectEquality(t, mv.FastForwards[0].Frame, 3)
	test.ExpectEquality(t, mv.FastForwards[0].Speed, float64(inputs.DefaultSpeed))
	test.ExpectFailure(t, mv.FastForwards[0].HasSpeed)
	test.ExpectEquality(t, mv.FastForwards[1].Frame, 5)
	test.ExpectEquality(t, mv.FastForwards[1].Speed, 0.5)
	test.ExpectSuccess(t, mv.FastForwards[1].SaveState)

	mv, err = inputs.ParseMovie(nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mv.TotalFrames(), 0)
}

func TestParseMovieErrors(t *testing.T) {
	bad := []string{
		"frames: 1",
		"- frames: 0",
		"- frames: 1\n  actions: W",
		"- frames: 1\n  actions: F\n  angle: 400",
		"- breakpoint: {speed: 0}",
		"- repeat: {count: 0, inputs: []}",
		"- repeat:\n    count: 1\n    inputs:\n      - breakpoint: {}",
	}
	for _, b := range bad {
		_, err := inputs.ParseMovie([]byte(b))
		test.ExpectFailure(t, err, b)
		test.ExpectSuccess(t, curated.Is(err, inputs.MovieError), b)
	}
}

func TestPlayback(t *testing.T) {
	c, _ := newController(t, movie)

	test.ExpectEquality(t, c.TotalFrames(), 8)
	test.ExpectEquality(t, c.CurrentFrame(), 0)
	test.ExpectSuccess(t, c.CanPlayback())
	test.ExpectSuccess(t, c.HasFastForward())
	test.ExpectEquality(t, c.FastForwardSpeed(), float64(inputs.DefaultSpeed))

	_, ok := c.Previous()
	test.ExpectFailure(t, ok)

	brk, canPlayback := c.AdvanceFrame()
	test.ExpectFailure(t, brk)
	test.ExpectSuccess(t, canPlayback)
	test.ExpectEquality(t, c.CurrentFrameInInput(), 1)

	c.AdvanceFrame()
	test.ExpectEquality(t, c.CurrentFrameInInput(), 2)

	// arrive at the first breakpoint
	brk, _ = c.AdvanceFrame()
	test.ExpectSuccess(t, brk)
	test.ExpectEquality(t, c.CurrentFrame(), 3)
	ff, ok := c.CurrentFastForward()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, ff.Line, 4)

	// the next breakpoint is slow
	test.ExpectEquality(t, c.FastForwardSpeed(), 0.5)

	p, ok := c.Previous()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p.Actions, inputs.Right|inputs.Jump)
	test.ExpectEquality(t, p.Index, 3)

	for c.CanPlayback() {
		c.AdvanceFrame()
	}
	test.ExpectEquality(t, c.CurrentFrame(), 8)
	test.ExpectFailure(t, c.HasFastForward())
	test.ExpectEquality(t, c.FastForwardSpeed(), 1.0)

	brk, canPlayback = c.AdvanceFrame()
	test.ExpectFailure(t, brk)
	test.ExpectFailure(t, canPlayback)
	test.ExpectEquality(t, c.CurrentFrame(), 8)

	ff, ok = c.LastSaveStateFastForward()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, ff.Frame, 5)

	c.Stop()
	test.ExpectEquality(t, c.CurrentFrame(), 0)

	c.Clear()
	test.ExpectEquality(t, c.TotalFrames(), 0)
	test.ExpectFailure(t, c.CanPlayback())

	// a cleared controller reloads on the next refresh
	c.RefreshInputs(false)
	test.ExpectEquality(t, c.TotalFrames(), 8)
}

func TestCloneAndCopy(t *testing.T) {
	c, src := newController(t, movie)
	c.AdvanceFrame()
	c.AdvanceFrame()

	saved := c.Clone()
	test.ExpectEquality(t, saved.CurrentFrame(), 2)
	test.ExpectEquality(t, saved.SavedChecksum(), c.Checksum(saved))

	c.AdvanceFrame()
	c.AdvanceFrame()
	test.ExpectEquality(t, c.CurrentFrame(), 4)

	// the saved clone is unaffected by the live cursor
	test.ExpectEquality(t, saved.CurrentFrame(), 2)

	c.CopyFrom(saved)
	test.ExpectEquality(t, c.CurrentFrame(), 2)
	test.ExpectEquality(t, c.TotalFrames(), saved.TotalFrames())
	test.ExpectEquality(t, c.SavedChecksum(), saved.SavedChecksum())

	// editing a frame after the saved position does not change the checksum
	mv, err := inputs.ParseMovie([]byte(movie))
	test.DemandSuccess(t, err)
	mv.Frames[4].Actions = inputs.Grab
	src.Set(mv)
	c.RefreshInputs(false)
	test.ExpectEquality(t, c.Checksum(saved), saved.SavedChecksum())

	// but editing a frame before it does
	mv.Frames[0].Actions = inputs.Left
	src.Set(mv)
	c.RefreshInputs(false)
	test.ExpectInequality(t, c.Checksum(saved), saved.SavedChecksum())
	test.ExpectEquality(t, c.CurrentFrame(), 2)
}

func TestRefreshClamp(t *testing.T) {
	c, src := newController(t, movie)
	for c.CanPlayback() {
		c.AdvanceFrame()
	}

	src.Set(inputs.Movie{Frames: []inputs.Frame{{Frames: 2}}})
	c.RefreshInputs(false)
	test.ExpectEquality(t, c.TotalFrames(), 2)
	test.ExpectEquality(t, c.CurrentFrame(), 2)

	c.RefreshInputs(true)
	test.ExpectEquality(t, c.CurrentFrame(), 0)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	err := os.WriteFile(path, []byte(movie), 0o600)
	test.DemandSuccess(t, err)

	src := inputs.NewFileSource(path)
	mv, v1, err := src.Movie()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mv.TotalFrames(), 8)

	_, v2, err := src.Movie()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v1, v2)

	err = os.WriteFile(path, []byte("- frames: 100\n"), 0o600)
	test.DemandSuccess(t, err)
	mv, v3, err := src.Movie()
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, v1, v3)
	test.ExpectEquality(t, mv.TotalFrames(), 100)

	_, _, err = inputs.NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Movie()
	test.ExpectFailure(t, err)
}

func TestCopyToFreshController(t *testing.T) {
	c, src := newController(t, movie)
	for i := 0; i < 4; i++ {
		c.AdvanceFrame()
	}
	saved := c.Clone()

	fresh := inputs.NewController(src)
	fresh.CopyFrom(saved)
	test.ExpectEquality(t, fresh.CurrentFrame(), c.CurrentFrame())
	test.ExpectEquality(t, fresh.TotalFrames(), c.TotalFrames())
	test.ExpectEquality(t, fresh.Checksum(fresh), c.Checksum(c))
	test.ExpectEquality(t, fresh.SavedChecksum(), saved.SavedChecksum())

	// the fresh controller does not share inputs with the clone
	fresh.Clear()
	test.ExpectEquality(t, saved.TotalFrames(), 8)
}
