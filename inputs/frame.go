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

package inputs

import (
	"fmt"
	"math"
	"strings"

	"github.com/tasworks/tasengine/device"
)

// Frame is a single input line of a movie. An input line lasts for one or
// more frames.
type Frame struct {
	Actions Actions

	// direction of the analog stick in degrees when the Feather action is
	// present. zero is up and the angle increases clockwise
	Angle float32

	// the number of frames the input line lasts for
	Frames int

	// the frame within the input line, counting from one. only meaningful
	// for frames returned by a Cursor
	Index int

	// line in the source file
	Line int

	// position in a repeat block, counting from one. a RepeatCount of zero
	// means the input line is not part of a repeat block
	RepeatIndex int
	RepeatCount int
}

// AngleVector returns the analog stick vector for the frame's angle.
func (f Frame) AngleVector() device.Vector2 {
	r := float64(f.Angle) * math.Pi / 180
	x := math.Sin(r)
	y := math.Cos(r)

	// tidy up values that are very nearly zero
	if math.Abs(x) < 1e-6 {
		x = 0
	}
	if math.Abs(y) < 1e-6 {
		y = 0
	}
	return device.Vector2{X: float32(x), Y: float32(y)}
}

// RepeatString returns the repeat suffix shown next to the frame count in the
// studio. Empty if the frame is not part of a repeat block.
func (f Frame) RepeatString() string {
	if f.RepeatCount <= 0 {
		return ""
	}
	return fmt.Sprintf(" %d/%d", f.RepeatIndex, f.RepeatCount)
}

// String returns the frame in the notation used by checksums and transcripts.
// The line number and position fields are not included.
func (f Frame) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%d", f.Frames))
	if f.Actions != None {
		s.WriteString(",")
		s.WriteString(f.Actions.String())
	}
	if f.Actions.Has(Feather) {
		s.WriteString(fmt.Sprintf(",%g", f.Angle))
	}
	return s.String()
}

// FastForward is a breakpoint marker in the movie.
type FastForward struct {
	// the frame position of the marker
	Frame int

	// line in the source file
	Line int

	// playback speed until the marker is reached
	Speed    float64
	HasSpeed bool

	// a savestate should be made when the marker is reached
	SaveState bool
}

// DefaultSpeed is the speed used for breakpoint markers that do not specify
// a speed.
const DefaultSpeed = 400
