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

// Package inputs holds the input script cursor: the ordered list of per-frame
// inputs of a TAS movie and the current playback position within it.
//
// The run manager and the savestate coordinator only ever see the Cursor
// interface. The Controller type is the implementation used by tasengine,
// reading movies from a Source. Movies are YAML documents consisting of a
// sequence of input lines and breakpoint markers:
//
//	- frames: 20
//	  actions: R,J
//	- frames: 5
//	  actions: F
//	  angle: 90
//	- breakpoint: {savestate: true}
//	- repeat:
//	    count: 3
//	    inputs:
//	      - frames: 2
//	        actions: J
//	      - frames: 1
//
// A breakpoint marker applies to the frame position at which it appears. If
// the marker has a speed then playback runs at that speed until the marker is
// reached, otherwise it runs at the DefaultSpeed. Playback pauses at every
// marker that is not at the very end of the movie.
package inputs
