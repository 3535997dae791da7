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

// Package recorder transcribes live input to a movie file and verifies that a
// run plays back a previously recorded movie.
//
// Recordings are ordinary movie files and can be played back by the inputs
// package. Consecutive frames with identical input are merged into a single
// input line. Recordings begin with a short header of comment lines:
//
//	# tasengine recording
//	# host: <host version>
//	# frames: <number of frames>
package recorder
