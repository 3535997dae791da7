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

// Cursor is the playback position within a movie, together with the movie's
// expanded per-frame inputs and breakpoint markers.
//
// Frame positions count from zero. CurrentFrame() is the number of frames
// that have been played, so the frame that will be played next is at
// position CurrentFrame() and the frame that was played last is at position
// CurrentFrame()-1.
type Cursor interface {
	// AdvanceFrame moves the cursor forward by one frame. The canPlayback
	// value is false if there was no frame to play, in which case the cursor
	// does not move. The breakpoint value is true if the cursor has arrived at
	// a breakpoint marker and there are more frames to play.
	AdvanceFrame() (breakpoint bool, canPlayback bool)

	// CanPlayback returns true if there are frames left to play.
	CanPlayback() bool

	// RefreshInputs reloads the movie if it has changed. If startingFresh is
	// true the cursor is also moved to the start of the movie.
	RefreshInputs(startingFresh bool)

	// Stop moves the cursor to the start of the movie.
	Stop()

	// Clear forgets all inputs and markers.
	Clear()

	// Clone returns a deep copy of the cursor. The clone remembers the
	// checksum of the inputs played so far.
	Clone() Cursor

	// CopyFrom restores the state of a cursor created by Clone().
	CopyFrom(Cursor)

	// Checksum returns the checksum of this cursor's inputs up to the
	// current frame of the specified cursor.
	Checksum(upTo Cursor) string

	// SavedChecksum returns the checksum taken when the cursor was cloned.
	SavedChecksum() string

	CurrentFrame() int
	CurrentFrameInInput() int
	TotalFrames() int

	// Previous returns the frame that was played last.
	Previous() (Frame, bool)

	// InputAt returns the frame at the specified position.
	InputAt(frame int) (Frame, bool)

	// HasFastForward returns true if there is a breakpoint marker ahead of
	// the cursor.
	HasFastForward() bool

	// FastForwardSpeed returns the speed of the next breakpoint marker ahead
	// of the cursor. Returns 1 if there is no marker ahead.
	FastForwardSpeed() float64

	// CurrentFastForward returns the breakpoint marker at the current frame.
	CurrentFastForward() (FastForward, bool)

	// FastForwardAt returns the breakpoint marker at the specified frame.
	FastForwardAt(frame int) (FastForward, bool)

	// LastSaveStateFastForward returns the last breakpoint marker in the
	// movie that requests a savestate.
	LastSaveStateFastForward() (FastForward, bool)
}
