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

// Package manager is the run-state machine of the TAS engine. A single
// Manager drives a TAS run, from the hotkeys through to the studio.
//
// The host calls Tick() once per update. During a tick the manager:
//
//	samples the hotkeys
//	lets the savestate coordinator act on them
//	calculates the frame rate for the tick
//	resolves requests to start and stop the run
//	resolves frame-stepping
//	advances the input cursor and emits the frame to the host
//	reports the state of the run to the studio
//
// The run state is held in three registers. The current register is the
// committed state of the run. The next register holds requests that will be
// acted upon in a later tick. The last register is a copy of the current
// register as it was at the start of the tick. A request placed in the next
// register is never acted upon in the same tick that it is made.
//
// The manager is not safe for concurrent use. All calls must be made from the
// host's update goroutine.
package manager
