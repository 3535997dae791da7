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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function. The pattern given to
// Errorf() is kept alongside the values so that the error can later be
// identified with the Is() and Has() functions.
//
//	err := curated.Errorf(inputs.MovieError, "line 3: unknown action")
//	if curated.Is(err, inputs.MovieError) {
//		...
//	}
//
// Formatting of the message happens only when Error() is called. Repeated
// leading tags are collapsed so that wrapping an error in an error with the
// same tag does not produce a stuttering message:
//
//	studio: studio: connection refused
//
// is reported as:
//
//	studio: connection refused
//
// Curated errors never leave the edges of the engine. The run-state machine
// and the savestate coordinator degrade to state transitions rather than
// returning errors to the host.
package curated
