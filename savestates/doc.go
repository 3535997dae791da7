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

// Package savestates coordinates the saving and loading of game state during
// a TAS run.
//
// The saving and loading itself is performed by an external tool, exposed
// through the Capability interface. The Coordinator decides when to save and
// load, and keeps a copy of the input cursor and of the game information
// alongside every savestate. A savestate is only ever loaded if the movie
// has not changed, up to the saved frame, since the savestate was made.
//
// The Coordinator is driven by the run manager through the Runner interface,
// which the manager implements.
package savestates
