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

// Package headless is a small deterministic game that implements the host
// contract. It is used by the command line runner and by tests that exercise
// the manager from end to end.
//
// The game has a single player that moves on a flat floor. Directions move
// the player one unit per frame, Jump launches the player upwards and Dash
// moves the player five units in the held direction. Feather input moves the
// player along the analog stick. The scene of the game follows a schedule
// indexed by the game frame, so loading a savestate also restores the scene.
//
// Hotkeys are supplied by a Script, which presses keys on chosen ticks, or by
// any other hotkeys.Device.
package headless
