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

// Package device defines the device-level input state structures consumed by
// the host engine's input subsystem.
//
// All state types have value semantics. Assigning one KeyboardState or
// GamePadState to another copies it completely, which is what allows the
// double-buffered Data types (Previous/Current) to work without aliasing.
//
// Key and button values follow the XNA numbering used by the host.
package device
