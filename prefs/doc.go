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

// Package prefs facilitates the storage of preferential values. Values are
// stored in the prefs types (Bool, String, Int, Float and Generic) which are
// safe to read and write from more than one goroutine.
//
// A Disk instance associates preferences with keys and persists them to a
// YAML file. Keys that are missing from the file keep their current (usually
// default) value. Keys in the file that have not been added to the Disk
// instance are preserved when the file is saved again, unless the key is in
// the list of defunct keys.
//
// Preferences can also be given on the command line. The
// PushCommandLineStack() function parses a string of the form:
//
//	key::value; key::value
//
// The values take precedence over values loaded from disk, the next time a
// Disk instance is loaded.
package prefs
