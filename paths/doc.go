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

// Package paths contains functions to prepare paths for tasengine resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. The directory is
// created if it does not already exist.
//
// The default config directory is ".tasengine" in the current working
// directory. With the release build constraint it is "tasengine" in the
// user's configuration directory. For example, on a modern Linux system:
//
//	d, _ := paths.ResourcePath("", "settings.yaml")
//	/home/user/.config/tasengine/settings.yaml
package paths
