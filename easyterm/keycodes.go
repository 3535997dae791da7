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

package easyterm

import "github.com/tasworks/tasengine/device"

// Control codes from the terminal.
const (
	KeyCtrlC     = 3
	KeyEsc       = 27
	KeyBackspace = 127
)

var translation = map[byte][]device.Keys{
	's':          {device.KeyRightControl, device.KeyOemOpenBrackets},
	'[':          {device.KeyOemOpenBrackets},
	']':          {device.KeyOemCloseBrackets},
	'=':          {device.KeyOemPlus},
	'+':          {device.KeyOemPlus},
	'f':          {device.KeyRightControl, device.KeyRightShift},
	'.':          {device.KeyRightAlt, device.KeyOemPeriod},
	'v':          {device.KeyRightAlt, device.KeyOemMinus},
	'x':          {device.KeyRightAlt, device.KeyBack},
	KeyBackspace: {device.KeyRightAlt, device.KeyBack},
	'c':          {device.KeyC},
}

var gamepad = map[byte]device.Buttons{
	'h': device.DPadLeft,
	'l': device.DPadRight,
	'k': device.DPadUp,
	'j': device.DPadDown,
	'z': device.A,
	'n': device.B,
	'g': device.LeftShoulder,
}

// TranslateButton returns the gamepad button for a byte read from the
// terminal. Returns false if the byte is not a gamepad key.
func TranslateButton(b byte) (device.Buttons, bool) {
	btn, ok := gamepad[b]
	return btn, ok
}

// Translate returns the host keys for a byte read from the terminal. Returns
// nil if the byte has no translation.
func Translate(b byte) []device.Keys {
	return translation[b]
}
