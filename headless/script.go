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

package headless

import (
	"github.com/tasworks/tasengine/device"
)

type press struct {
	from, to uint64
	keys     []device.Keys
}

// Script is a hotkeys.Device that holds keys on chosen ticks. The tick count
// is moved on by calling Advance().
type Script struct {
	tick    uint64
	presses []press
	pad     device.GamePadState
}

// Press holds the keys for the given number of ticks, starting at the given
// tick. A hold of less than one tick is treated as one tick.
func (s *Script) Press(at uint64, hold int, keys ...device.Keys) {
	if hold < 1 {
		hold = 1
	}
	s.presses = append(s.presses, press{
		from: at,
		to:   at + uint64(hold),
		keys: keys,
	})
}

// SetGamePad sets the state of the scripted gamepad.
func (s *Script) SetGamePad(st device.GamePadState) {
	s.pad = st
}

// Tick returns the current tick of the script.
func (s *Script) Tick() uint64 {
	return s.tick
}

// Advance moves the script on by one tick.
func (s *Script) Advance() {
	s.tick++
}

// Keyboard implements the hotkeys.Device interface.
func (s *Script) Keyboard() device.KeyboardState {
	var st device.KeyboardState
	for _, p := range s.presses {
		if s.tick >= p.from && s.tick < p.to {
			for _, k := range p.keys {
				st.Press(k)
			}
		}
	}
	return st
}

// GamePad implements the hotkeys.Device interface.
func (s *Script) GamePad() device.GamePadState {
	return s.pad
}
