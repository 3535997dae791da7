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

package device

import (
	"fmt"
	"strings"
)

// Keys identifies a single key on the keyboard.
type Keys uint8

// List of supported key values.
const (
	KeyNone             Keys = 0
	KeyBack             Keys = 8
	KeyTab              Keys = 9
	KeyEnter            Keys = 13
	KeyEscape           Keys = 27
	KeySpace            Keys = 32
	KeyLeft             Keys = 37
	KeyUp               Keys = 38
	KeyRight            Keys = 39
	KeyDown             Keys = 40
	KeyD0               Keys = 48
	KeyD9               Keys = 57
	KeyA                Keys = 65
	KeyC                Keys = 67
	KeyZ                Keys = 90
	KeyF1               Keys = 112
	KeyF12              Keys = 123
	KeyLeftShift        Keys = 160
	KeyRightShift       Keys = 161
	KeyLeftControl      Keys = 162
	KeyRightControl     Keys = 163
	KeyLeftAlt          Keys = 164
	KeyRightAlt         Keys = 165
	KeyOemPlus          Keys = 187
	KeyOemComma         Keys = 188
	KeyOemMinus         Keys = 189
	KeyOemPeriod        Keys = 190
	KeyOemOpenBrackets  Keys = 219
	KeyOemCloseBrackets Keys = 221
)

var namedKeys = map[string]Keys{
	"Back":             KeyBack,
	"Tab":              KeyTab,
	"Enter":            KeyEnter,
	"Escape":           KeyEscape,
	"Space":            KeySpace,
	"Left":             KeyLeft,
	"Up":               KeyUp,
	"Right":            KeyRight,
	"Down":             KeyDown,
	"LeftShift":        KeyLeftShift,
	"RightShift":       KeyRightShift,
	"LeftControl":      KeyLeftControl,
	"RightControl":     KeyRightControl,
	"LeftAlt":          KeyLeftAlt,
	"RightAlt":         KeyRightAlt,
	"OemPlus":          KeyOemPlus,
	"OemComma":         KeyOemComma,
	"OemMinus":         KeyOemMinus,
	"OemPeriod":        KeyOemPeriod,
	"OemOpenBrackets":  KeyOemOpenBrackets,
	"OemCloseBrackets": KeyOemCloseBrackets,
}

// ParseKey converts a key name to a Keys value. Single letters and digits
// (prefixed with D as in D0 to D9) are accepted along with F1 to F12 and the
// names in the namedKeys table.
func ParseKey(s string) (Keys, error) {
	s = strings.TrimSpace(s)

	if k, ok := namedKeys[s]; ok {
		return k, nil
	}

	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return Keys(c), nil
		}
		if c >= '0' && c <= '9' {
			return Keys(c), nil
		}
	}

	if len(s) == 2 && s[0] == 'D' && s[1] >= '0' && s[1] <= '9' {
		return Keys(s[1]), nil
	}

	var n int
	if _, err := fmt.Sscanf(s, "F%d", &n); err == nil && n >= 1 && n <= 12 {
		return KeyF1 + Keys(n-1), nil
	}

	return KeyNone, fmt.Errorf("unknown key name (%s)", s)
}

func (k Keys) String() string {
	for n, v := range namedKeys {
		if v == k {
			return n
		}
	}
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune(k))
	case k >= KeyD0 && k <= KeyD9:
		return fmt.Sprintf("D%c", rune(k))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// KeyboardState is the state of every key on the keyboard at a single moment.
type KeyboardState struct {
	down [4]uint64
}

// NewKeyboardState returns a KeyboardState with the listed keys held down.
func NewKeyboardState(keys ...Keys) KeyboardState {
	var st KeyboardState
	for _, k := range keys {
		st.Press(k)
	}
	return st
}

// Press marks the key as being held down.
func (st *KeyboardState) Press(k Keys) {
	st.down[k>>6] |= 1 << (k & 63)
}

// Release marks the key as not being held down.
func (st *KeyboardState) Release(k Keys) {
	st.down[k>>6] &^= 1 << (k & 63)
}

// IsKeyDown returns true if the key is held down.
func (st KeyboardState) IsKeyDown(k Keys) bool {
	return st.down[k>>6]&(1<<(k&63)) != 0
}

// IsEmpty returns true if no key is held down.
func (st KeyboardState) IsEmpty() bool {
	return st == KeyboardState{}
}

// MouseState is the state of the mouse at a single moment.
type MouseState struct {
	X, Y        int
	ScrollWheel int
	Left        ButtonState
	Right       ButtonState
	Middle      ButtonState
}

// KeyboardData is the double-buffered keyboard state.
type KeyboardData struct {
	Previous KeyboardState
	Current  KeyboardState
}

// Update moves the current state into the previous state and sets the new
// current state.
func (d *KeyboardData) Update(st KeyboardState) {
	d.Previous = d.Current
	d.Current = st
}

// UpdateNull is the same as Update() with a state of no keys pressed.
func (d *KeyboardData) UpdateNull() {
	d.Update(KeyboardState{})
}

// MouseData is the double-buffered mouse state.
type MouseData struct {
	Previous MouseState
	Current  MouseState
}

// UpdateNull moves the current state into the previous state and clears the
// current state.
func (d *MouseData) UpdateNull() {
	d.Previous = d.Current
	d.Current = MouseState{}
}
