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

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/pkg/term"
	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/logger"
)

// TerminalError is returned when the terminal cannot be opened or restored.
const TerminalError = "terminal: %v"

// DefaultHold is the number of ticks a typed key is held for.
const DefaultHold = 3

// Keyboard implements the hotkeys.Device interface with the keys typed in the
// terminal.
type Keyboard struct {
	tty  *term.Term
	hold int

	input chan byte
	quit  chan struct{}

	// remaining ticks for each held key and button
	held    map[device.Keys]int
	buttons map[device.Buttons]int

	done     chan struct{}
	wg       sync.WaitGroup
	quitOnce sync.Once
}

// Open is the preferred method of initialisation for the Keyboard type. The
// terminal is put into raw mode until Close() is called.
func Open(path string, hold int) (*Keyboard, error) {
	tty, err := term.Open(path, term.RawMode)
	if err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	// the service goroutine must notice when the keyboard is closed
	err = tty.SetReadTimeout(100 * time.Millisecond)
	if err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, curated.Errorf(TerminalError, err)
	}

	kb := newKeyboard(hold)
	kb.tty = tty

	kb.wg.Add(1)
	go kb.service()

	return kb, nil
}

func newKeyboard(hold int) *Keyboard {
	return &Keyboard{
		hold:  max(1, hold),
		input: make(chan byte, 16),
		quit:  make(chan struct{}),
		held:    make(map[device.Keys]int),
		buttons: make(map[device.Buttons]int),
		done:    make(chan struct{}),
	}
}

func (kb *Keyboard) service() {
	defer kb.wg.Done()

	b := make([]byte, 1)
	for {
		select {
		case <-kb.done:
			return
		default:
		}

		n, err := kb.tty.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Log(logger.Allow, "easyterm", err)
			return
		}

		// read timed out
		if n == 0 {
			continue
		}

		kb.feed(b[0])
	}
}

func (kb *Keyboard) feed(b byte) {
	if b == KeyCtrlC {
		kb.quitOnce.Do(func() { close(kb.quit) })
		return
	}

	select {
	case kb.input <- b:
	default:
		// typing faster than the ticks can consume
	}
}

// Quit is closed when Ctrl-C is typed in the terminal.
func (kb *Keyboard) Quit() <-chan struct{} {
	return kb.quit
}

func (kb *Keyboard) drain() {
	for {
		select {
		case b := <-kb.input:
			for _, k := range Translate(b) {
				kb.held[k] = kb.hold
			}
			if btn, ok := TranslateButton(b); ok {
				kb.buttons[btn] = kb.hold
			}
		default:
			return
		}
	}
}

// Keyboard implements the hotkeys.Device interface.
func (kb *Keyboard) Keyboard() device.KeyboardState {
	kb.drain()

	var st device.KeyboardState
	for k := range kb.held {
		st.Press(k)
	}
	return st
}

// GamePad implements the hotkeys.Device interface.
func (kb *Keyboard) GamePad() device.GamePadState {
	kb.drain()

	st := device.GamePadState{IsConnected: true}
	for b := range kb.buttons {
		st.Buttons |= b
	}
	st.DPad.Left = device.ButtonState(st.Buttons&device.DPadLeft == device.DPadLeft)
	st.DPad.Right = device.ButtonState(st.Buttons&device.DPadRight == device.DPadRight)
	st.DPad.Up = device.ButtonState(st.Buttons&device.DPadUp == device.DPadUp)
	st.DPad.Down = device.ButtonState(st.Buttons&device.DPadDown == device.DPadDown)
	return st
}

// Advance should be called once per tick. Keys that have been held for long
// enough are released.
func (kb *Keyboard) Advance() {
	release(kb.held)
	release(kb.buttons)
}

func release[K comparable](held map[K]int) {
	for k, n := range held {
		if n <= 1 {
			delete(held, k)
		} else {
			held[k] = n - 1
		}
	}
}

// Close restores the terminal.
func (kb *Keyboard) Close() error {
	close(kb.done)
	kb.wg.Wait()

	if kb.tty == nil {
		return nil
	}

	err := kb.tty.Restore()
	if err != nil {
		return curated.Errorf(TerminalError, err)
	}
	err = kb.tty.Close()
	if err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}
