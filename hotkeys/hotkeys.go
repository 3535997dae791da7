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

// Package hotkeys samples the keyboard and gamepad once per tick and converts
// the raw state into held/edge signals for each bound TAS action.
package hotkeys

import (
	"math"
	"strings"

	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/logger"
	"github.com/tasworks/tasengine/settings"
)

// Device is sampled by Hotkeys.Update(). Implementations return the state of
// the physical devices at the moment of the call.
type Device interface {
	Keyboard() device.KeyboardState
	GamePad() device.GamePadState
}

// Hotkey is a single bound action.
type Hotkey struct {
	Keys    []device.Keys
	Buttons []device.Buttons

	// if Combo is true then all keys (or all buttons) in the binding must be
	// held for the hotkey to be held. otherwise any one of them is enough
	Combo bool

	// Override forces the hotkey to be held regardless of device state. for
	// example, the studio can request fast-forward on behalf of the user
	Override bool

	check     bool
	lastCheck bool
}

func (h *Hotkey) update(kb device.KeyboardState, pad device.GamePadState) {
	h.lastCheck = h.check
	h.check = h.keysDown(kb) || h.buttonsDown(pad)
}

func (h *Hotkey) keysDown(kb device.KeyboardState) bool {
	if len(h.Keys) == 0 {
		return false
	}
	for _, k := range h.Keys {
		d := kb.IsKeyDown(k)
		if h.Combo && !d {
			return false
		}
		if !h.Combo && d {
			return true
		}
	}
	return h.Combo
}

func (h *Hotkey) buttonsDown(pad device.GamePadState) bool {
	if len(h.Buttons) == 0 {
		return false
	}
	for _, b := range h.Buttons {
		d := pad.IsButtonDown(b)
		if h.Combo && !d {
			return false
		}
		if !h.Combo && d {
			return true
		}
	}
	return h.Combo
}

// Check returns true if the hotkey is held this tick.
func (h *Hotkey) Check() bool {
	return h.check || h.Override
}

// LastCheck returns true if the hotkey was held the previous tick.
func (h *Hotkey) LastCheck() bool {
	return h.lastCheck
}

// Pressed returns true if the hotkey is held this tick but was not held the
// previous tick.
func (h *Hotkey) Pressed() bool {
	return h.check && !h.lastCheck
}

// Released returns true if the hotkey was held the previous tick but is not
// held this tick.
func (h *Hotkey) Released() bool {
	return !h.check && h.lastCheck
}

// Hotkeys is the complete set of TAS hotkeys.
type Hotkeys struct {
	dev      Device
	settings *settings.Settings

	StartStop          Hotkey
	Restart            Hotkey
	FastForward        Hotkey
	FastForwardComment Hotkey
	FrameAdvance       Hotkey
	PauseResume        Hotkey
	SaveState          Hotkey
	ClearState         Hotkey

	// signed length of the right analog stick
	rightThumbSticksLength float32
}

// NewHotkeys is the preferred method of initialisation for the Hotkeys type.
func NewHotkeys(dev Device, s *settings.Settings) *Hotkeys {
	hk := &Hotkeys{
		dev:      dev,
		settings: s,
	}
	hk.Rebind()
	return hk
}

func (hk *Hotkeys) all() []*Hotkey {
	return []*Hotkey{
		&hk.StartStop, &hk.Restart, &hk.FastForward, &hk.FastForwardComment,
		&hk.FrameAdvance, &hk.PauseResume, &hk.SaveState, &hk.ClearState,
	}
}

// Rebind reads the key and button bindings from the settings. Names that
// cannot be parsed are logged and ignored.
func (hk *Hotkeys) Rebind() {
	if hk.settings == nil {
		return
	}

	bind := func(h *Hotkey, b *settings.Binding) {
		h.Keys = h.Keys[:0]
		h.Buttons = h.Buttons[:0]
		h.Combo = true

		for _, n := range split(b.Keys.String()) {
			k, err := device.ParseKey(n)
			if err != nil {
				logger.Logf(logger.Allow, "hotkeys", "%v", err)
				continue
			}
			h.Keys = append(h.Keys, k)
		}

		for _, n := range split(b.Buttons.String()) {
			btn, err := device.ParseButton(n)
			if err != nil {
				logger.Logf(logger.Allow, "hotkeys", "%v", err)
				continue
			}
			h.Buttons = append(h.Buttons, btn)
		}
	}

	bind(&hk.StartStop, &hk.settings.StartStop)
	bind(&hk.Restart, &hk.settings.Restart)
	bind(&hk.FastForward, &hk.settings.FastForward)
	bind(&hk.FastForwardComment, &hk.settings.FastForwardComment)
	bind(&hk.FrameAdvance, &hk.settings.FrameAdvance)
	bind(&hk.PauseResume, &hk.settings.PauseResume)
	bind(&hk.SaveState, &hk.settings.SaveState)
	bind(&hk.ClearState, &hk.settings.ClearState)
}

func split(s string) []string {
	var l []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			l = append(l, n)
		}
	}
	return l
}

// Update samples the device and updates every hotkey. Should be called once
// per tick.
func (hk *Hotkeys) Update() {
	var kb device.KeyboardState
	var pad device.GamePadState
	if hk.dev != nil {
		kb = hk.dev.Keyboard()
		pad = hk.dev.GamePad()
	}

	for _, h := range hk.all() {
		h.update(kb, pad)
	}

	// the sign of the stick length follows the horizontal direction of the
	// stick. pushing left slows the run down, pushing right speeds it up
	r := pad.ThumbSticks.Right
	hk.rightThumbSticksLength = r.Length()
	if r.X < 0 {
		hk.rightThumbSticksLength = -hk.rightThumbSticksLength
	}
	hk.rightThumbSticksLength = float32(math.Max(-1, math.Min(1, float64(hk.rightThumbSticksLength))))
}

// RightThumbSticksLength returns the signed length of the right analog stick
// in the range -1 to 1.
func (hk *Hotkeys) RightThumbSticksLength() float32 {
	return hk.rightThumbSticksLength
}
