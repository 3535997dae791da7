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

// Package settings holds the user-tunable values of the TAS engine. Every
// value is a prefs type so that it can be changed while the engine is running
// and persisted with a prefs.Disk instance.
package settings

import (
	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/prefs"
)

// Binding is the pair of key and button lists that trigger a hotkey. Both
// lists are comma separated names understood by device.ParseKey() and
// device.ParseButton().
type Binding struct {
	Keys    prefs.String
	Buttons prefs.String
}

// Settings for the TAS engine.
type Settings struct {
	dsk *prefs.Disk

	// pause (frame-step) after a savestate is loaded
	PauseAfterLoadState prefs.Bool

	// the number of frames to run per tick when the fast-forward hotkey is held
	FastForwardSpeed prefs.Float

	// the slowest speed reachable with the analog stick
	SlowForwardMinSpeed prefs.Float

	// during ultra fast-forward only one in every StudioThrottle ticks is
	// reported to the studio
	StudioThrottle prefs.Int

	// websocket address of the studio. empty to disable
	StudioAddress prefs.String

	StartStop          Binding
	Restart            Binding
	FastForward        Binding
	FastForwardComment Binding
	FrameAdvance       Binding
	PauseResume        Binding
	SaveState          Binding
	ClearState         Binding
}

// NewSettings is the preferred method of initialisation for the Settings
// type. If path is not empty the settings are bound to a prefs file at that
// path, but are not loaded until Load() is called.
func NewSettings(path string) (*Settings, error) {
	s := &Settings{}
	if err := s.SetDefaults(); err != nil {
		return nil, err
	}

	if path == "" {
		return s, nil
	}

	var err error
	s.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	add := func(key string, p interface {
		Set(prefs.Value) error
		Get() prefs.Value
		Reset() error
		String() string
	}) {
		if err == nil {
			err = s.dsk.Add(key, p)
		}
	}

	add("tas.pauseafterloadstate", &s.PauseAfterLoadState)
	add("tas.fastforwardspeed", &s.FastForwardSpeed)
	add("tas.slowforwardminspeed", &s.SlowForwardMinSpeed)
	add("studio.throttle", &s.StudioThrottle)
	add("studio.address", &s.StudioAddress)

	for name, b := range s.bindings() {
		add("hotkeys."+name+".keys", &b.Keys)
		add("hotkeys."+name+".buttons", &b.Buttons)
	}

	if err != nil {
		return nil, curated.Errorf("settings: %v", err)
	}

	return s, nil
}

func (s *Settings) bindings() map[string]*Binding {
	return map[string]*Binding{
		"startstop":          &s.StartStop,
		"restart":            &s.Restart,
		"fastforward":        &s.FastForward,
		"fastforwardcomment": &s.FastForwardComment,
		"frameadvance":       &s.FrameAdvance,
		"pauseresume":        &s.PauseResume,
		"savestate":          &s.SaveState,
		"clearstate":         &s.ClearState,
	}
}

// SetDefaults reverts all settings to default values.
func (s *Settings) SetDefaults() error {
	for _, f := range []func() error{
		func() error { return s.PauseAfterLoadState.Set(false) },
		func() error { return s.FastForwardSpeed.Set(10) },
		func() error { return s.SlowForwardMinSpeed.Set(1.0 / 60.0) },
		func() error { return s.StudioThrottle.Set(23) },
		func() error { return s.StudioAddress.Set("") },

		func() error { return s.StartStop.Keys.Set("RightControl, OemOpenBrackets") },
		func() error { return s.Restart.Keys.Set("OemPlus") },
		func() error { return s.FastForward.Keys.Set("RightControl, RightShift") },
		func() error { return s.FastForwardComment.Keys.Set("RightAlt, OemPeriod") },
		func() error { return s.FrameAdvance.Keys.Set("OemOpenBrackets") },
		func() error { return s.PauseResume.Keys.Set("OemCloseBrackets") },
		func() error { return s.SaveState.Keys.Set("RightAlt, OemMinus") },
		func() error { return s.ClearState.Keys.Set("RightAlt, Back") },

		func() error { return s.StartStop.Buttons.Set("") },
		func() error { return s.Restart.Buttons.Set("") },
		func() error { return s.FastForward.Buttons.Set("") },
		func() error { return s.FastForwardComment.Buttons.Set("") },
		func() error { return s.FrameAdvance.Buttons.Set("") },
		func() error { return s.PauseResume.Buttons.Set("") },
		func() error { return s.SaveState.Buttons.Set("") },
		func() error { return s.ClearState.Buttons.Set("") },
	} {
		if err := f(); err != nil {
			return curated.Errorf("settings: %v", err)
		}
	}
	return nil
}

// Load settings from disk. Does nothing if the settings are not bound to a
// file.
func (s *Settings) Load() error {
	if s.dsk == nil {
		return nil
	}
	return s.dsk.Load()
}

// Save settings to disk. Does nothing if the settings are not bound to a
// file.
func (s *Settings) Save() error {
	if s.dsk == nil {
		return nil
	}
	return s.dsk.Save()
}

// PauseAfterLoad is a convenience function returning the current value of
// the PauseAfterLoadState setting.
func (s *Settings) PauseAfterLoad() bool {
	return s.PauseAfterLoadState.Get().(bool)
}
