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

package savestates

import (
	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/logger"
	"github.com/tasworks/tasengine/settings"
)

// Capability is the external save/restore tool.
type Capability interface {
	// SaveState and LoadState return false if the tool refuses the request
	SaveState() bool
	LoadState() bool
	ClearState()

	// IsSaved is true if the tool is holding a savestate. SavedByTas is true
	// if that savestate was made at the request of tasengine
	IsSaved() bool
	SavedByTas() bool
}

// Runner is implemented by the run manager.
type Runner interface {
	Running() bool
	EnableRun()
	DisableRun(clear bool)

	// ForceFrameStep sets or clears the current frame-step state. In both
	// cases any pending frame-step request is dropped
	ForceFrameStep(on bool)

	SendStateToStudio()
}

// SceneReporter reports the current scene of the host.
type SceneReporter interface {
	Scene() host.Scene
}

// Config for NewCoordinator().
type Config struct {
	// a nil Capability means no save tool is installed
	Capability Capability

	Cursor   inputs.Cursor
	Hotkeys  *hotkeys.Hotkeys
	Scene    SceneReporter
	Settings *settings.Settings
	GameInfo *gameinfo.Holder
}

// Coordinator owns the savestate snapshot.
type Coordinator struct {
	cfg    Config
	runner Runner

	// a clone of the live cursor at the moment of the save. nil if there is
	// no savestate
	saved inputs.Cursor

	savedByBreakpoint bool
	savedInfo         gameinfo.Info
}

// NewCoordinator is the preferred method of initialisation for the
// Coordinator type.
func NewCoordinator(cfg Config, runner Runner) *Coordinator {
	if cfg.GameInfo == nil {
		cfg.GameInfo = gameinfo.NewHolder(nil)
	}
	return &Coordinator{
		cfg:    cfg,
		runner: runner,
	}
}

// Installed returns true if a save tool is available.
func (co *Coordinator) Installed() bool {
	return co.cfg.Capability != nil
}

// IsSaved returns true if there is a savestate made by tasengine.
func (co *Coordinator) IsSaved() bool {
	if co.cfg.Capability == nil || co.saved == nil {
		return false
	}
	return co.cfg.Capability.IsSaved() && co.cfg.Capability.SavedByTas()
}

// SavedFrame returns the frame of the savestate or -1 if there is no
// savestate.
func (co *Coordinator) SavedFrame() int {
	if !co.IsSaved() {
		return -1
	}
	return co.saved.CurrentFrame()
}

// SavedByBreakpoint returns true if the savestate was made when a breakpoint
// marker was reached, rather than by the user.
func (co *Coordinator) SavedByBreakpoint() bool {
	return co.savedByBreakpoint
}

func (co *Coordinator) savedLine() int {
	frame := co.SavedFrame()
	if frame < 0 {
		return -1
	}

	if co.savedByBreakpoint {
		if ff, ok := co.cfg.Cursor.FastForwardAt(frame); ok {
			return ff.Line
		}
		return -1
	}

	if f, ok := co.cfg.Cursor.InputAt(frame); ok {
		return f.Line
	}
	return -1
}

// StudioHighlightLine returns the line of the movie the studio should
// highlight as the savestate position. Returns -1 if there is nothing to
// highlight.
func (co *Coordinator) StudioHighlightLine() int {
	if !co.Installed() || !co.IsSaved() {
		return -1
	}
	return co.savedLine()
}

// the savestate was made at a breakpoint marker and the marker is no longer
// in the movie
func (co *Coordinator) breakpointHasBeenDeleted() bool {
	if !co.IsSaved() || !co.savedByBreakpoint {
		return false
	}
	ff, ok := co.cfg.Cursor.FastForwardAt(co.saved.CurrentFrame())
	return !ok || !ff.SaveState
}

// HandleSaveStates is called once per tick by the run manager, after the
// hotkeys have been updated. The first matching rule is acted upon.
func (co *Coordinator) HandleSaveStates() {
	if !co.Installed() {
		return
	}

	running := co.runner.Running()
	scene := co.cfg.Scene.Scene()
	hk := co.cfg.Hotkeys
	cursor := co.cfg.Cursor

	if !running && co.IsSaved() && scene == host.Level && hk.Restart.Released() {
		co.Load()
		return
	}

	if running && hk.SaveState.Pressed() {
		co.Save(false)
		return
	}

	if hk.Restart.Pressed() && !hk.SaveState.Check() {
		co.Load()
		return
	}

	if hk.ClearState.Pressed() && !hk.SaveState.Check() {
		co.Clear()
		co.runner.DisableRun(false)
		return
	}

	// an edited movie can invalidate the savestate and also reach a new
	// savestate marker in the same tick so there is no return here
	if running && co.breakpointHasBeenDeleted() {
		co.Clear()
	}

	// save state when the run reaches the last savestate marker
	if running && cursor.TotalFrames() > cursor.CurrentFrame() {
		if ff, ok := cursor.CurrentFastForward(); ok && ff.SaveState {
			last, ok := cursor.LastSaveStateFastForward()
			if ok && last.Frame == ff.Frame && co.SavedFrame() != ff.Frame {
				co.Save(true)
				return
			}
		}
	}

	// load state after entering the level if the run was started from
	// outside the level
	if running && co.IsSaved() && scene == host.Level && cursor.CurrentFrame() < co.saved.CurrentFrame() {
		co.Load()
	}
}

// Save the game state. Saving at the frame of the existing savestate, with an
// unchanged movie, does nothing except end any frame-stepping.
func (co *Coordinator) Save(breakpoint bool) {
	cursor := co.cfg.Cursor

	if co.IsSaved() && cursor.CurrentFrame() == co.saved.CurrentFrame() {
		if co.saved.SavedChecksum() == cursor.Checksum(co.saved) {
			co.runner.ForceFrameStep(false)
			return
		}
	}

	if !co.cfg.Capability.SaveState() {
		logger.Logf(logger.Allow, "savestates", "save refused at frame %d", cursor.CurrentFrame())
		return
	}

	co.savedByBreakpoint = breakpoint
	co.savedInfo = co.cfg.GameInfo.Snapshot()
	co.saved = cursor.Clone()
	co.loadStateRoutine()

	logger.Logf(logger.Allow, "savestates", "saved at frame %d", co.saved.CurrentFrame())
}

// Load the game state. If the savestate cannot be loaded the movie is played
// from the start.
func (co *Coordinator) Load() {
	if co.cfg.Scene.Scene() == host.LevelLoader {
		return
	}

	if co.IsSaved() {
		cursor := co.cfg.Cursor
		cursor.RefreshInputs(false)

		if !co.breakpointHasBeenDeleted() && co.saved.SavedChecksum() == cursor.Checksum(co.saved) {
			// don't load the savestate again if we're already there
			if co.runner.Running() && cursor.CurrentFrame() == co.saved.CurrentFrame() {
				co.runner.ForceFrameStep(false)
				return
			}

			if co.cfg.Capability.LoadState() {
				if !co.runner.Running() {
					co.runner.EnableRun()
				}
				co.loadStateRoutine()
				logger.Logf(logger.Allow, "savestates", "loaded frame %d", co.saved.CurrentFrame())
				return
			}

			logger.Log(logger.Allow, "savestates", "load refused")
		} else {
			logger.Log(logger.Allow, "savestates", "movie has changed since savestate was made")
			co.Clear()
		}
	}

	co.playFromStart()
}

// Clear the savestate.
func (co *Coordinator) Clear() {
	if co.cfg.Capability != nil {
		co.cfg.Capability.ClearState()
	}
	co.saved = nil
	co.savedInfo = gameinfo.Info{}
	co.savedByBreakpoint = false
	co.runner.SendStateToStudio()
}

// Shutdown clears any savestate made by tasengine.
func (co *Coordinator) Shutdown() {
	if co.Installed() && co.IsSaved() {
		co.Clear()
	}
}

func (co *Coordinator) playFromStart() {
	co.runner.DisableRun(false)
	co.runner.EnableRun()
}

func (co *Coordinator) loadStateRoutine() {
	co.cfg.Cursor.CopyFrom(co.saved)

	pause := co.cfg.Settings != nil && co.cfg.Settings.PauseAfterLoad()
	co.runner.ForceFrameStep((pause || co.savedByBreakpoint) && !co.cfg.Cursor.HasFastForward())

	co.cfg.GameInfo.Restore(co.savedInfo)
	co.runner.SendStateToStudio()
}
