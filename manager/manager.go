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

package manager

import (
	"fmt"
	"math"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/device"
	"github.com/tasworks/tasengine/emitter"
	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/logger"
	"github.com/tasworks/tasengine/savestates"
	"github.com/tasworks/tasengine/settings"
	"github.com/tasworks/tasengine/studio"
)

// Hook is implemented by types that need to know when a run is enabled or
// disabled.
type Hook interface {
	OnEnable()
	OnDisable()
}

// FrameObserver is implemented by types that want to see every frame played
// by the run.
type FrameObserver interface {
	PlayedFrame(frame int, f inputs.Frame)
}

// Recorder transcribes live input while the run is in the Record state.
type Recorder interface {
	Start() error
	Record(f inputs.Frame)
	End() error
}

// Config for NewManager(). Host, Cursor, Hotkeys and Settings are required.
type Config struct {
	Host     host.Host
	Cursor   inputs.Cursor
	Hotkeys  *hotkeys.Hotkeys
	Settings *settings.Settings

	// a nil Capability means no savestate tool is installed
	Capability savestates.Capability

	// a nil Studio is replaced with studio.Null
	Studio studio.Sender

	// commands from the studio. drained at the start of every Tick(). may be
	// nil
	Commands <-chan studio.Command

	GameInfo  *gameinfo.Holder
	Hooks     []Hook
	Observers []FrameObserver
	Recorder  Recorder
}

// ManagerError is returned by NewManager() and StartRecording().
const ManagerError = "manager: %v"

// Manager is the run-state machine.
type Manager struct {
	cfg        Config
	emitter    *emitter.Emitter
	savestates *savestates.Coordinator

	reg       registers
	running   bool
	recording bool

	frameLoops float64

	enforceLegal     bool
	allowUnsafeInput bool
}

// NewManager is the preferred method of initialisation for the Manager type.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Host == nil || cfg.Cursor == nil || cfg.Hotkeys == nil || cfg.Settings == nil {
		return nil, curated.Errorf(ManagerError, "incomplete configuration")
	}
	if cfg.Studio == nil {
		cfg.Studio = studio.Null{}
	}
	if cfg.GameInfo == nil {
		cfg.GameInfo = gameinfo.NewHolder(nil)
	}

	m := &Manager{
		cfg:        cfg,
		emitter:    emitter.NewEmitter(cfg.Host),
		frameLoops: 1,
	}

	m.savestates = savestates.NewCoordinator(savestates.Config{
		Capability: cfg.Capability,
		Cursor:     cfg.Cursor,
		Hotkeys:    cfg.Hotkeys,
		Scene:      cfg.Host,
		Settings:   cfg.Settings,
		GameInfo:   cfg.GameInfo,
	}, m)

	return m, nil
}

func (m *Manager) String() string {
	return fmt.Sprintf("%s x%g (frame %d/%d)", m.reg.current, m.frameLoops, m.cfg.Cursor.CurrentFrame(), m.cfg.Cursor.TotalFrames())
}

// AllowLogging implements the logger.Permission interface. Logging is
// suppressed during ultra fast-forward.
func (m *Manager) AllowLogging() bool {
	return !m.UltraFastForwarding()
}

// Savestates returns the savestate coordinator.
func (m *Manager) Savestates() *savestates.Coordinator {
	return m.savestates
}

// Running returns true if the run is playing back the movie.
func (m *Manager) Running() bool {
	return m.running
}

// Recording returns true if the run is recording live input.
func (m *Manager) Recording() bool {
	return m.recording
}

// State returns the current state register.
func (m *Manager) State() State {
	return m.reg.current
}

// NextState returns the pending requests.
func (m *Manager) NextState() State {
	return m.reg.next
}

// LastState returns the state register as it was at the start of the tick.
func (m *Manager) LastState() State {
	return m.reg.last
}

// FrameLoops returns the number of frames to run per tick. Values of 100 and
// above are ultra fast-forward. Values below 1 are slow-forward.
func (m *Manager) FrameLoops() float64 {
	return m.frameLoops
}

// UltraFastForwarding returns true if the run is playing at a speed where
// reporting should be kept to a minimum.
func (m *Manager) UltraFastForwarding() bool {
	return m.frameLoops >= 100 && m.running
}

// SlowForwarding returns true if the run is playing slower than normal.
func (m *Manager) SlowForwarding() bool {
	return m.frameLoops < 1
}

// SkipSlowForwardingFrame returns true if the host frame counter indicates
// that this tick should be skipped at the current slow-forward speed.
func SkipSlowForwardingFrame(frameCounter uint64, frameLoops float64) bool {
	if frameLoops >= 1 {
		return false
	}
	fc := float64(frameCounter)
	return int64((fc+1)*frameLoops) == int64(fc*frameLoops)
}

// SkipFrame returns true if the host should not run a game update this tick.
func (m *Manager) SkipFrame() bool {
	return m.reg.current.Has(FrameStep) || SkipSlowForwardingFrame(m.cfg.Host.FrameCounter(), m.frameLoops)
}

// EnforceLegal returns true if the run is restricted to legal inputs.
func (m *Manager) EnforceLegal() bool {
	return m.enforceLegal
}

// SetEnforceLegal restricts the run to legal inputs. Reset when the run is
// disabled.
func (m *Manager) SetEnforceLegal(v bool) {
	m.enforceLegal = v
}

// AllowUnsafeInput returns true if the run may continue outside of a level.
func (m *Manager) AllowUnsafeInput() bool {
	return m.allowUnsafeInput
}

// SetAllowUnsafeInput allows the run to continue when the host is in a scene
// where input is not safe. Reset when the run is disabled.
func (m *Manager) SetAllowUnsafeInput(v bool) {
	m.allowUnsafeInput = v
}

// ForceFrameStep implements the savestates.Runner interface.
func (m *Manager) ForceFrameStep(on bool) {
	if on {
		m.reg.stepNow()
	} else {
		m.reg.resume()
	}
}

// Tick should be called once per host update.
func (m *Manager) Tick() {
	m.reg.last = m.reg.current

	m.studioCommands()
	m.cfg.Hotkeys.Update()
	m.savestates.HandleSaveStates()
	m.handleFrameRates()
	m.checkToEnable()
	m.frameStepping()

	if m.reg.current.Has(Enable) {
		m.running = true

		if m.reg.current.Has(Record) {
			m.record()
		} else if !m.SkipFrame() {
			m.advance()
		}
	} else {
		m.running = false
		if !m.cfg.Host.IsActive() {
			m.nullInputs()
		}
	}

	m.SendStateToStudio()
}

func (m *Manager) studioCommands() {
	for {
		select {
		case cmd := <-m.cfg.Commands:
			m.cfg.Hotkeys.FastForward.Override = cmd.FastForward
		default:
			return
		}
	}
}

func (m *Manager) advance() {
	cursor := m.cfg.Cursor

	breakpoint, canPlayback := cursor.AdvanceFrame()
	if canPlayback {
		if f, ok := cursor.Previous(); ok {
			m.emitter.Apply(f)
			for _, o := range m.cfg.Observers {
				o.PlayedFrame(cursor.CurrentFrame()-1, f)
			}
		}
	}

	// pause at a breakpoint unless it is at the end of the movie
	if breakpoint && cursor.CanPlayback() {
		m.reg.stepNext()
		m.frameLoops = 1
	}

	if !canPlayback {
		logger.Logf(m, "manager", "end of movie at frame %d", cursor.CurrentFrame())
		m.DisableRun(false)
		return
	}

	if !m.allowUnsafeInput && !(host.InputSafe(m.cfg.Host.Scene()) || cursor.CurrentFrame() <= 1) {
		logger.Logf(m, "manager", "unsafe input in scene %s at frame %d", m.cfg.Host.Scene(), cursor.CurrentFrame())
		m.DisableRun(false)
	}
}

func (m *Manager) record() {
	if m.cfg.Recorder == nil {
		return
	}
	m.cfg.Recorder.Record(emitter.Capture(m.cfg.Host.Inputs()))
}

// the host window does not have focus so physical devices are ignored
func (m *Manager) nullInputs() {
	in := m.cfg.Host.Inputs()
	in.Keyboard.UpdateNull()
	in.Mouse.UpdateNull()
	for i := range in.GamePads {
		if in.Active {
			in.GamePads[i].Update(m.cfg.Host.GamePadState(i))
		} else {
			in.GamePads[i].UpdateNull()
		}
	}
	m.cfg.Host.UpdateVirtualInputs()
}

func (m *Manager) handleFrameRates() {
	m.frameLoops = 1

	cur := m.reg.current
	if !cur.Has(Enable) || cur.Has(FrameStep) || m.reg.next.Has(FrameStep) || cur.Has(Record) {
		return
	}

	if m.cfg.Cursor.HasFastForward() {
		m.frameLoops = m.cfg.Cursor.FastForwardSpeed()
	}

	hk := m.cfg.Hotkeys
	if hk.FastForward.Check() {
		m.frameLoops = m.cfg.Settings.FastForwardSpeed.Get().(float64)
		return
	}

	stick := float64(hk.RightThumbSticksLength())
	length := math.RoundToEven(stick * 10)
	if length >= 2 {
		m.frameLoops = length
	} else if length <= -2 {
		m.frameLoops = math.Max(1+stick, m.cfg.Settings.SlowForwardMinSpeed.Get().(float64))
	}
}

func (m *Manager) checkToEnable() {
	hk := m.cfg.Hotkeys

	if !m.savestates.Installed() && hk.Restart.Pressed() {
		m.DisableRun(false)
		m.EnableRun()
		return
	}

	if hk.StartStop.Pressed() {
		if m.reg.current.Has(Enable) {
			m.reg.request(Disable)
		} else {
			m.reg.request(Enable)
		}
	} else if m.reg.next.Has(Enable) {
		m.EnableRun()
	} else if m.reg.next.Has(Disable) {
		m.DisableRun(false)
	}
}

func (m *Manager) frameStepping() {
	hk := m.cfg.Hotkeys
	frameAdvance := hk.FrameAdvance.Check() && !hk.StartStop.Check()
	pause := hk.PauseResume.Check() && !hk.StartStop.Check()

	if !m.reg.current.Has(Enable) || m.reg.current.Has(Record) {
		return
	}

	m.reg.promote()

	stepping := m.reg.current.Has(FrameStep)

	if frameAdvance && !hk.FrameAdvance.LastCheck() {
		if !stepping {
			m.reg.stepNow()
		} else {
			m.reg.stepNext()
		}
	} else if pause && !hk.PauseResume.LastCheck() {
		if !stepping {
			m.reg.stepNow()
		} else {
			m.reg.resume()
		}
	} else if m.reg.last.Has(FrameStep) && stepping && hk.FastForward.Check() && !hk.FastForwardComment.Check() {
		m.reg.stepNext()
	}
}

// EnableRun starts playback of the movie from the beginning. Refused while
// the host is starting up.
func (m *Manager) EnableRun() {
	if m.cfg.Host.Scene() == host.GameLoader {
		return
	}

	m.reg.next &^= Enable
	for _, h := range m.cfg.Hooks {
		h.OnEnable()
	}
	m.initializeRun(false)

	logger.Logf(m, "manager", "run enabled (%d frames)", m.cfg.Cursor.TotalFrames())
}

// StartRecording starts a run that transcribes live input rather than playing
// back the movie.
func (m *Manager) StartRecording() error {
	if m.cfg.Recorder == nil {
		return curated.Errorf(ManagerError, "no recorder")
	}
	if m.cfg.Host.Scene() == host.GameLoader {
		return curated.Errorf(ManagerError, "cannot record while the game is loading")
	}

	err := m.cfg.Recorder.Start()
	if err != nil {
		return curated.Errorf(ManagerError, err)
	}

	m.reg.next &^= Enable
	for _, h := range m.cfg.Hooks {
		h.OnEnable()
	}
	m.initializeRun(true)

	logger.Log(m, "manager", "recording started")
	return nil
}

func (m *Manager) initializeRun(recording bool) {
	m.reg.current |= Enable
	m.reg.current &^= FrameStep

	if recording {
		m.recording = true
		m.reg.current |= Record
		return
	}

	m.reg.current &^= Record
	m.cfg.Cursor.RefreshInputs(true)
	m.running = true
}

// DisableRun stops the run. If clear is true the cursor also forgets the
// movie, which will be read again when the run is next enabled.
func (m *Manager) DisableRun(clear bool) {
	m.running = false

	if m.recording && m.cfg.Recorder != nil {
		err := m.cfg.Recorder.End()
		if err != nil {
			logger.Log(logger.Allow, "manager", err)
		}
	}
	m.recording = false

	m.reg.reset()

	m.enforceLegal = false
	m.allowUnsafeInput = false

	// the last emitted input would otherwise be held for one more frame
	if gp := m.cfg.Host.Inputs().FirstAttached(); gp != nil {
		gp.Current = device.GamePadState{}
	}

	for _, h := range m.cfg.Hooks {
		h.OnDisable()
	}

	m.cfg.Cursor.Stop()
	if clear {
		m.cfg.Cursor.Clear()
	}

	logger.Logf(logger.Allow, "manager", "run disabled at frame %d", m.cfg.Cursor.CurrentFrame())
}

// Shutdown should be called when the host is shutting down.
func (m *Manager) Shutdown() {
	if m.reg.current.Has(Enable) {
		m.DisableRun(false)
	}
	m.savestates.Shutdown()
}

// SendStateToStudio reports the state of the run to the studio. Nothing is
// sent while a frame-step is pending, unless fast-forward is being forced.
// During ultra fast-forward only a fraction of calls result in a report.
func (m *Manager) SendStateToStudio() {
	throttle := uint64(23)
	if t := m.cfg.Settings.StudioThrottle.Get().(int); t > 0 {
		throttle = uint64(t)
	}
	if m.UltraFastForwarding() && m.cfg.Host.FrameCounter()%throttle > 0 {
		return
	}

	if m.shouldForceState() {
		return
	}

	m.cfg.Studio.Send(m.StudioInfo())
}

func (m *Manager) shouldForceState() bool {
	return m.reg.next.Has(FrameStep) && !m.cfg.Hotkeys.FastForward.Override
}

// StudioInfo returns the current state of the run in the form sent to the
// studio.
func (m *Manager) StudioInfo() studio.Info {
	cursor := m.cfg.Cursor
	inf := studio.Info{
		CurrentLine:       -1,
		FrameInput:        fmt.Sprintf("%d", cursor.CurrentFrameInInput()),
		CurrentFrameInTas: cursor.CurrentFrame(),
		TotalFrames:       cursor.TotalFrames(),
		HighlightLine:     m.savestates.StudioHighlightLine(),
		StateBits:         int(m.reg.current),
		GameInfoText:      m.cfg.GameInfo.StudioInfo(),
		LevelName:         m.cfg.GameInfo.LevelName,
		ChapterTimeText:   m.cfg.GameInfo.ChapterTime,
		VersionString:     m.cfg.Host.Version(),
	}
	if p, ok := cursor.Previous(); ok {
		inf.CurrentLine = p.Line
		inf.FrameInput += p.RepeatString()
	}
	return inf
}
