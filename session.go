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

package main

import (
	"context"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/headless"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/manager"
	"github.com/tasworks/tasengine/paths"
	"github.com/tasworks/tasengine/prefs"
	"github.com/tasworks/tasengine/settings"
	"github.com/tasworks/tasengine/studio"
)

const sessionError = "session: %v"

// options shared by the commands that drive the headless game
type sessionOptions struct {
	// path of the movie. empty if there is no movie
	movie string

	// settings file and command line overrides in the prefs format, for
	// example "tas.fastforwardspeed::20; studio.throttle::5"
	settingsFile string
	prefs        string

	// websocket URL of the studio. the StudioAddress setting is used if empty
	studioURL string

	unsafe bool

	recorder  manager.Recorder
	observers []manager.FrameObserver
}

type session struct {
	settings *settings.Settings
	game     *headless.Game
	cursor   *inputs.Controller
	info     *gameinfo.Holder
	mgr      *manager.Manager
	runner   *headless.Runner

	// nil if not connected to a studio
	studio *studio.Client
}

// permits unsafe input for every run
type unsafeHook struct {
	mgr *manager.Manager
}

func (h *unsafeHook) OnEnable() {
	h.mgr.SetAllowUnsafeInput(true)
}

func (h *unsafeHook) OnDisable() {
}

// newSession creates the game and the manager. The live device provides the
// hotkeys and the player's input. If it is a headless.Advancer it is advanced
// once per tick.
func newSession(ctx context.Context, opts sessionOptions, live hotkeys.Device) (*session, error) {
	sess := &session{}

	pth := opts.settingsFile
	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", "settings.yaml")
		if err != nil {
			return nil, curated.Errorf(sessionError, err)
		}
	}

	var err error
	sess.settings, err = settings.NewSettings(pth)
	if err != nil {
		return nil, curated.Errorf(sessionError, err)
	}
	if opts.prefs != "" {
		prefs.PushCommandLineStack(opts.prefs)
		defer prefs.PopCommandLineStack()
	}
	err = sess.settings.Load()
	if err != nil {
		return nil, curated.Errorf(sessionError, err)
	}

	var src inputs.Source
	if opts.movie != "" {
		fs := inputs.NewFileSource(opts.movie)
		if _, _, err := fs.Movie(); err != nil {
			return nil, curated.Errorf(sessionError, err)
		}
		src = fs
	} else {
		src = inputs.NewStaticSource(inputs.Movie{})
	}
	sess.cursor = inputs.NewController(src)

	sess.game = headless.NewGame(nil)
	sess.game.AttachLive(live)
	sess.info = gameinfo.NewHolder(sess.game)

	var sender studio.Sender = studio.Null{}
	var commands <-chan studio.Command
	url := opts.studioURL
	if url == "" {
		url = sess.settings.StudioAddress.Get().(string)
	}
	if url != "" {
		sess.studio, err = studio.Dial(ctx, url, sess.game.Version())
		if err != nil {
			return nil, curated.Errorf(sessionError, err)
		}
		sender = sess.studio
		commands = sess.studio.Commands()
	}

	var hooks []manager.Hook
	var uh *unsafeHook
	if opts.unsafe {
		uh = &unsafeHook{}
		hooks = append(hooks, uh)
	}

	sess.mgr, err = manager.NewManager(manager.Config{
		Host:       sess.game,
		Cursor:     sess.cursor,
		Hotkeys:    hotkeys.NewHotkeys(live, sess.settings),
		Settings:   sess.settings,
		Capability: sess.game,
		Studio:     sender,
		Commands:   commands,
		GameInfo:   sess.info,
		Hooks:      hooks,
		Observers:  opts.observers,
		Recorder:   opts.recorder,
	})
	if err != nil {
		sess.close()
		return nil, curated.Errorf(sessionError, err)
	}
	if uh != nil {
		uh.mgr = sess.mgr
	}

	sess.runner = &headless.Runner{
		Game:     sess.game,
		Engine:   sess.mgr,
		GameInfo: sess.info,
	}
	if adv, ok := live.(headless.Advancer); ok {
		sess.runner.Advance = append(sess.runner.Advance, adv)
	}

	return sess, nil
}

func (sess *session) close() error {
	if sess.mgr != nil {
		sess.mgr.Shutdown()
	}
	if sess.studio != nil {
		return sess.studio.Close()
	}
	return nil
}
