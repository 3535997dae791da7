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
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"
	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/easyterm"
	"github.com/tasworks/tasengine/headless"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/manager"
	"github.com/tasworks/tasengine/performance"
	"github.com/tasworks/tasengine/recorder"
	"github.com/tasworks/tasengine/statsview"
)

// Sentinal error returned by the run command when the movie does not play
// back the recording given with --verify.
const verifyError = "verify: %v"

type runFlags struct {
	ticks     int
	studio    string
	settings  string
	prefs     string
	realtime  bool
	keyboard  bool
	statsview bool
	memviz    string
	unsafe    bool
	verify    string
	trace     bool
	profile   string
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:   "run <movie>",
	Short: "Play a movie on the headless game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMovie(cmd, args[0], runOpts)
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runOpts.ticks, "ticks", 0, "number of host frames to run for. zero runs until the movie ends")
	f.StringVar(&runOpts.studio, "studio", "", "websocket URL of the studio")
	f.StringVar(&runOpts.settings, "settings", "", "settings file")
	f.StringVar(&runOpts.prefs, "prefs", "", "override settings. eg. \"tas.fastforwardspeed::20\"")
	f.BoolVar(&runOpts.realtime, "realtime", false, "run at the game's native frame rate")
	f.BoolVar(&runOpts.keyboard, "keyboard", false, "read hotkeys from the terminal")
	f.BoolVar(&runOpts.statsview, "statsview", false, "launch the runtime statistics server")
	f.StringVar(&runOpts.memviz, "memviz", "", "write a graph of the manager to file when the run ends")
	f.BoolVar(&runOpts.unsafe, "unsafe", false, "allow input in scenes where input is unsafe")
	f.StringVar(&runOpts.verify, "verify", "", "check that the movie plays back a recording")
	f.BoolVar(&runOpts.trace, "trace", false, "print every played frame")
	f.StringVar(&runOpts.profile, "profile", "none", "write profiles: cpu, mem, trace, all, none")
}

func runMovie(cmd *cobra.Command, movie string, flags runFlags) error {
	out := cmd.OutOrStdout()

	profile, err := performance.ParseProfileString(flags.profile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// the terminal provides the hotkeys or nothing is pressed at all
	var live hotkeys.Device
	if flags.keyboard {
		kb, err := easyterm.Open("/dev/tty", easyterm.DefaultHold)
		if err != nil {
			return err
		}
		defer kb.Close()
		go func() {
			select {
			case <-kb.Quit():
				stop()
			case <-ctx.Done():
			}
		}()
		live = kb
	} else {
		live = &headless.Script{}
	}

	opts := sessionOptions{
		movie:        movie,
		settingsFile: flags.settings,
		prefs:        flags.prefs,
		studioURL:    flags.studio,
		unsafe:       flags.unsafe,
	}

	dig := newDigestObserver()
	opts.observers = append(opts.observers, dig)

	if flags.trace {
		opts.observers = append(opts.observers, &traceObserver{out: out})
	}

	var plb *recorder.Playback
	if flags.verify != "" {
		plb, err = recorder.NewPlayback(flags.verify)
		if err != nil {
			return err
		}
		opts.observers = append(opts.observers, plb)
	}

	sess, err := newSession(ctx, opts, live)
	if err != nil {
		return err
	}
	defer sess.close()

	if flags.statsview {
		if statsview.Available() {
			statsview.Launch(out, "")
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("statsview not available in this build"))
		}
	}

	sess.mgr.EnableRun()

	// without the keyboard there is no way of resuming or restarting the run
	// so it ends when the movie ends or when a breakpoint pauses it
	if !flags.keyboard {
		sess.runner.Stop = func() bool {
			return !sess.mgr.Running() || sess.mgr.State().Has(manager.FrameStep)
		}
	}

	err = performance.RunProfiler(profile, "tasengine", func() error {
		return sess.runner.Run(ctx, flags.ticks, flags.realtime)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	st := sess.game.State()
	summary(out, "movie", "%s", movie)
	summary(out, "frames", "%d played in %d ticks", dig.chain.Count(), sess.runner.Ticks())
	summary(out, "game", "%s", sess.game)
	summary(out, "position", "%.2f, %.2f", st.X, st.Y)
	summary(out, "digest", "%s", dig.chain.Hash())
	if sess.mgr.State().Has(manager.FrameStep) {
		summary(out, "paused", "at frame %d of %d", sess.cursor.CurrentFrame(), sess.cursor.TotalFrames())
	}

	if flags.memviz != "" {
		err = writeMemviz(flags.memviz, sess.mgr)
		if err != nil {
			return err
		}
		summary(out, "memviz", "%s", flags.memviz)
	}

	if plb != nil {
		if err := plb.Err(); err != nil {
			summary(out, "verify", "%s", failStyle.Render(err.Error()))
			return curated.Errorf(verifyError, err)
		}
		if !plb.EndFrame() {
			summary(out, "verify", "%s", failStyle.Render(fmt.Sprintf("incomplete %s", plb)))
			return curated.Errorf(verifyError, fmt.Sprintf("movie ended before the recording (%s)", plb))
		}
		summary(out, "verify", "%s", okStyle.Render("ok"))
	}

	return nil
}

func writeMemviz(path string, mgr *manager.Manager) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	memviz.Map(f, mgr)
	err = f.Close()
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	return nil
}
