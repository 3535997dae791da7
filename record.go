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
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tasworks/tasengine/easyterm"
	"github.com/tasworks/tasengine/headless"
	"github.com/tasworks/tasengine/hotkeys"
	"github.com/tasworks/tasengine/paths"
	"github.com/tasworks/tasengine/recorder"
)

type recordFlags struct {
	ticks    int
	settings string
	prefs    string
	realtime bool
	keyboard bool
}

var recordOpts recordFlags

var recordCmd = &cobra.Command{
	Use:   "record [out]",
	Short: "Record a movie by playing the headless game from the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out string
		if len(args) > 0 {
			out = args[0]
		} else {
			out = paths.UniqueFilename("recording", "") + ".tas"
		}
		return recordMovie(cmd, out, recordOpts)
	},
}

func init() {
	f := recordCmd.Flags()
	f.IntVar(&recordOpts.ticks, "ticks", 0, "number of host frames to record for. zero records until Ctrl-C")
	f.StringVar(&recordOpts.settings, "settings", "", "settings file")
	f.StringVar(&recordOpts.prefs, "prefs", "", "override settings")
	f.BoolVar(&recordOpts.realtime, "realtime", true, "run at the game's native frame rate")
	f.BoolVar(&recordOpts.keyboard, "keyboard", true, "play the game from the terminal")
}

func recordMovie(cmd *cobra.Command, out string, flags recordFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

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

	rec := recorder.NewRecorder(out, headless.Version)

	sess, err := newSession(ctx, sessionOptions{
		settingsFile: flags.settings,
		prefs:        flags.prefs,
		recorder:     rec,
	}, live)
	if err != nil {
		return err
	}
	defer sess.close()

	err = sess.mgr.StartRecording()
	if err != nil {
		return err
	}

	// the recording ends if the start/stop hotkey is used
	sess.runner.Stop = func() bool {
		return !sess.mgr.Recording()
	}

	err = sess.runner.Run(ctx, flags.ticks, flags.realtime)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if sess.mgr.Recording() {
		sess.mgr.DisableRun(false)
	}

	var frames int
	for _, f := range rec.Frames() {
		frames += f.Frames
	}

	w := cmd.OutOrStdout()
	summary(w, "recorded", "%d frames in %d input lines", frames, len(rec.Frames()))
	summary(w, "file", "%s", out)

	return nil
}
