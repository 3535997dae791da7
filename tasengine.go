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

// Tasengine plays back tool-assisted speedrun movies against a host game. The
// command line tool drives the headless game, which is useful for checking
// movies, for recording new movies and for watching what the studio receives.
//
//	tasengine run movie.tas
//	tasengine record out.tas
//	tasengine studio
//	tasengine version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tasworks/tasengine/logger"
)

var logEcho bool

var rootCmd = &cobra.Command{
	Use:           "tasengine",
	Short:         "TAS playback engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logEcho {
			logger.SetEcho(logger.NewColorizer(cmd.ErrOrStderr()), true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logEcho, "log", false, "echo log to stderr")
	rootCmd.AddCommand(runCmd, recordCmd, studioCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "* error: %v\n", err)
		os.Exit(10)
	}
}
