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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tasworks/tasengine/studio"
)

const defaultStudioAddress = "localhost:12602"

var studioAddress string

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Listen for a run and print the state sent to the studio",
	Long: `Listen for a run and print the state sent to the studio.

Typing f followed by enter toggles fast-forward in every connected run.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return listenStudio(ctx, cmd, studioAddress)
	},
}

func init() {
	studioCmd.Flags().StringVar(&studioAddress, "addr", defaultStudioAddress, "address to listen on")
}

var (
	sessionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	lineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// formats a state message for the terminal
func studioLine(sess studio.Session, inf studio.Info) string {
	id := sess.ID
	if len(id) > 8 {
		id = id[:8]
	}

	s := strings.Builder{}
	s.WriteString(sessionStyle.Render(id))
	s.WriteString(" ")
	s.WriteString(lineStyle.Render(fmt.Sprintf("%4d", inf.CurrentLine)))
	s.WriteString(fmt.Sprintf(" %5d/%-5d", inf.CurrentFrameInTas, inf.TotalFrames))
	if inf.FrameInput != "" {
		s.WriteString(" ")
		s.WriteString(inf.FrameInput)
	}
	if inf.HighlightLine >= 0 {
		s.WriteString(dimStyle.Render(fmt.Sprintf(" save@%d", inf.HighlightLine)))
	}
	return s.String()
}

// studioControl reads commands typed at the terminal and sends them to the
// connected runs. it returns when the input is exhausted
func studioControl(in io.Reader, out io.Writer, mu *sync.Mutex, lis *studio.Listener) {
	var cmd studio.Command

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		var ok bool
		cmd, ok = parseStudioCommand(scanner.Text(), cmd)
		if !ok {
			continue
		}
		n, err := lis.Broadcast(cmd)

		mu.Lock()
		if err != nil {
			fmt.Fprintln(out, failStyle.Render(err.Error()))
		} else {
			summary(out, "fast-forward", "%v (%d runs)", cmd.FastForward, n)
		}
		mu.Unlock()
	}
}

// returns the command to send after the line has been typed. the previous
// command is the one that was last sent
func parseStudioCommand(line string, prev studio.Command) (studio.Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "f", "ff", "fastforward":
		prev.FastForward = !prev.FastForward
		return prev, true
	}
	return prev, false
}

func listenStudio(ctx context.Context, cmd *cobra.Command, addr string) error {
	out := cmd.OutOrStdout()

	// messages arrive on the goroutines serving each connection
	var mu sync.Mutex
	lis := studio.NewListener(func(sess studio.Session, inf studio.Info) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, studioLine(sess, inf))
	})

	mux := http.NewServeMux()
	mux.Handle("/studio", lis)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe()
	}()

	summary(out, "studio", "listening on ws://%s/studio", addr)

	go studioControl(cmd.InOrStdin(), out, &mu, lis)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
