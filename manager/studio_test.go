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

package manager_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tasworks/tasengine/manager"
	"github.com/tasworks/tasengine/studio"
	"github.com/tasworks/tasengine/test"
)

func TestStudioCommands(t *testing.T) {
	commands := make(chan studio.Command, 2)
	r := newRigWith(t, tenFrames, false, func(cfg *manager.Config) {
		cfg.Commands = commands
	})

	commands <- studio.Command{FastForward: true}
	r.tick()
	test.ExpectSuccess(t, r.hk.FastForward.Override)

	// the override is held until the studio says otherwise
	r.tick()
	test.ExpectSuccess(t, r.hk.FastForward.Override)

	// commands are applied in the order they were sent
	commands <- studio.Command{FastForward: false}
	commands <- studio.Command{FastForward: true}
	r.tick()
	test.ExpectSuccess(t, r.hk.FastForward.Override)
	test.ExpectEquality(t, len(commands), 0)
}

// waits for the studio command to be queued by the client
func waitForCommand(t *testing.T, c *studio.Client) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for len(c.Commands()) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for command")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStudioFastForwardOverride(t *testing.T) {
	ch := make(chan studio.Info, 10)
	lis := studio.NewListener(func(_ studio.Session, inf studio.Info) {
		ch <- inf
	})
	srv := httptest.NewServer(lis)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := studio.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), "fake 1.0")
	test.DemandSuccess(t, err)
	t.Cleanup(func() { c.Close() })

	r := newRigWith(t, "- frames: 1\n- breakpoint: {}\n- frames: 5\n", false, func(cfg *manager.Config) {
		cfg.Studio = c
		cfg.Commands = c.Commands()
	})

	receive := func() studio.Info {
		t.Helper()
		select {
		case inf := <-ch:
			return inf
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for state message")
		}
		return studio.Info{}
	}

	// a state from an idle tick means the listener knows of the connection
	r.tick()
	test.ExpectEquality(t, receive().CurrentFrameInTas, 0)

	n, err := lis.Broadcast(studio.Command{FastForward: true})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 1)
	waitForCommand(t, c)

	// the frame-step pending at the breakpoint does not prevent the state
	// being sent
	r.mgr.EnableRun()
	r.tick()
	test.ExpectSuccess(t, r.hk.FastForward.Override)
	test.ExpectSuccess(t, r.mgr.NextState().Has(manager.FrameStep))
	test.ExpectEquality(t, receive().CurrentFrameInTas, 1)

	n, err = lis.Broadcast(studio.Command{FastForward: false})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 1)
	waitForCommand(t, c)

	r.tick()
	test.ExpectFailure(t, r.hk.FastForward.Override)
}
