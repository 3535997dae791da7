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

package headless

import (
	"context"

	"github.com/tasworks/tasengine/gameinfo"
	"github.com/tasworks/tasengine/performance/limiter"
)

// FramesPerSecond is the native frame rate of the game.
const FramesPerSecond = 60

// Engine is the part of the manager driven by the runner.
type Engine interface {
	Tick()
	FrameLoops() float64
	SkipFrame() bool
	Running() bool
	Recording() bool
}

// Advancer is implemented by devices that count ticks, such as Script.
type Advancer interface {
	Advance()
}

// Runner drives the game and the manager together. One host frame runs the
// manager and the game as many times as the manager's frame loops ask for.
type Runner struct {
	Game   *Game
	Engine Engine

	// updated after every game frame. may be nil
	GameInfo *gameinfo.Holder

	// devices that are advanced once per tick
	Advance []Advancer

	// checked before every host frame. the run ends if it returns true. may
	// be nil
	Stop func() bool

	ticks uint64
}

// Ticks returns the number of manager ticks performed so far.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

func (r *Runner) tick() {
	// live devices are ignored while a movie is playing back
	if !r.Engine.Running() || r.Engine.Recording() {
		r.Game.Poll()
	}
	r.Engine.Tick()
	if r.Engine.SkipFrame() {
		r.Game.Idle()
	} else {
		r.Game.Update()
	}
	if r.GameInfo != nil {
		r.GameInfo.Update()
	}
	for _, a := range r.Advance {
		a.Advance()
	}
	r.ticks++
}

// Frame runs a single host frame.
func (r *Runner) Frame() {
	loops := max(1, int(r.Engine.FrameLoops()))
	for i := 0; i < loops; i++ {
		r.tick()
	}
}

// Run performs the given number of host frames. A frames value of zero runs
// until the context is cancelled or the Stop function returns true. When
// realtime is true frames are paced to FramesPerSecond.
func (r *Runner) Run(ctx context.Context, frames int, realtime bool) error {
	var lim *limiter.FPSLimiter
	if realtime {
		limCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		lim = limiter.NewFPSLimiter(limCtx, FramesPerSecond)
	}

	for i := 0; frames == 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Stop != nil && r.Stop() {
			return nil
		}
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
		}
		r.Frame()
	}

	return nil
}
