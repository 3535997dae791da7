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

// Package limiter paces a loop to a fixed number of iterations per second.
package limiter

import (
	"context"
	"sync/atomic"
	"time"
)

// FPSLimiter paces the headless runner to the host's native frame rate.
type FPSLimiter struct {
	framesPerSecond atomic.Int64
	secondsPerFrame atomic.Int64

	tick chan bool
}

// NewFPSLimiter is the preferred method of initialisation for the FPSLimiter
// type. The ticking goroutine ends when the context is cancelled.
func NewFPSLimiter(ctx context.Context, framesPerSecond int) *FPSLimiter {
	lim := &FPSLimiter{}
	lim.SetLimit(framesPerSecond)

	lim.tick = make(chan bool)

	// run ticker concurrently
	go func() {
		adjustedSecondPerFrame := time.Duration(lim.secondsPerFrame.Load())
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-ctx.Done():
				return
			}
			time.Sleep(adjustedSecondPerFrame)
			nt := time.Now()
			adjustedSecondPerFrame -= nt.Sub(t) - time.Duration(lim.secondsPerFrame.Load())
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the number of frames per second. A limit of less than one
// is treated as one. Safe to call while the limiter is running.
func (lim *FPSLimiter) SetLimit(framesPerSecond int) {
	fps := max(1, framesPerSecond)
	lim.framesPerSecond.Store(int64(fps))
	lim.secondsPerFrame.Store(int64(time.Second / time.Duration(fps)))
}

// Limit returns the current number of frames per second.
func (lim *FPSLimiter) Limit() int {
	return int(lim.framesPerSecond.Load())
}

// Wait blocks until the next frame is due or the context is cancelled.
func (lim *FPSLimiter) Wait(ctx context.Context) error {
	select {
	case <-lim.tick:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HasWaited returns true if the next frame is due. It does not block.
func (lim *FPSLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}
