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

package inputs

import (
	"fmt"

	"github.com/tasworks/tasengine/digest"
	"github.com/tasworks/tasengine/logger"
)

// Controller is the implementation of the Cursor interface used by tasengine.
type Controller struct {
	src     Source
	version string

	// one entry per frame
	inputs []Frame

	// breakpoint markers keyed by frame position
	fastForwards map[int]FastForward

	currentFrame  int
	savedChecksum string
}

// NewController is the preferred method of initialisation for the Controller
// type. The movie is not read until the first call to RefreshInputs().
func NewController(src Source) *Controller {
	return &Controller{
		src:          src,
		fastForwards: make(map[int]FastForward),
	}
}

func (c *Controller) String() string {
	return fmt.Sprintf("%d/%d", c.currentFrame, len(c.inputs))
}

// load expands the movie into the per-frame list of inputs.
func (c *Controller) load(mv Movie) {
	c.inputs = c.inputs[:0]
	for _, f := range mv.Frames {
		for i := 1; i <= f.Frames; i++ {
			e := f
			e.Index = i
			c.inputs = append(c.inputs, e)
		}
	}

	clear(c.fastForwards)
	for _, ff := range mv.FastForwards {
		c.fastForwards[ff.Frame] = ff
	}
}

// RefreshInputs implements the Cursor interface.
func (c *Controller) RefreshInputs(startingFresh bool) {
	if startingFresh {
		c.Stop()
	}

	mv, version, err := c.src.Movie()
	if err != nil {
		logger.Log(logger.Allow, "inputs", err)
		return
	}

	if version == c.version {
		return
	}

	c.load(mv)
	c.version = version
	c.currentFrame = min(c.currentFrame, len(c.inputs))
}

// AdvanceFrame implements the Cursor interface.
func (c *Controller) AdvanceFrame() (bool, bool) {
	c.RefreshInputs(false)

	if !c.CanPlayback() {
		return false, false
	}

	c.currentFrame++

	_, brk := c.fastForwards[c.currentFrame]
	return brk && c.CanPlayback(), true
}

// CanPlayback implements the Cursor interface.
func (c *Controller) CanPlayback() bool {
	return c.currentFrame < len(c.inputs)
}

// Stop implements the Cursor interface.
func (c *Controller) Stop() {
	c.currentFrame = 0
}

// Clear implements the Cursor interface.
func (c *Controller) Clear() {
	c.inputs = c.inputs[:0]
	clear(c.fastForwards)
	c.version = ""
	c.currentFrame = 0
}

// Clone implements the Cursor interface.
func (c *Controller) Clone() Cursor {
	n := &Controller{
		src:          c.src,
		version:      c.version,
		inputs:       make([]Frame, len(c.inputs)),
		fastForwards: make(map[int]FastForward, len(c.fastForwards)),
		currentFrame: c.currentFrame,
	}
	copy(n.inputs, c.inputs)
	for k, v := range c.fastForwards {
		n.fastForwards[k] = v
	}
	n.savedChecksum = n.checksum(n.currentFrame)
	return n
}

// CopyFrom implements the Cursor interface. The argument must have been
// created by Controller.Clone(). Other cursor types are ignored.
func (c *Controller) CopyFrom(o Cursor) {
	s, ok := o.(*Controller)
	if !ok {
		logger.Logf(logger.Allow, "inputs", "cannot copy from cursor of type %T", o)
		return
	}

	c.version = s.version
	c.inputs = append(c.inputs[:0], s.inputs...)
	clear(c.fastForwards)
	for k, v := range s.fastForwards {
		c.fastForwards[k] = v
	}
	c.currentFrame = s.currentFrame
	c.savedChecksum = s.savedChecksum
}

func (c *Controller) checksum(upTo int) string {
	dig := digest.NewChain()
	for i := 0; i < upTo && i < len(c.inputs); i++ {
		dig.Add([]byte(c.inputs[i].String()))
	}
	return dig.Hash()
}

// Checksum implements the Cursor interface.
func (c *Controller) Checksum(upTo Cursor) string {
	return c.checksum(upTo.CurrentFrame())
}

// SavedChecksum implements the Cursor interface.
func (c *Controller) SavedChecksum() string {
	return c.savedChecksum
}

// CurrentFrame implements the Cursor interface.
func (c *Controller) CurrentFrame() int {
	return c.currentFrame
}

// CurrentFrameInInput implements the Cursor interface.
func (c *Controller) CurrentFrameInInput() int {
	if p, ok := c.Previous(); ok {
		return p.Index
	}
	return 0
}

// TotalFrames implements the Cursor interface.
func (c *Controller) TotalFrames() int {
	return len(c.inputs)
}

// Previous implements the Cursor interface.
func (c *Controller) Previous() (Frame, bool) {
	return c.InputAt(c.currentFrame - 1)
}

// InputAt implements the Cursor interface.
func (c *Controller) InputAt(frame int) (Frame, bool) {
	if frame < 0 || frame >= len(c.inputs) {
		return Frame{}, false
	}
	return c.inputs[frame], true
}

// next marker strictly ahead of the cursor
func (c *Controller) nextFastForward() (FastForward, bool) {
	var next FastForward
	var found bool
	for f, ff := range c.fastForwards {
		if f > c.currentFrame && (!found || f < next.Frame) {
			next = ff
			found = true
		}
	}
	return next, found
}

// HasFastForward implements the Cursor interface.
func (c *Controller) HasFastForward() bool {
	_, ok := c.nextFastForward()
	return ok
}

// FastForwardSpeed implements the Cursor interface.
func (c *Controller) FastForwardSpeed() float64 {
	if ff, ok := c.nextFastForward(); ok {
		return ff.Speed
	}
	return 1
}

// CurrentFastForward implements the Cursor interface.
func (c *Controller) CurrentFastForward() (FastForward, bool) {
	return c.FastForwardAt(c.currentFrame)
}

// FastForwardAt implements the Cursor interface.
func (c *Controller) FastForwardAt(frame int) (FastForward, bool) {
	ff, ok := c.fastForwards[frame]
	return ff, ok
}

// LastSaveStateFastForward implements the Cursor interface.
func (c *Controller) LastSaveStateFastForward() (FastForward, bool) {
	var last FastForward
	var found bool
	for f, ff := range c.fastForwards {
		if ff.SaveState && (!found || f > last.Frame) {
			last = ff
			found = true
		}
	}
	return last, found
}
