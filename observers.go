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
	"fmt"
	"io"

	"github.com/tasworks/tasengine/digest"
	"github.com/tasworks/tasengine/inputs"
)

// prints every played frame
type traceObserver struct {
	out io.Writer
}

func (o *traceObserver) PlayedFrame(frame int, f inputs.Frame) {
	fmt.Fprintf(o.out, "%6d  line %-4d %s%s\n", frame, f.Line, f.String(), f.RepeatString())
}

// accumulates a digest of every played frame. two runs of the same movie
// produce the same digest
type digestObserver struct {
	chain *digest.Chain
}

func newDigestObserver() *digestObserver {
	return &digestObserver{chain: digest.NewChain()}
}

func (o *digestObserver) PlayedFrame(frame int, f inputs.Frame) {
	o.chain.Add([]byte(fmt.Sprintf("%d:%s", frame, f.String())))
}
