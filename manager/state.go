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

package manager

import "strings"

// State is a set of run state flags.
type State int

// List of valid State flags.
const (
	None      State = 0
	Enable    State = 1
	Record    State = 2
	FrameStep State = 4
	Disable   State = 8
)

// Has returns true if all flags in f are set.
func (s State) Has(f State) bool {
	return s&f == f
}

func (s State) String() string {
	if s == None {
		return "none"
	}
	var l []string
	if s.Has(Enable) {
		l = append(l, "enable")
	}
	if s.Has(Record) {
		l = append(l, "record")
	}
	if s.Has(FrameStep) {
		l = append(l, "framestep")
	}
	if s.Has(Disable) {
		l = append(l, "disable")
	}
	return strings.Join(l, "|")
}

// registers hold the state of the run. FrameStep is set in at most one of
// current and next.
type registers struct {
	last    State
	current State
	next    State
}

// frame-step starting this tick
func (r *registers) stepNow() {
	r.current |= FrameStep
	r.next &^= FrameStep
}

// run this tick and frame-step from the next tick
func (r *registers) stepNext() {
	r.current &^= FrameStep
	r.next |= FrameStep
}

// end frame-stepping
func (r *registers) resume() {
	r.current &^= FrameStep
	r.next &^= FrameStep
}

// request adds flags to the next register
func (r *registers) request(s State) {
	r.next |= s
}

// promote moves a pending frame-step into the current register
func (r *registers) promote() {
	if r.next.Has(FrameStep) {
		r.stepNow()
	}
}

func (r *registers) reset() {
	r.current = None
	r.next = None
}
