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
	"strings"
)

// Actions is a bitset of the logical actions performed in a single frame.
type Actions uint32

// List of valid actions.
const (
	None      Actions = 0
	Left      Actions = 1 << 0
	Right     Actions = 1 << 1
	Up        Actions = 1 << 2
	Down      Actions = 1 << 3
	Jump      Actions = 1 << 4
	Dash      Actions = 1 << 5
	Grab      Actions = 1 << 6
	Start     Actions = 1 << 7
	Restart   Actions = 1 << 8
	Feather   Actions = 1 << 9
	Journal   Actions = 1 << 10
	Jump2     Actions = 1 << 11
	Dash2     Actions = 1 << 12
	Confirm   Actions = 1 << 13
	DemoDash  Actions = 1 << 14
	DemoDash2 Actions = 1 << 15
)

// the order of this table defines the order of actions in String()
var actionNames = []struct {
	action Actions
	letter string
	name   string
}{
	{Left, "L", "left"},
	{Right, "R", "right"},
	{Up, "U", "up"},
	{Down, "D", "down"},
	{Jump, "J", "jump"},
	{Jump2, "K", "jump2"},
	{Dash, "X", "dash"},
	{Dash2, "C", "dash2"},
	{DemoDash, "Z", "demodash"},
	{DemoDash2, "V", "demodash2"},
	{Grab, "G", "grab"},
	{Start, "S", "start"},
	{Restart, "Q", "restart"},
	{Journal, "N", "journal"},
	{Confirm, "O", "confirm"},
	{Feather, "F", "feather"},
}

// ParseActions converts a comma separated list of action letters or names to
// an Actions value. Letters and names are case insensitive.
func ParseActions(s string) (Actions, error) {
	var a Actions
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		found := false
		for _, n := range actionNames {
			if strings.EqualFold(tok, n.letter) || strings.EqualFold(tok, n.name) {
				a |= n.action
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("unknown action (%s)", tok)
		}
	}
	return a, nil
}

// Has returns true if all the actions in b are present.
func (a Actions) Has(b Actions) bool {
	return a&b == b
}

func (a Actions) String() string {
	var l []string
	for _, n := range actionNames {
		if a.Has(n.action) {
			l = append(l, n.letter)
		}
	}
	return strings.Join(l, ",")
}
