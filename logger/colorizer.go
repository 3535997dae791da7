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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// the style applied to the second and subsequent lines of a multi-line write
var continuation = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Faint(true)

// Colorizer applies basic coloring rules to logging output. The first line of
// every write is passed through unchanged, any following lines are dimmed.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	n, err := c.out.Write([]byte(l[0] + "\n"))
	if err != nil || len(l) == 1 {
		return n, err
	}

	for _, s := range l[1:] {
		m, err := c.out.Write([]byte(continuation.Render(s) + "\n"))
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}
