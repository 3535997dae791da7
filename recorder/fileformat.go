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

package recorder

import (
	"fmt"
	"io"
	"strings"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/inputs"
	"gopkg.in/yaml.v3"
)

// RecordingError is returned when a recording cannot be written.
const RecordingError = "recording: %v"

const headerMagic = "# tasengine recording"

// recording file header format
// ----------------------------
//
// # tasengine recording
// # host: <host version>
// # frames: <number of frames>

const (
	lineMagic int = iota
	lineHost
	lineFrames
	numHeaderLines
)

type fileEntry struct {
	Frames  int     `yaml:"frames"`
	Actions string  `yaml:"actions,omitempty"`
	Angle   float32 `yaml:"angle,omitempty"`
}

func writeRecording(w io.Writer, version string, frames []inputs.Frame) error {
	var total int
	entries := make([]fileEntry, 0, len(frames))
	for _, f := range frames {
		e := fileEntry{Frames: f.Frames}
		if f.Actions != inputs.None {
			e.Actions = f.Actions.String()
		}
		if f.Actions.Has(inputs.Feather) {
			e.Angle = f.Angle
		}
		entries = append(entries, e)
		total += f.Frames
	}

	lines := make([]string, numHeaderLines)
	lines[lineMagic] = headerMagic
	lines[lineHost] = fmt.Sprintf("# host: %s", version)
	lines[lineFrames] = fmt.Sprintf("# frames: %d", total)

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}

	// an empty recording is an empty document rather than an empty sequence
	if len(entries) == 0 {
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err = enc.Encode(entries)
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	err = enc.Close()
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}

	return nil
}

// header information read from a recording
type header struct {
	host   string
	frames int
}

func readHeader(data []byte) (header, error) {
	var h header

	lines := strings.SplitN(string(data), "\n", numHeaderLines+1)
	if len(lines) < numHeaderLines {
		return h, curated.Errorf(PlaybackError, "recording header is missing")
	}

	if lines[lineMagic] != headerMagic {
		return h, curated.Errorf(PlaybackError, "not a tasengine recording")
	}

	h.host = strings.TrimPrefix(lines[lineHost], "# host: ")

	_, err := fmt.Sscanf(lines[lineFrames], "# frames: %d", &h.frames)
	if err != nil {
		return h, curated.Errorf(PlaybackError, fmt.Sprintf("recording header: %v", err))
	}

	return h, nil
}
