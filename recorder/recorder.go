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
	"os"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/inputs"
	"github.com/tasworks/tasengine/logger"
)

// Recorder transcribes frames of live input. It implements the
// manager.Recorder interface.
type Recorder struct {
	path    string
	version string

	// frames with identical consecutive input are merged
	frames []inputs.Frame

	output *os.File
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The version string is written to the header of the recording.
func NewRecorder(path string, version string) *Recorder {
	return &Recorder{
		path:    path,
		version: version,
	}
}

// Start implements the manager.Recorder interface. The output file is
// created immediately so that problems are found before recording begins.
func (rec *Recorder) Start() error {
	if rec.output != nil {
		return curated.Errorf(RecordingError, "recording already in progress")
	}

	var err error
	rec.output, err = os.Create(rec.path)
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}

	rec.frames = rec.frames[:0]
	logger.Logf(logger.Allow, "recorder", "recording to %s", rec.path)

	return nil
}

// Record implements the manager.Recorder interface.
func (rec *Recorder) Record(f inputs.Frame) {
	if rec.output == nil {
		return
	}

	if f.Frames < 1 {
		f.Frames = 1
	}

	if n := len(rec.frames); n > 0 {
		last := &rec.frames[n-1]
		if last.Actions == f.Actions && last.Angle == f.Angle {
			last.Frames += f.Frames
			return
		}
	}

	f.Line = 0
	f.Index = 0
	rec.frames = append(rec.frames, f)
}

// Frames returns the input lines recorded so far.
func (rec *Recorder) Frames() []inputs.Frame {
	return rec.frames
}

// End implements the manager.Recorder interface. The recording is written to
// the output file and the file is closed.
func (rec *Recorder) End() error {
	if rec.output == nil {
		return curated.Errorf(RecordingError, "no recording in progress")
	}

	err := writeRecording(rec.output, rec.version, rec.frames)
	if err != nil {
		rec.output.Close()
		rec.output = nil
		return err
	}

	err = rec.output.Close()
	rec.output = nil
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}

	logger.Logf(logger.Allow, "recorder", "recorded %d input lines to %s", len(rec.frames), rec.path)

	return nil
}
