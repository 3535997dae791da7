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
	"os"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/inputs"
)

// PlaybackError is returned when a recording cannot be read.
const PlaybackError = "playback: %v"

// Sentinal error returned by Playback.Err() if the run diverges from the
// recording.
const (
	PlaybackMismatchError = "playback: unexpected input at line %d (frame %d)"
)

type playbackEntry struct {
	actions inputs.Actions
	angle   float32

	// the line in the recording file the input appears
	line int
}

// Playback verifies that a run performs the same input as a previously made
// recording. It implements the manager.FrameObserver interface.
type Playback struct {
	transcript string
	Host       string

	sequence []playbackEntry
	seqCt    int

	err error
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(transcript string) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
	}

	tf, err := os.Open(transcript)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}
	buffer, err := io.ReadAll(tf)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}
	err = tf.Close()
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	// read header and perform validation checks
	h, err := readHeader(buffer)
	if err != nil {
		return nil, err
	}
	plb.Host = h.host

	mv, err := inputs.ParseMovie(buffer)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	if mv.TotalFrames() != h.frames {
		return nil, curated.Errorf(PlaybackError, fmt.Sprintf("header declares %d frames but recording has %d", h.frames, mv.TotalFrames()))
	}

	// one entry per frame
	for _, f := range mv.Frames {
		for i := 0; i < f.Frames; i++ {
			plb.sequence = append(plb.sequence, playbackEntry{
				actions: f.Actions,
				angle:   f.Angle,
				line:    f.Line,
			})
		}
	}

	return plb, nil
}

func (plb *Playback) String() string {
	if len(plb.sequence) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", plb.seqCt, len(plb.sequence), 100*(float64(plb.seqCt)/float64(len(plb.sequence))))
}

// EndFrame returns true if the run has gone past the last frame of the
// recording.
func (plb *Playback) EndFrame() bool {
	return plb.seqCt >= len(plb.sequence)
}

// Err returns the first divergence from the recording, if any.
func (plb *Playback) Err() error {
	return plb.err
}

// PlayedFrame implements the manager.FrameObserver interface.
func (plb *Playback) PlayedFrame(frame int, f inputs.Frame) {
	if plb.err != nil {
		return
	}

	// frames are numbered from the start of the run. a run that restarts or
	// loads a savestate is followed from the new position
	plb.seqCt = frame

	if plb.seqCt >= len(plb.sequence) {
		return
	}

	entry := plb.sequence[plb.seqCt]
	plb.seqCt++

	if entry.actions != f.Actions || (f.Actions.Has(inputs.Feather) && entry.angle != f.Angle) {
		plb.err = curated.Errorf(PlaybackMismatchError, entry.line, frame)
	}
}
