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
	"io"
	"os"
	"sync"
	"time"

	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/digest"
	"gopkg.in/yaml.v3"
)

// MovieError is returned when a movie cannot be read or parsed.
const MovieError = "movie: %v"

// Movie is the parsed form of a movie file.
type Movie struct {
	// input lines in the order they appear. repeat blocks are unrolled
	Frames []Frame

	// breakpoint markers in the order they appear
	FastForwards []FastForward
}

// TotalFrames returns the number of frames in the movie.
func (mv Movie) TotalFrames() int {
	var n int
	for _, f := range mv.Frames {
		n += f.Frames
	}
	return n
}

type entry struct {
	Frames     int     `yaml:"frames"`
	Actions    string  `yaml:"actions"`
	Angle      float32 `yaml:"angle"`
	Breakpoint *struct {
		Speed     *float64 `yaml:"speed"`
		SaveState bool     `yaml:"savestate"`
	} `yaml:"breakpoint"`
	Repeat *struct {
		Count  int       `yaml:"count"`
		Inputs yaml.Node `yaml:"inputs"`
	} `yaml:"repeat"`
}

// ParseMovie parses the YAML representation of a movie. An empty document is
// an empty movie.
func ParseMovie(data []byte) (Movie, error) {
	var mv Movie

	var doc yaml.Node
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return mv, curated.Errorf(MovieError, err)
	}

	// empty document
	if len(doc.Content) == 0 {
		return mv, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return mv, curated.Errorf(MovieError, fmt.Errorf("line %d: movie must be a sequence", root.Line))
	}

	var frame int
	err = parseSequence(&mv, root, &frame, 0, 0)
	if err != nil {
		return Movie{}, curated.Errorf(MovieError, err)
	}

	return mv, nil
}

func parseSequence(mv *Movie, seq *yaml.Node, frame *int, repeatIndex int, repeatCount int) error {
	for _, n := range seq.Content {
		var e entry
		err := n.Decode(&e)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}

		switch {
		case e.Breakpoint != nil:
			if repeatCount > 0 {
				return fmt.Errorf("line %d: breakpoint not allowed in repeat block", n.Line)
			}
			ff := FastForward{
				Frame:     *frame,
				Line:      n.Line,
				Speed:     DefaultSpeed,
				SaveState: e.Breakpoint.SaveState,
			}
			if e.Breakpoint.Speed != nil {
				if *e.Breakpoint.Speed <= 0 {
					return fmt.Errorf("line %d: breakpoint speed must be positive", n.Line)
				}
				ff.Speed = *e.Breakpoint.Speed
				ff.HasSpeed = true
			}
			mv.FastForwards = append(mv.FastForwards, ff)

		case e.Repeat != nil:
			if repeatCount > 0 {
				return fmt.Errorf("line %d: repeat blocks cannot be nested", n.Line)
			}
			if e.Repeat.Count < 1 {
				return fmt.Errorf("line %d: repeat count must be at least one", n.Line)
			}
			if e.Repeat.Inputs.Kind != yaml.SequenceNode {
				return fmt.Errorf("line %d: repeat inputs must be a sequence", n.Line)
			}
			for i := 1; i <= e.Repeat.Count; i++ {
				err := parseSequence(mv, &e.Repeat.Inputs, frame, i, e.Repeat.Count)
				if err != nil {
					return err
				}
			}

		default:
			if e.Frames < 1 {
				return fmt.Errorf("line %d: input line must last for at least one frame", n.Line)
			}
			a, err := ParseActions(e.Actions)
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			if e.Angle < 0 || e.Angle > 360 {
				return fmt.Errorf("line %d: angle must be between 0 and 360", n.Line)
			}
			mv.Frames = append(mv.Frames, Frame{
				Actions:     a,
				Angle:       e.Angle,
				Frames:      e.Frames,
				Line:        n.Line,
				RepeatIndex: repeatIndex,
				RepeatCount: repeatCount,
			})
			*frame += e.Frames
		}
	}

	return nil
}

// Source provides a Movie to the Controller.
type Source interface {
	// Movie returns the current movie and a version string. The version
	// changes whenever the content of the movie changes.
	Movie() (Movie, string, error)
}

// FileSource reads a movie from a file on disk. The file is only parsed again
// if it has been modified since the last call to Movie().
type FileSource struct {
	path string

	crit    sync.Mutex
	modTime time.Time
	size    int64
	movie   Movie
	version string
}

// NewFileSource is the preferred method of initialisation for the FileSource
// type.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the path of the movie file.
func (src *FileSource) Path() string {
	return src.path
}

// Movie implements the Source interface.
func (src *FileSource) Movie() (Movie, string, error) {
	src.crit.Lock()
	defer src.crit.Unlock()

	st, err := os.Stat(src.path)
	if err != nil {
		return Movie{}, "", curated.Errorf(MovieError, err)
	}

	if src.version != "" && st.ModTime().Equal(src.modTime) && st.Size() == src.size {
		return src.movie, src.version, nil
	}

	f, err := os.Open(src.path)
	if err != nil {
		return Movie{}, "", curated.Errorf(MovieError, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Movie{}, "", curated.Errorf(MovieError, err)
	}

	// the version is the hash of the file's content. a file that is touched
	// but not changed keeps its version
	dig := digest.NewChain()
	dig.Add(data)
	version := dig.Hash()
	if version != src.version {
		mv, err := ParseMovie(data)
		if err != nil {
			return Movie{}, "", err
		}
		src.movie = mv
		src.version = version
	}

	src.modTime = st.ModTime()
	src.size = st.Size()

	return src.movie, src.version, nil
}

// StaticSource is a movie held in memory. The movie can be replaced at any
// time with Set().
type StaticSource struct {
	crit    sync.Mutex
	movie   Movie
	version int
}

// NewStaticSource is the preferred method of initialisation for the
// StaticSource type.
func NewStaticSource(mv Movie) *StaticSource {
	return &StaticSource{movie: mv}
}

// NewStaticSourceFromYAML parses the YAML data and creates a new
// StaticSource.
func NewStaticSourceFromYAML(data []byte) (*StaticSource, error) {
	mv, err := ParseMovie(data)
	if err != nil {
		return nil, err
	}
	return NewStaticSource(mv), nil
}

// Set replaces the movie.
func (src *StaticSource) Set(mv Movie) {
	src.crit.Lock()
	defer src.crit.Unlock()
	src.movie = mv
	src.version++
}

// Movie implements the Source interface.
func (src *StaticSource) Movie() (Movie, string, error) {
	src.crit.Lock()
	defer src.crit.Unlock()
	return src.movie, fmt.Sprintf("static:%d", src.version), nil
}
