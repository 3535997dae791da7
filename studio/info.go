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

package studio

import "fmt"

// Info is the state of the run at the end of a tick.
type Info struct {
	// line of the movie for the frame that was played last. -1 if no frame
	// has been played
	CurrentLine int `msgpack:"currentLine"`

	// position within the current input line plus the repeat suffix
	FrameInput string `msgpack:"frameInput"`

	CurrentFrameInTas int `msgpack:"currentFrameInTas"`
	TotalFrames       int `msgpack:"totalFrames"`

	// line of the savestate. -1 if there is no savestate
	HighlightLine int `msgpack:"highlightLine"`

	StateBits int `msgpack:"stateBits"`

	GameInfoText    string `msgpack:"gameInfoText"`
	LevelName       string `msgpack:"levelName"`
	ChapterTimeText string `msgpack:"chapterTimeText"`
	VersionString   string `msgpack:"versionString"`
}

func (inf Info) String() string {
	return fmt.Sprintf("line %d [%s] frame %d/%d", inf.CurrentLine, inf.FrameInput, inf.CurrentFrameInTas, inf.TotalFrames)
}

// Sender is implemented by types that can deliver Info to the studio.
type Sender interface {
	Send(Info)
}

// Null is a Sender that discards everything.
type Null struct{}

// Send implements the Sender interface.
func (Null) Send(Info) {}

// message is the envelope for everything sent over the websocket.
type message struct {
	Type    string   `msgpack:"type"`
	Session string   `msgpack:"session"`
	Version string   `msgpack:"version,omitempty"`
	State   *Info    `msgpack:"state,omitempty"`
	Command *Command `msgpack:"command,omitempty"`
}

const (
	typeHello   = "hello"
	typeState   = "state"
	typeCommand = "command"
)

// Command is sent by the studio to the running engine.
type Command struct {
	// hold the fast-forward hotkey on behalf of the user until a command
	// with FastForward set to false arrives
	FastForward bool `msgpack:"fastForward"`
}
