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

// Package easyterm reads hotkeys from the controlling terminal. The terminal
// is put into raw mode and each key typed is translated to the host keys of
// the default hotkey bindings:
//
//	s      start/stop
//	[      frame advance
//	]      pause/resume
//	= +    restart
//	f      fast forward
//	.      fast forward to next comment
//	v      save state
//	x      clear state
//	c      confirm
//
// The player's gamepad is also driven from the terminal, which is how the
// record command is played:
//
//	h j k l    left down up right
//	z          jump
//	n          dash
//	g          grab
//
// A terminal does not report key releases so each translated key is held for
// a fixed number of ticks. Ctrl-C closes the Quit() channel.
package easyterm
