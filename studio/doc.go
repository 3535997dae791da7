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

// Package studio sends the state of the TAS run to the studio, the companion
// program used to edit and monitor movies.
//
// The state is sent over a websocket as msgpack encoded messages. Every
// connection begins with a hello message carrying a session ID that is unique
// to the connection. State messages follow, at most one per tick.
//
// Sending never blocks the caller. The Client queues state messages and
// drops them if the queue is full, which only happens if the studio is not
// keeping up.
package studio
