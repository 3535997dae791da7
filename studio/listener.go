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

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/logger"
	"github.com/vmihailenco/msgpack/v5"
)

// Session describes the connection a state message arrived on.
type Session struct {
	ID      string
	Version string
}

// Listener is the studio end of the connection. It is an http.Handler that
// upgrades requests to websockets and decodes the messages that arrive.
type Listener struct {
	upgrader websocket.Upgrader
	onState  func(Session, Info)

	// writes to every connection are serialised by the one mutex
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewListener is the preferred method of initialisation for the Listener
// type. The onState function is called for every state message, from the
// goroutine serving the connection.
func NewListener(onState func(Session, Info)) *Listener {
	return &Listener{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		onState: onState,
		conns:   make(map[*websocket.Conn]bool),
	}
}

// Broadcast sends the command to every connected engine. It returns the
// number of connections the command was written to.
func (l *Listener) Broadcast(cmd Command) (int, error) {
	data, err := msgpack.Marshal(&message{Type: typeCommand, Command: &cmd})
	if err != nil {
		return 0, curated.Errorf(TransportError, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for conn := range l.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := conn.WriteMessage(websocket.BinaryMessage, data)
		if err != nil {
			logger.Logf(logger.Allow, "studio", "command not delivered: %v", err)
			continue
		}
		n++
	}
	return n, nil
}

// ServeHTTP implements the http.Handler interface.
func (l *Listener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logf(logger.Allow, "studio", "upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	l.mu.Lock()
	l.conns[conn] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.conns, conn)
		l.mu.Unlock()
	}()

	var sess Session

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.Logf(logger.Allow, "studio", "connection lost: %v", err)
			}
			return
		}
		if typ != websocket.BinaryMessage {
			continue
		}

		var msg message
		err = msgpack.Unmarshal(data, &msg)
		if err != nil {
			logger.Logf(logger.Allow, "studio", "discarding malformed message: %v", err)
			continue
		}

		switch msg.Type {
		case typeHello:
			sess = Session{ID: msg.Session, Version: msg.Version}
			logger.Logf(logger.Allow, "studio", "session %s (%s)", sess.ID, sess.Version)
		case typeState:
			if msg.State == nil {
				continue
			}
			if sess.ID == "" {
				logger.Log(logger.Allow, "studio", "state message before hello")
				continue
			}
			if l.onState != nil {
				l.onState(sess, *msg.State)
			}
		}
	}
}
