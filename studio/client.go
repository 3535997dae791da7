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
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tasworks/tasengine/curated"
	"github.com/tasworks/tasengine/logger"
	"github.com/vmihailenco/msgpack/v5"
)

// TransportError is returned when communication with the studio fails.
const TransportError = "studio: %v"

// QueueLength is the number of state messages the Client will hold before
// dropping new ones.
const QueueLength = 64

// CommandQueueLength is the number of commands from the studio the Client
// will hold before dropping new ones.
const CommandQueueLength = 16

const writeTimeout = 2 * time.Second

// Client is a Sender that delivers Info to a studio over a websocket.
type Client struct {
	conn    *websocket.Conn
	session uuid.UUID

	queue    chan Info
	commands chan Command
	quit     chan struct{}
	wg       sync.WaitGroup
	reading  sync.WaitGroup

	closeOnce sync.Once
	dropped   atomic.Int64
	sent      atomic.Int64
}

// Dial connects to the studio listening at the websocket URL. The version
// string is sent to the studio in the hello message.
func Dial(ctx context.Context, url string, version string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, curated.Errorf(TransportError, err)
	}

	c := &Client{
		conn:     conn,
		session:  uuid.New(),
		queue:    make(chan Info, QueueLength),
		commands: make(chan Command, CommandQueueLength),
		quit:     make(chan struct{}),
	}

	err = c.write(message{Type: typeHello, Session: c.session.String(), Version: version})
	if err != nil {
		conn.Close()
		return nil, err
	}

	c.wg.Add(1)
	go c.service()

	c.reading.Add(1)
	go c.read()

	logger.Logf(logger.Allow, "studio", "connected to %s (session %s)", url, c.session)

	return c, nil
}

// Session returns the ID of the session.
func (c *Client) Session() string {
	return c.session.String()
}

// Dropped returns the number of state messages that have been dropped
// because the queue was full.
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Sent returns the number of state messages that have been written to the
// websocket.
func (c *Client) Sent() int64 {
	return c.sent.Load()
}

// Send implements the Sender interface. It does not block.
func (c *Client) Send(inf Info) {
	select {
	case <-c.quit:
		return
	default:
	}

	select {
	case c.queue <- inf:
	default:
		c.dropped.Add(1)
	}
}

func (c *Client) write(msg message) error {
	data, err := msgpack.Marshal(&msg)
	if err != nil {
		return curated.Errorf(TransportError, err)
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err = c.conn.WriteMessage(websocket.BinaryMessage, data)
	if err != nil {
		return curated.Errorf(TransportError, err)
	}
	return nil
}

func (c *Client) service() {
	defer c.wg.Done()

	for {
		select {
		case <-c.quit:
			// flush whatever is already queued
			for {
				select {
				case inf := <-c.queue:
					if c.write(message{Type: typeState, Session: c.session.String(), State: &inf}) != nil {
						return
					}
					c.sent.Add(1)
				default:
					return
				}
			}

		case inf := <-c.queue:
			err := c.write(message{Type: typeState, Session: c.session.String(), State: &inf})
			if err != nil {
				logger.Log(logger.Allow, "studio", err)
				return
			}
			c.sent.Add(1)
		}
	}
}

// Commands returns the channel on which commands from the studio are
// delivered. The channel is never closed.
func (c *Client) Commands() <-chan Command {
	return c.commands
}

// the read pump ends when the connection is closed
func (c *Client) read() {
	defer c.reading.Done()

	for {
		typ, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.quit:
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					logger.Log(logger.Allow, "studio", curated.Errorf(TransportError, err))
				}
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
		if msg.Type != typeCommand || msg.Command == nil {
			continue
		}

		select {
		case c.commands <- *msg.Command:
		default:
			logger.Log(logger.Allow, "studio", "command queue full")
		}
	}
}

// Close the connection to the studio. Queued state messages are written
// before the connection is closed.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.quit)
		c.wg.Wait()

		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = c.conn.Close()
		if err != nil {
			err = curated.Errorf(TransportError, err)
		}
		c.reading.Wait()
	})
	return err
}
