package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// PingInterval is how long the write side may stay idle before a ping.
const PingInterval = 30 * time.Second

// Conn adapts a websocket connection to a Communicator. A reader goroutine
// queues incoming messages; writes happen on the caller's goroutine, with a
// heartbeat goroutine pinging an idle link.
type Conn struct {
	ws   *websocket.Conn
	in   chan Message
	done chan struct{}
	once sync.Once

	wmu       sync.Mutex // guards writes and lastWrite
	lastWrite time.Time

	emu     sync.Mutex
	readErr error
}

func NewConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws:        ws,
		in:        make(chan Message, 16),
		done:      make(chan struct{}),
		lastWrite: time.Now(),
	}
	go c.readLoop()
	go c.heartbeat()
	return c
}

func (c *Conn) readLoop() {
	defer close(c.in)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.emu.Lock()
			c.readErr = fmt.Errorf("%w: %v", ErrClosed, err)
			c.emu.Unlock()
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("dropping malformed message")
			continue
		}
		if msg.Type == TypePing {
			continue
		}
		select {
		case c.in <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) heartbeat() {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()
	ping, _ := json.Marshal(Message{Type: TypePing})

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.write(ping, time.Time{}, true); err != nil {
				log.Warn().Err(err).Msg("websocket ping failed")
				c.Close()
				return
			}
		}
	}
}

func (c *Conn) write(data []byte, deadline time.Time, onlyIfIdle bool) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if onlyIfIdle && time.Since(c.lastWrite) < PingInterval {
		return nil
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	c.lastWrite = time.Now()
	return nil
}

func (c *Conn) Send(ctx context.Context, msg Message) error {
	select {
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding %s message: %w", msg.Type, err)
	}
	deadline, _ := ctx.Deadline()
	if err := c.write(data, deadline, false); err != nil {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return nil
}

func (c *Conn) Receive(ctx context.Context) (Message, error) {
	select {
	case msg, ok := <-c.in:
		if !ok {
			return Message{}, c.err()
		}
		return msg, nil
	case <-c.done:
		return Message{}, ErrClosed
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (c *Conn) err() error {
	c.emu.Lock()
	defer c.emu.Unlock()
	if c.readErr != nil {
		return c.readErr
	}
	return ErrClosed
}

func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = c.ws.Close()
	})
	return err
}
