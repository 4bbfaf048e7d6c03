package communication

import (
	"context"
	"errors"
)

// ErrClosed is returned once the other side is gone or the communicator was
// closed locally.
var ErrClosed = errors.New("communicator closed")

// Communicator carries messages between the host and the peer of a remote
// game. Send and Receive block until done or ctx is cancelled.
type Communicator interface {
	Send(ctx context.Context, msg Message) error
	Receive(ctx context.Context) (Message, error)
	Close() error
}
