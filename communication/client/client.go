package client

import (
	"context"
	"fmt"

	"facility/communication"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ClientCommunicator is the peer's end of a remote game.
type ClientCommunicator struct {
	*communication.Conn
}

// Dial connects to a host's websocket endpoint, e.g. ws://localhost:8080/ws.
func Dial(ctx context.Context, serverURL string) (*ClientCommunicator, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", serverURL, err)
	}
	log.Info().Msgf("connected to %s", serverURL)
	return &ClientCommunicator{
		Conn: communication.NewConn(ws),
	}, nil
}
