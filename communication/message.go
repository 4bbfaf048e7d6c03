package communication

import (
	"encoding/json"
	"fmt"

	"facility/game"
)

type MessageType string

const (
	TypeSetup  MessageType = "setup"
	TypeHello  MessageType = "hello"
	TypeMove   MessageType = "move"
	TypeResult MessageType = "result"
	TypeError  MessageType = "error"
	TypePing   MessageType = "ping"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Setup lets the peer rebuild the host's board.
type Setup struct {
	Size     int           `json:"size"`
	Seed     uint64        `json:"seed"`
	GameType game.GameType `json:"game_type"`
	HostRole game.Player   `json:"host_role"`
}

type Hello struct {
	About string `json:"about"`
}

type Move struct {
	Round int `json:"round"`
	Index int `json:"index"`
}

// Result closes a game. Forfeit names the player who lost by an illegal
// move, if any.
type Result struct {
	ScoreA  int    `json:"score_a"`
	ScoreB  int    `json:"score_b"`
	Proof   string `json:"proof"`
	Forfeit string `json:"forfeit,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewMessage(t MessageType, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encoding %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: data}, nil
}

// Decode unmarshals the payload into v after checking the message type.
// A received error message is returned as an error.
func (m Message) Decode(want MessageType, v any) error {
	if m.Type == TypeError && want != TypeError {
		var e ErrorPayload
		_ = json.Unmarshal(m.Payload, &e)
		return fmt.Errorf("peer error: %s", e.Message)
	}
	if m.Type != want {
		return fmt.Errorf("expected %s message, got %s", want, m.Type)
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decoding %s payload: %w", want, err)
	}
	return nil
}
