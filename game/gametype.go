package game

import (
	"fmt"
	"strings"
)

type GameType int

const (
	Normal     GameType = iota // uniform random values
	Copy                       // second half repeats the first half
	Complement                 // second half complements the first half
)

func (t GameType) String() string {
	switch t {
	case Normal:
		return "NORMAL"
	case Copy:
		return "COPY"
	case Complement:
		return "COMPLEMENT"
	}
	return fmt.Sprintf("GameType(%d)", int(t))
}

// Mirrored reports whether the board is built from two paired halves.
func (t GameType) Mirrored() bool {
	return t == Copy || t == Complement
}

func ParseGameType(s string) (GameType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL", "":
		return Normal, nil
	case "COPY":
		return Copy, nil
	case "COMPLEMENT":
		return Complement, nil
	}
	return 0, fmt.Errorf("unknown game type %q: %w", s, ErrConfig)
}

func (t GameType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *GameType) UnmarshalText(text []byte) error {
	parsed, err := ParseGameType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
