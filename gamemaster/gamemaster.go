package gamemaster

import (
	"context"
	"errors"
	"fmt"

	"facility/communication"
	"facility/engine"
	"facility/experiments/metrics"
	"facility/game"
	"facility/monitor"
	"facility/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	Size     int
	Seed     uint64
	GameType game.GameType
	Role     game.Player // side played by the host
}

type Option func(gm *GameMaster)

func WithMonitor(m *monitor.Monitor) Option {
	return func(gm *GameMaster) {
		gm.monitor = m
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(gm *GameMaster) {
		if c != nil {
			gm.collector = c
		}
	}
}

func WithVerbose() Option {
	return func(gm *GameMaster) {
		gm.verbose = true
	}
}

// GameMaster hosts a remote game. It owns the authoritative board, plays its
// own strategy and validates every move the peer sends.
type GameMaster struct {
	Communicator communication.Communicator
	State        *game.GameState
	Peer         string // the peer's About string

	settings  Settings
	strategy  player.Strategy
	monitor   *monitor.Monitor
	collector metrics.Collector
	verbose   bool
}

// NewGameMaster builds the board and checks the host strategy accepts it.
func NewGameMaster(comm communication.Communicator, settings Settings, strategy player.Strategy, opts ...Option) (*GameMaster, error) {
	state, err := game.NewGameState(settings.Size, settings.Seed, settings.GameType)
	if err != nil {
		return nil, err
	}
	gm := &GameMaster{
		Communicator: comm,
		State:        state,
		settings:     settings,
		strategy:     strategy,
		collector:    metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(gm)
	}
	if err := strategy.Initialize(state); err != nil {
		return nil, fmt.Errorf("initializing %s: %w", strategy.About(), err)
	}
	return gm, nil
}

// RunGame sets the peer up, alternates moves until the board is full or a
// player forfeits, then sends the result.
func (gm *GameMaster) RunGame(ctx context.Context) (engine.Result, error) {
	gm.monitor.SetState(0, monitor.Starting)
	defer gm.monitor.RequestStop()

	if err := gm.handshake(ctx); err != nil {
		return engine.Result{}, err
	}
	gm.collector.Start()

	me := gm.settings.Role
	var forfeit *game.Player
	for !gm.State.IsFinished() && forfeit == nil {
		round := gm.State.NumMoves()
		p := gm.State.CurrentPlayer()

		var index int
		if p == me {
			gm.monitor.SetState(round, monitor.WaitingForMe)
			gm.collector.StartMove()
			var err error
			if index, err = gm.strategy.NextMove(gm.State); err != nil {
				gm.sendError(ctx, err)
				return engine.Result{}, fmt.Errorf("%s in round %d: %w", gm.strategy.About(), round, err)
			}
		} else {
			gm.monitor.SetState(round, monitor.WaitingForOpponent)
			msg, err := gm.Communicator.Receive(ctx)
			if err != nil {
				return engine.Result{}, fmt.Errorf("waiting for round %d: %w", round, err)
			}
			var move communication.Move
			if err := msg.Decode(communication.TypeMove, &move); err != nil {
				return engine.Result{}, err
			}
			gm.collector.StartMove()
			index = move.Index
		}

		if err := gm.State.Play(p, index); err != nil {
			if !errors.Is(err, game.ErrIllegalMove) {
				return engine.Result{}, err
			}
			log.Warn().Msgf("%s forfeits: %v", p, err)
			forfeit = &p
			continue
		}
		gm.collector.AddMove(round, p, index, gm.State.Value(index), gm.State.Score())
		if gm.verbose {
			log.Info().Msgf("round %d: %s took %d | %s", round, p, index, gm.State)
		}

		if p == me {
			if err := gm.send(ctx, communication.TypeMove, communication.Move{Round: round, Index: index}); err != nil {
				return engine.Result{}, fmt.Errorf("sending round %d: %w", round, err)
			}
		}
	}

	gm.monitor.SetState(gm.State.NumMoves(), monitor.Terminating)
	result := engine.Finish(gm.State, forfeit)
	result.Proof = uuid.NewString()
	result.Game = gm.collector.Complete(result.WinnerName(), result.ForfeitName(), result.Score)
	result.MoveStats = gm.collector.Moves()

	if err := gm.send(ctx, communication.TypeResult, communication.Result{
		ScoreA:  result.Score.A,
		ScoreB:  result.Score.B,
		Proof:   result.Proof,
		Forfeit: result.ForfeitName(),
	}); err != nil {
		return result, fmt.Errorf("sending result: %w", err)
	}

	if gm.State.Type().Mirrored() && !result.Forfeit && !result.Paired {
		log.Warn().Msgf("%s moves do not pair up", gm.State.Type())
	}
	log.Info().Msgf("%s against %s (proof %s)", result.Score, gm.Peer, result.Proof)
	return result, nil
}

func (gm *GameMaster) handshake(ctx context.Context) error {
	setup := communication.Setup{
		Size:     gm.settings.Size,
		Seed:     gm.settings.Seed,
		GameType: gm.settings.GameType,
		HostRole: gm.settings.Role,
	}
	if err := gm.send(ctx, communication.TypeSetup, setup); err != nil {
		return fmt.Errorf("sending setup: %w", err)
	}
	if err := gm.send(ctx, communication.TypeHello, communication.Hello{About: gm.strategy.About()}); err != nil {
		return fmt.Errorf("sending hello: %w", err)
	}

	msg, err := gm.Communicator.Receive(ctx)
	if err != nil {
		return fmt.Errorf("waiting for hello: %w", err)
	}
	var hello communication.Hello
	if err := msg.Decode(communication.TypeHello, &hello); err != nil {
		return err
	}
	gm.Peer = hello.About
	log.Info().Msgf("hosting %s as %s against %s", gm.State.Type(), gm.settings.Role, gm.Peer)
	return nil
}

func (gm *GameMaster) send(ctx context.Context, t communication.MessageType, payload any) error {
	msg, err := communication.NewMessage(t, payload)
	if err != nil {
		return err
	}
	return gm.Communicator.Send(ctx, msg)
}

func (gm *GameMaster) sendError(ctx context.Context, cause error) {
	_ = gm.send(ctx, communication.TypeError, communication.ErrorPayload{Message: cause.Error()})
}
