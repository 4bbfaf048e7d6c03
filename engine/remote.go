package engine

import (
	"context"
	"errors"
	"fmt"

	"facility/communication"
	"facility/game"
	"facility/monitor"
	"facility/player"

	"github.com/rs/zerolog/log"
)

// StrategyFactory builds the local strategy once the side is known.
type StrategyFactory func(me game.Player) (player.Strategy, error)

// RemoteEngine is the peer side of a remote game. It rebuilds the host's
// board from the setup message, mirrors every move and checks the host's
// final score against its own.
type RemoteEngine struct {
	State    *game.GameState
	Peer     string // the host's About string
	comm     communication.Communicator
	factory  StrategyFactory
	strategy player.Strategy
	me       game.Player
	options
}

func NewRemoteEngine(comm communication.Communicator, factory StrategyFactory, opts ...Option) *RemoteEngine {
	return &RemoteEngine{
		comm:    comm,
		factory: factory,
		options: buildOptions(opts),
	}
}

func (e *RemoteEngine) Run(ctx context.Context) (Result, error) {
	e.monitor.SetState(0, monitor.Starting)
	defer e.monitor.RequestStop()

	if err := e.handshake(ctx); err != nil {
		return Result{}, err
	}
	e.collector.Start()

	for !e.State.IsFinished() {
		round := e.State.NumMoves()
		if e.State.CurrentPlayer() == e.me {
			rejected, err := e.playOwn(ctx, round)
			if err != nil {
				return Result{}, err
			}
			if rejected {
				break
			}
			continue
		}

		e.monitor.SetState(round, monitor.WaitingForOpponent)
		msg, err := e.comm.Receive(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("waiting for round %d: %w", round, err)
		}
		if msg.Type == communication.TypeResult {
			return e.finish(msg)
		}
		var move communication.Move
		if err := msg.Decode(communication.TypeMove, &move); err != nil {
			return Result{}, err
		}
		if move.Round != round {
			return Result{}, fmt.Errorf("host sent round %d, expected %d: %w", move.Round, round, ErrDesync)
		}
		e.collector.StartMove()
		if err := e.State.Play(e.me.Opponent(), move.Index); err != nil {
			return Result{}, fmt.Errorf("host move %d rejected (%v): %w", move.Index, err, ErrDesync)
		}
		e.collector.AddMove(round, e.me.Opponent(), move.Index, e.State.Value(move.Index), e.State.Score())
		if e.verbose {
			log.Info().Msgf("round %d: host took %d | %s", round, move.Index, e.State)
		}
	}

	e.monitor.SetState(e.State.NumMoves(), monitor.WaitingForOpponent)
	msg, err := e.comm.Receive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("waiting for result: %w", err)
	}
	return e.finish(msg)
}

func (e *RemoteEngine) handshake(ctx context.Context) error {
	msg, err := e.comm.Receive(ctx)
	if err != nil {
		return fmt.Errorf("waiting for setup: %w", err)
	}
	var setup communication.Setup
	if err := msg.Decode(communication.TypeSetup, &setup); err != nil {
		return err
	}

	e.State, err = game.NewGameState(setup.Size, setup.Seed, setup.GameType)
	if err != nil {
		return err
	}
	e.me = setup.HostRole.Opponent()
	if e.strategy, err = e.factory(e.me); err != nil {
		return err
	}
	if err := e.strategy.Initialize(e.State); err != nil {
		return fmt.Errorf("initializing %s: %w", e.strategy.About(), err)
	}

	msg, err = e.comm.Receive(ctx)
	if err != nil {
		return fmt.Errorf("waiting for hello: %w", err)
	}
	var hello communication.Hello
	if err := msg.Decode(communication.TypeHello, &hello); err != nil {
		return err
	}
	e.Peer = hello.About

	reply, err := communication.NewMessage(communication.TypeHello, communication.Hello{About: e.strategy.About()})
	if err != nil {
		return err
	}
	log.Info().Msgf("playing %s as %s against %s", e.State.Type(), e.me, e.Peer)
	return e.comm.Send(ctx, reply)
}

// playOwn picks, applies and sends the local move. It returns true when the
// move was rejected locally; the host then answers with a forfeit result.
func (e *RemoteEngine) playOwn(ctx context.Context, round int) (bool, error) {
	e.monitor.SetState(round, monitor.WaitingForMe)
	e.collector.StartMove()
	index, err := e.strategy.NextMove(e.State)
	if err != nil {
		e.sendError(ctx, err)
		return false, fmt.Errorf("%s in round %d: %w", e.strategy.About(), round, err)
	}

	rejected := false
	if err := e.State.Play(e.me, index); err != nil {
		if !errors.Is(err, game.ErrIllegalMove) {
			return false, err
		}
		rejected = true
	} else {
		e.collector.AddMove(round, e.me, index, e.State.Value(index), e.State.Score())
	}

	msg, err := communication.NewMessage(communication.TypeMove, communication.Move{Round: round, Index: index})
	if err != nil {
		return false, err
	}
	if err := e.comm.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("sending round %d: %w", round, err)
	}
	return rejected, nil
}

func (e *RemoteEngine) finish(msg communication.Message) (Result, error) {
	e.monitor.SetState(e.State.NumMoves(), monitor.Terminating)

	var res communication.Result
	if err := msg.Decode(communication.TypeResult, &res); err != nil {
		return Result{}, err
	}

	var forfeit *game.Player
	if res.Forfeit != "" {
		p, err := game.ParsePlayer(res.Forfeit)
		if err != nil {
			return Result{}, fmt.Errorf("result names unknown player %q: %w", res.Forfeit, ErrDesync)
		}
		forfeit = &p
	} else if !e.State.IsFinished() {
		return Result{}, fmt.Errorf("host ended the game after %d moves: %w", e.State.NumMoves(), ErrDesync)
	}

	score := e.State.Score()
	if score.A != res.ScoreA || score.B != res.ScoreB {
		return Result{}, fmt.Errorf("host reports %d:%d, local score is %d:%d: %w",
			res.ScoreA, res.ScoreB, score.A, score.B, ErrDesync)
	}

	result := Finish(e.State, forfeit)
	result.Proof = res.Proof
	result.Game = e.collector.Complete(result.WinnerName(), result.ForfeitName(), result.Score)
	result.MoveStats = e.collector.Moves()
	if e.State.Type().Mirrored() && !result.Forfeit && !result.Paired {
		log.Warn().Msgf("%s moves do not pair up", e.State.Type())
	}
	log.Info().Msgf("%s (proof %s)", result.Score, result.Proof)
	return result, nil
}

func (e *RemoteEngine) sendError(ctx context.Context, cause error) {
	msg, err := communication.NewMessage(communication.TypeError, communication.ErrorPayload{Message: cause.Error()})
	if err != nil {
		return
	}
	_ = e.comm.Send(ctx, msg)
}
