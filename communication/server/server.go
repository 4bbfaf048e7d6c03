package server

import (
	"context"
	"errors"
	"net/http"

	"facility/communication"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ServerCommunicator serves the host side: peers connect on /ws and are
// handed out one at a time by Accept.
type ServerCommunicator struct {
	router   chi.Router
	upgrader websocket.Upgrader
	peers    chan *communication.Conn
	srv      *http.Server
}

func NewServerCommunicator() *ServerCommunicator {
	sc := &ServerCommunicator{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		peers:    make(chan *communication.Conn, 1),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", sc.handleWS)
	sc.router = r
	return sc
}

func (sc *ServerCommunicator) Handler() http.Handler {
	return sc.router
}

// Start serves on addr until Shutdown.
func (sc *ServerCommunicator) Start(addr string) error {
	sc.srv = &http.Server{Addr: addr, Handler: sc.router}
	log.Info().Msgf("listening on %s", addr)
	if err := sc.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (sc *ServerCommunicator) Shutdown(ctx context.Context) error {
	if sc.srv == nil {
		return nil
	}
	return sc.srv.Shutdown(ctx)
}

// Accept waits for the next peer.
func (sc *ServerCommunicator) Accept(ctx context.Context) (*communication.Conn, error) {
	select {
	case conn := <-sc.peers:
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (sc *ServerCommunicator) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := sc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := communication.NewConn(ws)
	select {
	case sc.peers <- conn:
		log.Info().Msgf("peer connected from %s", r.RemoteAddr)
	default:
		msg, _ := communication.NewMessage(communication.TypeError, communication.ErrorPayload{Message: "host busy"})
		_ = conn.Send(r.Context(), msg)
		_ = conn.Close()
	}
}
