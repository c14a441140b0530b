// Package remote accepts playback commands over a websocket and hands them to
// the render loop through the notification queue.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/notify"
)

// Queue is the cross-goroutine side of the notification center.
type Queue interface {
	Enqueue(n any) bool
}

type Options struct {
	Addr   string
	Queue  Queue
	Logger zerolog.Logger
}

// Command is a single control message, e.g. {"command":"next","alternate":true}.
type Command struct {
	Command   string `json:"command"`
	Alternate bool   `json:"alternate,omitempty"`
}

type reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

var playbackCommands = map[string]notify.Action{
	"next":     notify.NextPreset,
	"previous": notify.PreviousPreset,
	"random":   notify.RandomPreset,
	"last":     notify.LastPreset,
	"shuffle":  notify.ToggleShuffle,
	"lock":     notify.TogglePresetLocked,
}

type Server struct {
	addr  string
	queue Queue
	log   zerolog.Logger

	upgrader  websocket.Upgrader
	srv       *http.Server
	startTime time.Time
	handled   atomic.Uint64
}

func New(opts Options) *Server {
	s := &Server{
		addr:      opts.Addr,
		queue:     opts.Queue,
		log:       opts.Logger.With().Str("component", "remote").Logger(),
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	s.srv = &http.Server{
		Addr:         opts.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("remote control listening")
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("remote control server stopped")
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("upgrade")
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		resp := reply{OK: true}
		if err := json.Unmarshal(data, &cmd); err != nil {
			resp = reply{Error: "malformed command"}
		} else if err := s.apply(cmd); err != nil {
			resp = reply{Error: err.Error()}
		}
		b, _ := json.Marshal(resp)
		conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"uptime_s": time.Since(s.startTime).Seconds(),
		"commands": s.handled.Load(),
	})
}

func (s *Server) apply(cmd Command) error {
	var n any
	if action, ok := playbackCommands[cmd.Command]; ok {
		n = notify.PlaybackControl{Action: action, Alternate: cmd.Alternate}
	} else if cmd.Command == "quit" {
		n = notify.Quit{Source: "remote"}
	} else {
		return fmt.Errorf("unknown command %q", cmd.Command)
	}

	if !s.queue.Enqueue(n) {
		return errors.New("busy")
	}
	s.handled.Add(1)
	s.log.Debug().Str("command", cmd.Command).Bool("alternate", cmd.Alternate).Msg("queued")
	return nil
}
