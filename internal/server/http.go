// Package server is the websocket boundary. Each connection owns its own
// game instance; the core stays single-threaded per session.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/ESikich/TopDownRPG/internal/engine"
	"github.com/ESikich/TopDownRPG/internal/network"
	"github.com/ESikich/TopDownRPG/internal/version"
	"github.com/ESikich/TopDownRPG/pkg/logger"
)

type Server struct {
	Cfg  engine.Config
	Hub  *network.Broadcaster
	Port string
}

func New(cfg engine.Config, port string) *Server {
	return &Server{
		Cfg:  cfg,
		Hub:  network.NewBroadcaster(),
		Port: port,
	}
}

// Run registers the routes and serves until the listener fails.
func (s *Server) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	logger.Log.Infof("Dungeon server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Websocket upgrade failed.")
		return
	}

	client := NewClient(s, conn)
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
