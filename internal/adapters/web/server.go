// Package web implements the front-end HTTP/WebSocket adapter: a thin
// gorilla/mux surface over the Network Index and control bus, and a
// gorilla/websocket stream that relays Monitor Loop and Attack Coordinator
// events as they are published, mirroring the teacher's WSManager but
// carrying this system's typed control-bus events instead of a device
// graph.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spyfi/internal/core/control"
	"spyfi/internal/core/domain"
	"spyfi/internal/core/registry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsMessage is the envelope every streamed control-bus event is wrapped in.
type wsMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Server exposes the Network Index and control bus over HTTP and
// WebSocket. It never drives the Monitor Loop or Attack Coordinator
// itself; it only relays what is published on bus and accepts commands
// onto it.
type Server struct {
	idx *registry.Index
	bus *control.Bus

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer builds a Server over idx and bus.
func NewServer(idx *registry.Index, bus *control.Bus) *Server {
	return &Server{
		idx:     idx,
		bus:     bus,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Router builds the mux.Router exposing the snapshot, command, and metrics
// surfaces, plus the /ws streaming endpoint.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/networks", s.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/channel", s.handleSetChannel).Methods(http.MethodPost)
	r.HandleFunc("/api/sweep", s.handleSweep).Methods(http.MethodPost)
	r.HandleFunc("/api/deauth", s.handleDeauth).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start spawns the two goroutines that relay monitor and attack bus events
// to connected WebSocket clients. Call once before serving Router.
func (s *Server) Start() {
	go s.relayMonitorEvents()
	go s.relayAttackEvents()
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.idx.Snapshot())
}

func (s *Server) handleSetChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Channel int `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.bus.MonitorCommands <- control.SetChannelCommand{Channel: req.Channel}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	s.bus.MonitorCommands <- control.SweepCommand{}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleDeauth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bssid  string  `json:"bssid"`
		Client *string `json:"client,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bssid, err := domain.ParseMac(req.Bssid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cmd := control.DeauthCommand{Bssid: bssid}
	if req.Client != nil {
		client, err := domain.ParseMac(*req.Client)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cmd.Client = &client
	}
	s.bus.MonitorCommands <- cmd
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	// Drain incoming frames so the connection's read deadline never fires;
	// this adapter is publish-only toward the client.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) relayMonitorEvents() {
	for ev := range s.bus.MonitorEvents {
		switch e := ev.(type) {
		case control.SnapshotEvent:
			s.broadcast(wsMessage{Type: "snapshot", Payload: e.Networks})
		case control.PermissionEvent:
			s.broadcast(wsMessage{Type: "permission_error", Payload: e.Err.Error()})
		case control.MonitorEndedEvent:
			s.broadcast(wsMessage{Type: "monitor_ended"})
		}
	}
}

func (s *Server) relayAttackEvents() {
	for ev := range s.bus.AttackEvents {
		switch e := ev.(type) {
		case control.ProgressEvent:
			s.broadcast(wsMessage{Type: "attack_progress", Payload: e})
		case control.PasswordEvent:
			s.broadcast(wsMessage{Type: "attack_password", Payload: e.Password})
		case control.ExhaustedEvent:
			s.broadcast(wsMessage{Type: "attack_exhausted"})
		case control.ErrorEvent:
			s.broadcast(wsMessage{Type: "attack_error", Payload: e.Err.Error()})
		}
	}
}

func (s *Server) broadcast(msg wsMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("web: websocket write: %v", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}
