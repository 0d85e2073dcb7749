// Package stream broadcasts simulation state to websocket viewers.
// It is a renderer collaborator: it only reads grid and agent state
// between ticks, never during an advance.
package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/sim"
)

// AgentState is one agent's position in a frame.
type AgentState struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// Frame is one renderable snapshot of the simulation, pushed to every
// connected viewer after each tick.
type Frame struct {
	Tick    int          `json:"tick"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Rows    []string     `json:"rows"` // terrain glyphs, one string per row
	Agents  []AgentState `json:"agents"`
	Metrics sim.Metrics  `json:"metrics"`
}

// BuildFrame snapshots the simulator into a frame. Terrain rows use
// the map-text glyphs; agents are reported separately so viewers can
// overlay their own markers.
func BuildFrame(s *sim.Simulator, tick int) Frame {
	g := s.Grid()
	rows := make([]string, g.Height())
	for y := 0; y < g.Height(); y++ {
		line := make([]rune, g.Width())
		for x := 0; x < g.Width(); x++ {
			t, _ := g.TerrainAt(core.Pos{X: x, Y: y})
			line[x] = t.Symbol()
		}
		rows[y] = string(line)
	}

	agents := s.Agents()
	states := make([]AgentState, len(agents))
	for i, a := range agents {
		states[i] = AgentState{ID: int(a.ID), X: a.Pos.X, Y: a.Pos.Y}
	}

	return Frame{
		Tick:    tick,
		Width:   g.Width(),
		Height:  g.Height(),
		Rows:    rows,
		Agents:  states,
		Metrics: s.Metrics(),
	}
}

// Server pushes one frame per tick to connected websocket viewers and
// serves the current state over plain HTTP.
type Server struct {
	sim      *sim.Simulator
	upgrader websocket.Upgrader

	mu      sync.Mutex
	viewers map[*websocket.Conn]bool
}

// NewServer wraps s and hooks its tick callback to broadcast frames.
func NewServer(s *sim.Simulator) *Server {
	srv := &Server{
		sim: s,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		viewers: make(map[*websocket.Conn]bool),
	}
	s.SetTickCallback(srv.Broadcast)
	return srv
}

// Handler returns the HTTP mux: /ws for the frame stream, /state for a
// one-shot JSON snapshot, /healthz for liveness.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.serveWS)
	mux.HandleFunc("/state", srv.serveState)
	mux.HandleFunc("/healthz", srv.serveHealth)
	return mux
}

func (srv *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream: upgrade failed: %v", err)
		return
	}

	// Send the current state before registering the viewer, so the
	// initial write cannot race a broadcast on the same connection.
	frame := BuildFrame(srv.sim, srv.sim.Metrics().Ticks)
	if err := conn.WriteJSON(frame); err != nil {
		conn.Close()
		return
	}

	srv.mu.Lock()
	srv.viewers[conn] = true
	n := len(srv.viewers)
	srv.mu.Unlock()
	log.Printf("stream: viewer connected (%d total)", n)

	// Viewers send nothing meaningful; the read loop exists to detect
	// disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				srv.drop(conn)
				return
			}
		}
	}()
}

// Broadcast pushes the current frame to every viewer. Failed writes
// drop the viewer.
func (srv *Server) Broadcast(tick int) {
	frame := BuildFrame(srv.sim, tick)

	srv.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(srv.viewers))
	for c := range srv.viewers {
		conns = append(conns, c)
	}
	srv.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(frame); err != nil {
			log.Printf("stream: viewer write failed: %v", err)
			srv.drop(c)
		}
	}
}

func (srv *Server) drop(conn *websocket.Conn) {
	srv.mu.Lock()
	if srv.viewers[conn] {
		delete(srv.viewers, conn)
		conn.Close()
	}
	srv.mu.Unlock()
}

func (srv *Server) serveState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildFrame(srv.sim, srv.sim.Metrics().Ticks))
}

func (srv *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
