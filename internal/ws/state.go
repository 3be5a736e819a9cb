package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	diag "github.com/coreman2200/rgbshades/internal/diagnostics"
	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
)

const (
	writeWait   = 200 * time.Millisecond
	diagBacklog = 16
)

// Controller is the part of the engine the sockets talk to. Both methods
// are safe to call from handler goroutines.
type Controller interface {
	Submit(render.Command) error
	Status() render.Status
}

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(b)
}

// write needs c.mu held.
func (c *client) write(b []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// State serves the browser preview and control sockets. It is also an LED
// sink: every frame written to it is broadcast on /ws.
type State struct {
	Layout  layout.Layout
	Effects []string
	Driver  string

	ctl Controller
	log zerolog.Logger
	up  websocket.Upgrader

	mu          sync.RWMutex
	frameID     uint64
	clients     map[*client]bool
	diagClients map[*client]bool
	diags       []diag.Diagnostic
	lastEffect  string
	startTime   time.Time
}

func NewState(l layout.Layout, ctl Controller, log zerolog.Logger) *State {
	return &State{
		Layout:      l,
		ctl:         ctl,
		log:         log,
		up:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:     map[*client]bool{},
		diagClients: map[*client]bool{},
		startTime:   time.Now(),
	}
}

// Attach sets the engine once it exists; the engine needs the state as a
// sink first.
func (s *State) Attach(ctl Controller) { s.ctl = ctl }

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

// Write broadcasts rgb to the preview clients on the caller's goroutine.
// Send errors are logged, never returned; each client may hold the caller
// for up to writeWait.
func (s *State) Write(rgb []byte) error {
	s.mu.Lock()
	s.frameID++
	id := s.frameID
	s.mu.Unlock()

	if s.ctl != nil {
		if st := s.ctl.Status(); st.Effect != s.lastEffect {
			s.lastEffect = st.Effect
			s.Report(diag.Activated(st))
		}
	}

	b, err := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, RGB: rgb})
	if err != nil {
		return nil
	}
	for _, c := range s.frameClients() {
		if err := c.send(b); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.conn.Close()
	}
	for c := range s.diagClients {
		_ = c.conn.Close()
	}
	s.clients = map[*client]bool{}
	s.diagClients = map[*client]bool{}
	return nil
}

// Report queues d for the diagnostics stream and keeps a short backlog for
// clients that connect later.
func (s *State) Report(d diag.Diagnostic) {
	s.mu.Lock()
	s.diags = append(s.diags, d)
	if len(s.diags) > diagBacklog {
		s.diags = s.diags[len(s.diags)-diagBacklog:]
	}
	targets := make([]*client, 0, len(s.diagClients))
	for c := range s.diagClients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	b, _ := json.Marshal(d)
	for _, c := range targets {
		_ = c.send(b)
	}
}

func (s *State) frameClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		out = append(out, c)
	}
	return out
}

func (s *State) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	delete(s.diagClients, c)
	s.mu.Unlock()
	_ = c.conn.Close()
}

// readUntilClosed discards client messages until the peer goes away.
func (s *State) readUntilClosed(c *client) {
	defer s.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// HandleFramesWS streams frames, preceded by one topology message.
func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	if b, err := json.Marshal(s.topology()); err == nil {
		if err := c.send(b); err != nil {
			_ = conn.Close()
			return
		}
	}
	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()
	go s.readUntilClosed(c)
}

// HandleDiagWS replays the backlog and then streams new diagnostics.
func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}

	// c.mu is held across registration and replay so a concurrent Report
	// queues behind the backlog instead of jumping ahead of it.
	c.mu.Lock()
	s.mu.Lock()
	backlog := append([]diag.Diagnostic(nil), s.diags...)
	s.diagClients[c] = true
	s.mu.Unlock()
	for _, d := range backlog {
		b, _ := json.Marshal(d)
		if c.write(b) != nil {
			break
		}
	}
	c.mu.Unlock()
	go s.readUntilClosed(c)
}

type controlMsg struct {
	Cmd   string `json:"cmd"`
	Index int    `json:"index"`
	Name  string `json:"name"`
	Value int    `json:"value"`
	On    bool   `json:"on"`
}

type controlReply struct {
	OK     bool          `json:"ok"`
	Error  string        `json:"error,omitempty"`
	Status render.Status `json:"status"`
}

// Command converts a control message into an engine command.
func (m controlMsg) Command() (render.Command, error) {
	kind, err := render.ParseCommandKind(m.Cmd)
	if err != nil {
		return render.Command{}, err
	}
	if kind == render.CmdBrightness && (m.Value < 1 || m.Value > 255) {
		return render.Command{}, fmt.Errorf("brightness %d out of range 1..255", m.Value)
	}
	return render.Command{Kind: kind, Index: m.Index, Name: m.Name, Value: uint8(m.Value), On: m.On}, nil
}

// HandleControlWS accepts one JSON command per message and answers each with
// an acknowledgement carrying the current status.
func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		reply := s.control(data)
		b, _ := json.Marshal(reply)
		if err := c.send(b); err != nil {
			return
		}
	}
}

func (s *State) control(data []byte) controlReply {
	var msg controlMsg
	err := json.Unmarshal(data, &msg)
	if err == nil {
		var cmd render.Command
		if cmd, err = msg.Command(); err == nil {
			err = s.submit(cmd)
		}
	}
	reply := controlReply{OK: err == nil}
	if s.ctl != nil {
		reply.Status = s.ctl.Status()
	}
	if err != nil {
		reply.Error = err.Error()
		s.log.Debug().Err(err).Str("cmd", msg.Cmd).Msg("control rejected")
		s.Report(diag.Command(msg.Cmd, err))
	}
	return reply
}

var errNoController = errors.New("no engine attached")

func (s *State) submit(cmd render.Command) error {
	if s.ctl == nil {
		return errNoController
	}
	return s.ctl.Submit(cmd)
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"clients":  len(s.clients),
		"count":    s.Layout.Physical,
		"driver":   s.Driver,
	}
	s.mu.RUnlock()
	if s.ctl != nil {
		resp["engine"] = s.ctl.Status()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type topology struct {
	Dim      map[string]int `json:"dim"`
	Physical int            `json:"physical"`
	Table    []int          `json:"table"`
	Effects  []string       `json:"effects,omitempty"`
	Driver   string         `json:"driver,omitempty"`
}

func (s *State) topology() topology {
	return topology{
		Dim:      map[string]int{"x": s.Layout.Dim.X, "y": s.Layout.Dim.Y},
		Physical: s.Layout.Physical,
		Table:    s.Layout.Table,
		Effects:  s.Effects,
		Driver:   s.Driver,
	}
}

// Routes mounts the handlers on mux.
func (s *State) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
}
