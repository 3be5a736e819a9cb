package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/rgbshades/internal/diagnostics"
	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
)

type fakeEngine struct {
	mu     sync.Mutex
	cmds   []render.Command
	err    error
	status render.Status
}

func (f *fakeEngine) Submit(c render.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cmds = append(f.cmds, c)
	return nil
}

func (f *fakeEngine) Status() render.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func newServer(t *testing.T) (*State, *fakeEngine, *httptest.Server) {
	t.Helper()
	eng := &fakeEngine{status: render.Status{Effect: "plasma", Effects: 3}}
	s := NewState(layout.Shades(), eng, zerolog.Nop())
	s.Effects = []string{"plasma", "confetti", "pacman"}
	mux := http.NewServeMux()
	s.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, eng, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestFramesStreamTopologyThenFrames(t *testing.T) {
	s, _, srv := newServer(t)
	c := dial(t, srv, "/ws")

	var top topology
	require.NoError(t, c.ReadJSON(&top))
	assert.Equal(t, 16, top.Dim["x"])
	assert.Equal(t, layout.ShadesPhysical, top.Physical)
	assert.Len(t, top.Table, 80)
	assert.Equal(t, []string{"plasma", "confetti", "pacman"}, top.Effects)

	require.NoError(t, s.Write([]byte{1, 2, 3}))
	var f frame
	require.NoError(t, c.ReadJSON(&f))
	assert.EqualValues(t, 1, f.FrameID)
	assert.Equal(t, []byte{1, 2, 3}, f.RGB)
}

func TestTopologyArrivesBeforeFrames(t *testing.T) {
	s, _, srv := newServer(t)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				_ = s.Write([]byte{9, 9, 9})
			}
		}
	}()
	defer func() {
		close(stop)
		<-done
	}()

	for i := 0; i < 5; i++ {
		c := dial(t, srv, "/ws")
		var first map[string]any
		require.NoError(t, c.ReadJSON(&first))
		assert.Contains(t, first, "table", "connection %d", i)
		assert.NotContains(t, first, "frame_id", "connection %d", i)
	}
}

func TestControlSubmitsCommands(t *testing.T) {
	_, eng, srv := newServer(t)
	c := dial(t, srv, "/control")

	var reply controlReply
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"select","name":"pacman"}`)))
	require.NoError(t, c.ReadJSON(&reply))
	assert.True(t, reply.OK)
	assert.Equal(t, "plasma", reply.Status.Effect)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"brightness","value":64}`)))
	require.NoError(t, c.ReadJSON(&reply))
	assert.True(t, reply.OK)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"brightness","value":900}`)))
	require.NoError(t, c.ReadJSON(&reply))
	assert.False(t, reply.OK)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"brightness","value":0}`)))
	require.NoError(t, c.ReadJSON(&reply))
	assert.False(t, reply.OK)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"explode"}`)))
	require.NoError(t, c.ReadJSON(&reply))
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown command")

	eng.mu.Lock()
	defer eng.mu.Unlock()
	require.Len(t, eng.cmds, 2)
	assert.Equal(t, render.Command{Kind: render.CmdSelect, Name: "pacman"}, eng.cmds[0])
	assert.Equal(t, render.Command{Kind: render.CmdBrightness, Value: 64}, eng.cmds[1])
}

func TestDiagReplaysBacklog(t *testing.T) {
	s, eng, srv := newServer(t)
	eng.err = render.ErrQueueFull

	ctl := dial(t, srv, "/control")
	require.NoError(t, ctl.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"next"}`)))
	var reply controlReply
	require.NoError(t, ctl.ReadJSON(&reply))
	assert.False(t, reply.OK)

	d := dial(t, srv, "/diag")
	var got diag.Diagnostic
	require.NoError(t, d.ReadJSON(&got))
	assert.Equal(t, "CONTROL.QUEUE_FULL", got.Code)

	s.Report(diag.Diagnostic{Severity: diag.Info, Code: "TEST.LIVE"})
	require.NoError(t, d.ReadJSON(&got))
	assert.Equal(t, "TEST.LIVE", got.Code)
}

func TestDiagBacklogPrecedesLiveReports(t *testing.T) {
	s, _, srv := newServer(t)
	for _, code := range []string{"OLD.1", "OLD.2", "OLD.3"} {
		s.Report(diag.Diagnostic{Severity: diag.Info, Code: code})
	}
	go func() {
		for i := 0; i < 20; i++ {
			s.Report(diag.Diagnostic{Severity: diag.Info, Code: "LIVE"})
		}
	}()

	d := dial(t, srv, "/diag")
	var codes []string
	for len(codes) < 3 {
		var got diag.Diagnostic
		require.NoError(t, d.ReadJSON(&got))
		codes = append(codes, got.Code)
	}
	// the backlog is the last 16 reports, so it may already hold LIVE
	// entries, but only ever after the OLD ones
	seenLive := false
	for _, c := range codes {
		if c == "LIVE" {
			seenLive = true
			continue
		}
		assert.False(t, seenLive, "old report after a live one: %v", codes)
	}
}

func TestHealth(t *testing.T) {
	s, _, srv := newServer(t)
	s.Driver = "sim"
	require.NoError(t, s.Write(make([]byte, 6)))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["frame_id"])
	assert.Equal(t, "sim", body["driver"])
	engine := body["engine"].(map[string]any)
	assert.Equal(t, "plasma", engine["effect"])
}
