package net

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"gatefall/server/internal/battle"
	"gatefall/server/internal/telemetry"
)

const writeWait = 10 * time.Second

// GatewayConfig carries the gateway's injected dependencies.
type GatewayConfig struct {
	Logger telemetry.Logger
}

// Gateway bridges external clients to the battle loop: HTTP endpoints for
// health, diagnostics, and reset, plus a websocket that accepts commands and
// streams per-tick snapshots and events.
type Gateway struct {
	loop     *battle.Loop
	logger   telemetry.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
}

type subscriber struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewGateway wires a gateway to a loop. The loop may be nil at construction
// so its step hook can reference the gateway; call Attach before serving.
func NewGateway(loop *battle.Loop, cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Gateway{
		loop:   loop,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*nethttp.Request) bool { return true },
		},
		subscribers: make(map[string]*subscriber),
	}
}

// Attach binds the loop that commands are enqueued onto.
func (g *Gateway) Attach(loop *battle.Loop) {
	g.loop = loop
}

// Router builds the HTTP surface.
func (g *Gateway) Router() nethttp.Handler {
	r := chi.NewRouter()
	r.Get("/health", g.handleHealth)
	r.Get("/diagnostics", g.handleDiagnostics)
	r.Post("/battle/reset", g.handleReset)
	r.Get("/ws", g.handleWebsocket)
	return r
}

func (g *Gateway) handleHealth(w nethttp.ResponseWriter, _ *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (g *Gateway) handleDiagnostics(w nethttp.ResponseWriter, _ *nethttp.Request) {
	session := g.loop.Session()
	payload := struct {
		Status     string                  `json:"status"`
		ServerTime int64                   `json:"serverTime"`
		Pending    int                     `json:"pendingCommands"`
		Telemetry  battle.CountersSnapshot `json:"telemetry"`
		Snapshot   battle.Snapshot         `json:"snapshot"`
	}{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
		Pending:    g.loop.Pending(),
		Telemetry:  session.Counters().Snapshot(),
		Snapshot:   session.Snapshot(),
	}
	writeJSON(w, nethttp.StatusOK, payload)
}

func (g *Gateway) handleReset(w nethttp.ResponseWriter, _ *nethttp.Request) {
	if ok, reason := g.loop.Enqueue("http", 0, battle.Command{Type: battle.CommandResetBattle}); !ok {
		httpError(w, reason, nethttp.StatusServiceUnavailable)
		return
	}
	writeJSON(w, nethttp.StatusAccepted, map[string]string{"status": "reset scheduled"})
}

func (g *Gateway) handleWebsocket(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Printf("websocket upgrade failed: %v", err)
		return
	}
	id := fmt.Sprintf("client-%d", g.nextID.Add(1))
	sub := &subscriber{id: id, conn: conn}

	g.mu.Lock()
	g.subscribers[id] = sub
	g.mu.Unlock()

	sub.send(serverMessage{Type: "joined", ClientID: id, Snapshot: snapshotPtr(g.loop.Session().Snapshot())})
	g.readPump(sub)
}

func (g *Gateway) readPump(sub *subscriber) {
	defer func() {
		g.mu.Lock()
		delete(g.subscribers, sub.id)
		g.mu.Unlock()
		sub.conn.Close()
	}()
	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sub.send(serverMessage{Type: "reject", Seq: 0, Reason: "malformed_message"})
			continue
		}
		cmd, err := msg.command()
		if err != nil {
			sub.send(serverMessage{Type: "reject", Seq: msg.Seq, Reason: "unknown_command", Message: err.Error()})
			continue
		}
		if ok, reason := g.loop.Enqueue(sub.id, msg.Seq, cmd); !ok {
			sub.send(serverMessage{Type: "reject", Seq: msg.Seq, Reason: reason, Retry: true})
		}
	}
}

// Broadcast pushes one tick's output: every subscriber receives the state
// message, and command outcomes route back to their issuing connection. It
// is safe to call from the loop goroutine; writes never block the loop
// beyond the per-connection deadline.
func (g *Gateway) Broadcast(result battle.StepResult) {
	g.mu.Lock()
	subs := make([]*subscriber, 0, len(g.subscribers))
	for _, sub := range g.subscribers {
		subs = append(subs, sub)
	}
	g.mu.Unlock()

	state := serverMessage{
		Type:     "state",
		Tick:     result.Tick,
		Snapshot: snapshotPtr(result.Snapshot),
		Events:   result.Events,
	}
	for _, sub := range subs {
		sub.send(state)
	}
	for _, outcome := range result.Outcomes {
		sub := g.subscriber(outcome.OriginID)
		if sub == nil {
			continue
		}
		if outcome.Result.Accepted {
			sub.send(serverMessage{Type: "ack", Seq: outcome.Seq, Tick: result.Tick})
		} else {
			sub.send(serverMessage{
				Type:    "reject",
				Seq:     outcome.Seq,
				Tick:    result.Tick,
				Reason:  outcome.Result.Reason,
				Message: outcome.Result.Message,
			})
		}
	}
}

func (g *Gateway) subscriber(id string) *subscriber {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.subscribers[id]
}

func (s *subscriber) send(msg serverMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.conn.Close()
	}
}

func snapshotPtr(snapshot battle.Snapshot) *battle.Snapshot {
	return &snapshot
}

func writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		httpError(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func httpError(w nethttp.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
