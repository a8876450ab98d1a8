package net

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"InkBoard/internal/logging"
	"InkBoard/internal/state"

	"github.com/gorilla/websocket"
)

// WSPath is where the host accepts peers.
const WSPath = "/ws"

const sendBuffer = 256

var ErrHubClosed = errors.New("hub closed")

// peer is a client connected to the host. Only its writer goroutine writes
// to conn.
type peer struct {
	conn *websocket.Conn
	send chan state.Op
	addr string
}

// Hub is run by the HOST. It applies every op a peer sends and relays it to
// the other peers.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[*peer]struct{}
	closed bool

	// OnOp receives ops sent by peers. Only ops it accepts are relayed; a
	// nil OnOp relays everything.
	OnOp func(state.Op) bool
	// Snapshot returns the ops a newly connected peer needs to catch up.
	Snapshot func() []state.Op
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Peers are desktop clients, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.For("hub").Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &peer{conn: conn, send: make(chan state.Op, sendBuffer), addr: conn.RemoteAddr().String()}

	// Register before taking the snapshot so no broadcast falls between the
	// two. Ops in both arrive twice and are dropped by the receiver.
	if err := h.add(p); err != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error()))
		conn.Close()
		return
	}
	var snapshot []state.Op
	if h.Snapshot != nil {
		snapshot = h.Snapshot()
	}

	go p.writeLoop(snapshot)
	h.readLoop(p)
}

func (h *Hub) add(p *peer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	h.peers[p] = struct{}{}
	logging.For("hub").Info("peer connected", "remote", p.addr)
	return nil
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	logging.For("hub").Info("peer disconnected", "remote", p.addr)
}

func (h *Hub) readLoop(p *peer) {
	defer h.remove(p)
	for {
		var op state.Op
		if err := p.conn.ReadJSON(&op); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.For("hub").Debug("read failed", "remote", p.addr, "err", err)
			}
			return
		}
		if h.OnOp != nil && !h.OnOp(op) {
			logging.For("hub").Debug("op not relayed", "op", op.ID, "remote", p.addr)
			continue
		}
		h.relay(op, p)
	}
}

// Broadcast sends op to every peer.
func (h *Hub) Broadcast(op state.Op) {
	h.relay(op, nil)
}

// relay sends op to every peer except from. Peers that cannot keep up are
// disconnected.
func (h *Hub) relay(op state.Op, from *peer) {
	var slow []*peer
	h.mu.RLock()
	for p := range h.peers {
		if p == from {
			continue
		}
		select {
		case p.send <- op:
		default:
			slow = append(slow, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range slow {
		logging.For("hub").Warn("dropping slow peer", "remote", p.addr)
		p.conn.Close()
	}
}

func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every peer and refuses new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHubClosed
	}
	h.closed = true
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		p.conn.Close()
	}
	return nil
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(WSPath, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logging.For("hub").Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}
	logging.For("hub").Info("shutting down", "peers", h.PeerCount())
	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (p *peer) writeLoop(snapshot []state.Op) {
	defer p.conn.Close()
	for _, op := range snapshot {
		if err := p.conn.WriteJSON(op); err != nil {
			return
		}
	}
	for op := range p.send {
		if err := p.conn.WriteJSON(op); err != nil {
			return
		}
	}
	p.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Client is a CLIENT's connection to the host.
type Client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// Dial connects to a host at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	return DialURL(ctx, "ws://"+addr+WSPath)
}

func DialURL(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// LocalAddr identifies this client to the host.
func (c *Client) LocalAddr() string { return c.conn.LocalAddr().String() }

// Send writes op to the host. It is safe to call from several goroutines.
func (c *Client) Send(op state.Op) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.conn.WriteJSON(op); err != nil {
		return fmt.Errorf("send op: %w", err)
	}
	return nil
}

// Run passes every op received from the host to apply until the connection
// ends. A normal close returns nil.
func (c *Client) Run(apply func(state.Op)) error {
	for {
		var op state.Op
		if err := c.conn.ReadJSON(&op); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("receive op: %w", err)
		}
		apply(op)
	}
}

func (c *Client) Close() error {
	c.wmu.Lock()
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.wmu.Unlock()
	return c.conn.Close()
}
