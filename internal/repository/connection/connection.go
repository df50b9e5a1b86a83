package connection

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	ErrAlreadyExists = errors.New("connection already exists")
	ErrNotFound      = errors.New("connection not found")
)

// Peer is one registered real-time client. Writes are serialized through the
// peer's mutex because broadcasts originate from other connections' reader
// goroutines and a websocket conn allows only one concurrent writer.
type Peer struct {
	ID   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewPeer(id string, conn *websocket.Conn) *Peer {
	return &Peer{
		ID:   id,
		conn: conn,
	}
}

func (p *Peer) Conn() *websocket.Conn {
	return p.conn
}

func (p *Peer) WriteMessage(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *Peer) WriteJSON(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.conn.WriteJSON(v)
}

func (p *Peer) Close() error {
	return p.conn.Close()
}
