package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/syncwatch/server/internal/repository/connection"
)

type repo struct {
	connList map[*websocket.Conn]*connection.Peer
	idList   map[string]*connection.Peer
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		connList: make(map[*websocket.Conn]*connection.Peer),
		idList:   make(map[string]*connection.Peer),
	}
}

func (r *repo) Add(conn *websocket.Conn, peerID string) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName, "peerID", peerID)
	if r.connList[conn] != nil || r.idList[peerID] != nil {
		slog.Info(funcName, "error", connection.ErrAlreadyExists)
		return connection.ErrAlreadyExists
	}

	peer := connection.NewPeer(peerID, conn)
	r.connList[conn] = peer
	r.idList[peerID] = peer

	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) (string, error) {
	funcName := "connection.inmemory.RemoveByConn"
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.connList[conn]
	if !ok {
		slog.Debug(funcName, "error", connection.ErrNotFound)
		return "", connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, peer.ID)

	slog.Debug(funcName, "result", peer.ID)
	return peer.ID, nil
}

func (r *repo) RemoveByPeerID(peerID string) error {
	funcName := "connection.inmemory.RemoveByPeerID"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName, "peerID", peerID)
	peer, ok := r.idList[peerID]
	if !ok {
		slog.Debug(funcName, "error", connection.ErrNotFound)
		return connection.ErrNotFound
	}

	delete(r.idList, peerID)
	delete(r.connList, peer.Conn())

	return nil
}

func (r *repo) GetPeerID(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peer, ok := r.connList[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return peer.ID, nil
}

// PeersExcept returns a snapshot of every registered peer other than peerID,
// safe to iterate without holding the registry lock.
func (r *repo) PeersExcept(peerID string) []*connection.Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers := make([]*connection.Peer, 0, len(r.idList))
	for id, peer := range r.idList {
		if id == peerID {
			continue
		}
		peers = append(peers, peer)
	}

	return peers
}

func (r *repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.connList)
}
