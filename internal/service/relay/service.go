package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/syncwatch/server/internal/metrics"
	"github.com/syncwatch/server/internal/repository/connection"
	"github.com/syncwatch/server/pkg/wsrouter"
)

type iConnectionRepo interface {
	Add(conn *websocket.Conn, peerID string) error
	RemoveByConn(conn *websocket.Conn) (string, error)
	RemoveByPeerID(peerID string) error
	GetPeerID(conn *websocket.Conn) (string, error)
	PeersExcept(peerID string) []*connection.Peer
	Len() int
}

// Service is the playback-event fan-out. It owns peer registration and
// relays each inbound event to every registered peer except its sender.
// It interprets nothing: payloads pass through untouched.
type Service struct {
	connRepo iConnectionRepo
	logger   *slog.Logger
}

func NewService(connRepo iConnectionRepo, logger *slog.Logger) *Service {
	return &Service{
		connRepo: connRepo,
		logger:   logger,
	}
}

// Connect registers conn as a new peer and returns its connection id.
func (s *Service) Connect(ctx context.Context, conn *websocket.Conn) (string, error) {
	peerID := uuid.NewString()
	if err := s.connRepo.Add(conn, peerID); err != nil {
		return "", fmt.Errorf("failed to add connection: %w", err)
	}

	metrics.PeersConnected.Inc()
	s.logger.InfoContext(ctx, "peer connected", "peer_id", peerID, "peers", s.connRepo.Len())

	return peerID, nil
}

// Disconnect unregisters conn. Idempotent: a conn that was never registered
// or was already removed after a failed delivery is not an error.
func (s *Service) Disconnect(ctx context.Context, conn *websocket.Conn) {
	peerID, err := s.connRepo.RemoveByConn(conn)
	if err != nil {
		return
	}

	metrics.PeersConnected.Dec()
	s.logger.InfoContext(ctx, "peer disconnected", "peer_id", peerID, "peers", s.connRepo.Len())
}

// BroadcastExcept delivers a {type, payload} frame to every peer other than
// the sender, best-effort. A peer whose write fails is dropped from the
// registry so later broadcasts never target it. Broadcasting to an empty
// peer set is a no-op.
func (s *Service) BroadcastExcept(ctx context.Context, senderConn *websocket.Conn, eventType string, payload json.RawMessage) error {
	senderID, err := s.connRepo.GetPeerID(senderConn)
	if err != nil {
		return fmt.Errorf("failed to get sender peer id: %w", err)
	}

	data, err := json.Marshal(wsrouter.Message{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	for _, peer := range s.connRepo.PeersExcept(senderID) {
		if err := peer.WriteMessage(data); err != nil {
			s.logger.InfoContext(ctx, "failed to deliver event, dropping peer",
				"peer_id", peer.ID,
				"type", eventType,
				"error", err,
			)
			metrics.RelayErrors.WithLabelValues(eventType).Inc()
			if err := s.connRepo.RemoveByPeerID(peer.ID); err == nil {
				metrics.PeersConnected.Dec()
			}
			peer.Close()
		}
	}

	metrics.EventsRelayed.WithLabelValues(eventType).Inc()

	return nil
}
