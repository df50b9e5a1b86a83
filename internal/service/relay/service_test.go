package relay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncwatch/server/internal/repository/connection"
	"github.com/syncwatch/server/internal/repository/connection/inmemory"
)

func newTestService() *Service {
	return NewService(inmemory.NewRepo(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConnectAssignsDistinctPeerIDs(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	id1, err := service.Connect(ctx, &websocket.Conn{})
	require.NoError(t, err)
	id2, err := service.Connect(ctx, &websocket.Conn{})
	require.NoError(t, err)

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)
}

func TestConnectSameConnTwice(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	conn := &websocket.Conn{}

	_, err := service.Connect(ctx, conn)
	require.NoError(t, err)

	_, err = service.Connect(ctx, conn)
	assert.ErrorIs(t, err, connection.ErrAlreadyExists)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	conn := &websocket.Conn{}

	_, err := service.Connect(ctx, conn)
	require.NoError(t, err)

	service.Disconnect(ctx, conn)
	service.Disconnect(ctx, conn)
	service.Disconnect(ctx, &websocket.Conn{})
}

func TestBroadcastExceptNoOtherPeers(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	conn := &websocket.Conn{}

	_, err := service.Connect(ctx, conn)
	require.NoError(t, err)

	// no receivers registered, fan-out to the empty set is a no-op
	err = service.BroadcastExcept(ctx, conn, "seek", json.RawMessage(`{"time":42}`))
	assert.NoError(t, err)
}

func TestBroadcastExceptUnregisteredSender(t *testing.T) {
	service := newTestService()

	err := service.BroadcastExcept(context.Background(), &websocket.Conn{}, "seek", json.RawMessage(`{"time":42}`))
	assert.ErrorIs(t, err, connection.ErrNotFound)
}
