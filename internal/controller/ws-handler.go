package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/syncwatch/server/pkg/wsrouter"
)

const (
	eventSeek  = "seek"
	eventPlay  = "play"
	eventPause = "pause"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// PlaybackEventInput is the payload of every playback event. Time is a
// pointer so an explicit 0 still satisfies required.
type PlaybackEventInput struct {
	Time *float64 `json:"time" validate:"required,gte=0"`
}

func (c controller) ws(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	peerID, err := c.relayService.Connect(r.Context(), conn)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to connect peer", "error", err)
		return
	}
	defer c.relayService.Disconnect(r.Context(), conn)

	ctx := ctxWithPeerID(r.Context(), peerID)

	wsmux := wsrouter.New()
	wsmux.Handle(eventSeek, c.handlePlaybackEvent)
	wsmux.Handle(eventPlay, c.handlePlaybackEvent)
	wsmux.Handle(eventPause, c.handlePlaybackEvent)
	wsmux.NotFound(c.handleUnknownEvent)

	if err := wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "websocket closed", "peer_id", peerID, "error", err)
	}
}

// handlePlaybackEvent relays a seek/play/pause event to every other peer. The
// payload is forwarded byte-for-byte; the relay interprets nothing beyond
// checking the frame is well-formed.
func (c controller) handlePlaybackEvent(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	eventType := wsrouter.GetMessageTypeFromCtx(ctx)

	var input PlaybackEventInput
	if err := json.Unmarshal(payload, &input); err != nil {
		c.logger.DebugContext(ctx, "malformed event payload", "type", eventType, "error", err)
		return err
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.DebugContext(ctx, "invalid event payload", "type", eventType, "errors", validationErrors)
		return nil
	}

	if err := c.relayService.BroadcastExcept(ctx, conn, eventType, payload); err != nil {
		c.logger.WarnContext(ctx, "failed to broadcast event", "type", eventType, "error", err)
		return err
	}

	return nil
}

func (c controller) handleUnknownEvent(ctx context.Context, conn *websocket.Conn, _ json.RawMessage) error {
	c.logger.DebugContext(ctx, "unknown event type",
		"type", wsrouter.GetMessageTypeFromCtx(ctx),
		"peer_id", peerIDFromCtx(ctx),
	)
	return nil
}
