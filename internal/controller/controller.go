package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/syncwatch/server/pkg/validator"
	"github.com/syncwatch/server/web"
)

type iRelayService interface {
	Connect(ctx context.Context, conn *websocket.Conn) (string, error)
	Disconnect(ctx context.Context, conn *websocket.Conn)
	BroadcastExcept(ctx context.Context, senderConn *websocket.Conn, eventType string, payload json.RawMessage) error
}

type controller struct {
	relayService iRelayService
	videoHandler http.Handler
	indexTmpl    *template.Template
	upgrader     websocket.Upgrader
	validate     *validator.Validator
	logger       *slog.Logger
}

func NewController(relayService iRelayService, videoHandler http.Handler, logger *slog.Logger) (*controller, error) {
	indexTmpl, err := template.ParseFS(web.FS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	return &controller{
		relayService: relayService,
		videoHandler: videoHandler,
		indexTmpl:    indexTmpl,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}, nil
}
