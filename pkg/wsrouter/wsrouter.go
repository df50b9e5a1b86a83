package wsrouter

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

// Message is the framing for every websocket exchange: a type tag and an
// opaque payload interpreted by the registered handler.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type HandlerFunc func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error

type WSRouter struct {
	routes   map[string]HandlerFunc
	notFound HandlerFunc
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc)}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

// NotFound sets the handler invoked for message types with no registered route.
func (r *WSRouter) NotFound(handler HandlerFunc) {
	r.notFound = handler
}

// ServeConn reads messages from conn until the connection fails and routes
// each one to its handler. Handler errors do not terminate the loop; only a
// read error (transport close included) does.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			handler = r.notFound
		}
		if handler == nil {
			continue
		}

		ctx := context.WithValue(ctx, messageTypeKey, msg.Type)
		handler(ctx, conn, msg.Payload)
	}
}
