package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"factcheck-quiz-service/internal/app"
	"factcheck-quiz-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		// The session cookie authenticates the socket, so only same-origin pages may
		// upgrade; the upgrader's default origin check enforces that.
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs the quiz of the caller's session over a websocket: the current question
// is pushed on connect and after every answer until the quiz is finished.
func (h *WSHandler) ServeWS(c *gin.Context) {
	id := sessionID(c)
	ctx := c.Request.Context()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if !h.sendState(ctx, conn, id) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Option == "" {
				if !write(conn, "error", errorPayload{Message: "invalid answer payload"}) {
					return
				}
				continue
			}
			res, err := h.service.Answer(ctx, id, payload.Option)
			if err != nil {
				if !write(conn, "error", errorPayload{Message: err.Error()}) {
					return
				}
				continue
			}
			if !write(conn, "answerResult", res) {
				return
			}
			if !h.sendState(ctx, conn, id) {
				return
			}
		default:
			if !write(conn, "error", errorPayload{Message: "unsupported message type"}) {
				return
			}
		}
	}
}

// sendState pushes the next question, or the summary once the quiz is done.
// It reports false when the connection should be closed.
func (h *WSHandler) sendState(ctx context.Context, conn *websocket.Conn, id string) bool {
	view, err := h.service.CurrentQuestion(ctx, id)
	switch {
	case err == nil:
		return write(conn, "question", view)
	case errors.Is(err, domain.ErrQuizFinished):
		summary, err := h.service.Summary(ctx, id)
		if err != nil {
			return write(conn, "error", errorPayload{Message: err.Error()})
		}
		return write(conn, "finished", summary)
	default:
		write(conn, "error", errorPayload{Message: err.Error()})
		return !errors.Is(err, domain.ErrNoAnalysis) && !errors.Is(err, domain.ErrNoQuiz)
	}
}

func write[T any](conn *websocket.Conn, typ string, payload T) bool {
	if err := conn.WriteJSON(outboundMessage[T]{Type: typ, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
		return false
	}
	return true
}
