package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	messageQuery    = "query"
	messageResponse = "response"
	messageError    = "error"
)

type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Data    any    `json:"data,omitempty"`
}

type responseData struct {
	SourceDocuments []string `json:"source_documents"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(s.config.AllowedOrigins, r.Header.Get("Origin"))
		},
	}
}

// handleWebSocket answers query messages in the order they arrive.
func (s *Server) handleWebSocket(c *gin.Context) {
	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendMessage(conn, Message{Type: messageError, Content: "Invalid message format"})
			continue
		}
		if msg.Type != messageQuery {
			s.sendMessage(conn, Message{Type: messageError, Content: "Unsupported message type: " + msg.Type})
			continue
		}

		result, err := s.pipeline.ProcessQuery(ctx, msg.Content)
		if err != nil {
			s.sendMessage(conn, Message{Type: messageError, Content: err.Error()})
			continue
		}

		s.sendMessage(conn, Message{
			Type:    messageResponse,
			Content: result.Answer,
			Data:    responseData{SourceDocuments: result.SourceDocuments},
		})
	}
}

func (s *Server) sendMessage(conn *websocket.Conn, msg Message) {
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("failed to send websocket message", "type", msg.Type, "error", err)
	}
}
