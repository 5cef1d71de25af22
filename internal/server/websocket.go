// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}

	return fiber.ErrUpgradeRequired
}

// handleStream transcribes every binary message as a complete audio file
// and answers each with one JSON message. The container is picked with the
// format query parameter, wav by default.
func (s *Server) handleStream() fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		defer ws.Close()

		format := strings.ToLower(strings.TrimPrefix(ws.Query("format", "wav"), "."))
		connID, _ := ws.Locals(requestIDKey).(string)

		s.logger.Debug("websocket connected", "request_id", connID, "format", format)

		for {
			mt, msg, err := ws.ReadMessage()
			if err != nil {
				s.logger.Debug("websocket closed", "request_id", connID, "error", err)
				return
			}

			reply := s.transcribeMessage(mt, msg, format)
			if err := ws.WriteJSON(reply); err != nil {
				s.logger.Warn("websocket write failed", "request_id", connID, "error", err)
				return
			}
		}
	})
}

func (s *Server) transcribeMessage(messageType int, msg []byte, format string) transcribeResponse {
	id := uuid.NewString()

	if messageType != websocket.BinaryMessage {
		return transcribeResponse{ID: id, Error: "expected a binary message holding an audio file"}
	}

	res := s.tr.TranscribeReader("stream."+format, bytes.NewReader(msg))
	if res.Err != nil {
		return transcribeResponse{ID: id, Error: res.String()}
	}

	return transcribeResponse{ID: id, Text: res.Text}
}
