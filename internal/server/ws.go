package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/mway1/chess"
)

// MessageType represents the different kinds of messages on a session
// stream.
type MessageType string

const (
	MessageTypeView    MessageType = "view"
	MessageTypeClick   MessageType = "click"
	MessageTypeMove    MessageType = "move"
	MessageTypePromote MessageType = "promote"
	MessageTypeBack    MessageType = "back"
	MessageTypeForward MessageType = "forward"
	MessageTypeError   MessageType = "error"
)

// Message is the envelope of every websocket message.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// ClickRequest is the payload of a click.
type ClickRequest struct {
	Square string `json:"square"`
}

// MoveRequest is the payload of a move. Promotion is a piece letter and
// may be empty.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// PromoteRequest is the payload of a promotion choice.
type PromoteRequest struct {
	Piece string `json:"piece"`
}

func (r MoveRequest) intention() (chess.MoveIntention, error) {
	return chess.ParseMoveIntention(r.From + r.To + r.Promotion)
}

func (r PromoteRequest) kind() (chess.Kind, error) {
	kind := chess.KindFromLetter(r.Piece)
	switch kind {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return kind, nil
	}
	return chess.NoKind, &chess.ParseError{Message: "invalid promotion piece", Token: r.Piece}
}

// upgradeWebSocket rejects plain HTTP requests and unknown sessions
// before the upgrade.
func (h *handler) upgradeWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := h.store.Get(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.Next()
}

// stream pushes the session view after every change and applies the
// commands the browser sends.
func (h *handler) stream(conn *websocket.Conn) {
	session, err := h.store.Get(conn.Params("id"))
	if err != nil {
		conn.Close()
		return
	}

	if err := session.subscribe(conn); err != nil {
		return
	}
	defer session.unsubscribe(conn)

	for {
		messageType, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("session %s: read: %v", session.ID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			session.sendError(conn, err)
			continue
		}
		if _, err := session.Do(func(c *chess.Controller) error {
			return handleMessage(c, msg)
		}); err != nil {
			session.sendError(conn, err)
		}
	}
}

func handleMessage(c *chess.Controller, msg Message) error {
	switch msg.Type {
	case MessageTypeClick:
		var req ClickRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		p, err := chess.ParsePosition(req.Square)
		if err != nil {
			return err
		}
		return c.OnClick(p)

	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		intention, err := req.intention()
		if err != nil {
			return err
		}
		_, err = c.ApplyIntention(intention)
		return err

	case MessageTypePromote:
		var req PromoteRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		kind, err := req.kind()
		if err != nil {
			return err
		}
		_, err = c.Promote(kind)
		return err

	case MessageTypeBack:
		c.StepBackward()
		return nil

	case MessageTypeForward:
		c.StepForward()
		return nil
	}
	return fmt.Errorf("unknown message type: %s", msg.Type)
}

// sendError writes an error message to one subscriber.
func (s *Session) sendError(conn *websocket.Conn, err error) {
	msg, encodeErr := newMessage(MessageTypeError, fiber.Map{"error": err.Error()})
	if encodeErr != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("session %s: write: %v", s.ID, err)
	}
}
