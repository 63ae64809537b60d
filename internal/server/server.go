// Package server exposes chess controllers to a browser board over HTTP
// and websockets. Every session is a single local board; there is no
// matchmaking and no remote opponent.
package server

import (
	"bytes"
	"errors"
	"image/color"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"github.com/mway1/chess"
	"github.com/mway1/chess/image"
)

// Config configures the HTTP application.
type Config struct {
	// DefaultPreset is used for sessions created without a preset.
	DefaultPreset string
	// Logging enables the request logger middleware.
	Logging bool
}

type handler struct {
	store  *Store
	config Config
}

// New returns the fiber application serving the sessions of store.
func New(store *Store, config Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "chessboard",
		ErrorHandler: fiberErrorHandler,
	})
	if config.Logging {
		app.Use(logger.New())
	}

	h := &handler{store: store, config: config}

	app.Get("/ws/sessions/:id", h.upgradeWebSocket, websocket.New(h.stream))

	api := app.Group("/api")
	api.Get("/presets", h.listPresets)

	sessions := api.Group("/sessions")
	sessions.Post("/", h.createSession)
	sessions.Get("/:id", h.getSession)
	sessions.Delete("/:id", h.deleteSession)
	sessions.Post("/:id/click", h.click)
	sessions.Post("/:id/move", h.move)
	sessions.Post("/:id/promote", h.promote)
	sessions.Post("/:id/cancel-promotion", h.cancelPromotion)
	sessions.Post("/:id/back", h.back)
	sessions.Post("/:id/forward", h.forward)
	sessions.Post("/:id/reset", h.reset)
	sessions.Post("/:id/preset/:name", h.applyPreset)
	sessions.Get("/:id/fen", h.fen)
	sessions.Get("/:id/pgn", h.pgn)
	sessions.Get("/:id/diagram.svg", h.diagram)

	return app
}

// CreateSessionRequest is the optional body of POST /api/sessions.
type CreateSessionRequest struct {
	Preset string `json:"preset"`
}

func (h *handler) listPresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"presets": chess.Presets()})
}

func (h *handler) createSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorResponse(c, &chess.ParseError{Message: "invalid request body", Err: err})
		}
	}
	if req.Preset == "" {
		req.Preset = h.config.DefaultPreset
	}
	session, err := h.store.Create(req.Preset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session.View())
}

func (h *handler) getSession(c *fiber.Ctx) error {
	session, err := h.store.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(session.View())
}

func (h *handler) deleteSession(c *fiber.Ctx) error {
	if !h.store.Delete(c.Params("id")) {
		return errorResponse(c, errSessionNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// update runs f on the session named in the route and answers with the
// new view.
func (h *handler) update(c *fiber.Ctx, f func(ctrl *chess.Controller) error) error {
	session, err := h.store.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	view, err := session.Do(f)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (h *handler) click(c *fiber.Ctx) error {
	var req ClickRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, &chess.ParseError{Message: "invalid request body", Err: err})
	}
	p, err := chess.ParsePosition(req.Square)
	if err != nil {
		return errorResponse(c, &chess.ParseError{Message: "invalid square", Token: req.Square, Err: err})
	}
	return h.update(c, func(ctrl *chess.Controller) error {
		return ctrl.OnClick(p)
	})
}

func (h *handler) move(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, &chess.ParseError{Message: "invalid request body", Err: err})
	}
	intention, err := req.intention()
	if err != nil {
		return errorResponse(c, &chess.ParseError{Message: "invalid move", Err: err})
	}
	return h.update(c, func(ctrl *chess.Controller) error {
		_, err := ctrl.ApplyIntention(intention)
		return err
	})
}

func (h *handler) promote(c *fiber.Ctx) error {
	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, &chess.ParseError{Message: "invalid request body", Err: err})
	}
	kind, err := req.kind()
	if err != nil {
		return errorResponse(c, err)
	}
	return h.update(c, func(ctrl *chess.Controller) error {
		_, err := ctrl.Promote(kind)
		return err
	})
}

func (h *handler) cancelPromotion(c *fiber.Ctx) error {
	return h.update(c, func(ctrl *chess.Controller) error {
		ctrl.CancelPromotion()
		return nil
	})
}

func (h *handler) back(c *fiber.Ctx) error {
	return h.update(c, func(ctrl *chess.Controller) error {
		ctrl.StepBackward()
		return nil
	})
}

func (h *handler) forward(c *fiber.Ctx) error {
	return h.update(c, func(ctrl *chess.Controller) error {
		ctrl.StepForward()
		return nil
	})
}

// reset restarts the session from the standard position, or from the FEN
// given in the "fen" query parameter.
func (h *handler) reset(c *fiber.Ctx) error {
	var preset chess.Preset = chess.StandardPreset{}
	if fen := c.Query("fen"); fen != "" {
		preset = chess.FENPreset{FEN: fen}
	}
	return h.update(c, func(ctrl *chess.Controller) error {
		return ctrl.ApplyPreset(preset)
	})
}

func (h *handler) applyPreset(c *fiber.Ctx) error {
	preset, err := chess.PresetByName(c.Params("name"))
	if err != nil {
		return errorResponse(c, err)
	}
	return h.update(c, func(ctrl *chess.Controller) error {
		return ctrl.ApplyPreset(preset)
	})
}

// export answers with the current state in the given converter's format.
func (h *handler) export(c *fiber.Ctx, converter chess.Converter) error {
	session, err := h.store.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	var text string
	err = session.Read(func(ctrl *chess.Controller) error {
		var err error
		text, err = converter.Export(ctrl.CurrentState())
		return err
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.SendString(text)
}

func (h *handler) fen(c *fiber.Ctx) error {
	return h.export(c, chess.FENConverter{})
}

// pgn answers with the whole game history unless "state=current" asks for
// the line leading to the current state only.
func (h *handler) pgn(c *fiber.Ctx) error {
	if c.Query("state") == "current" {
		return h.export(c, chess.PGNConverter{})
	}
	session, err := h.store.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	var text []byte
	err = session.Read(func(ctrl *chess.Controller) error {
		var err error
		text, err = ctrl.Game().MarshalText()
		return err
	})
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/x-chess-pgn")
	return c.Send(text)
}

var lastMoveColor = color.RGBA{R: 205, G: 210, B: 106, A: 255}

func (h *handler) diagram(c *fiber.Ctx) error {
	session, err := h.store.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	perspective := chess.White
	if c.Query("perspective") == "black" {
		perspective = chess.Black
	}

	var buf bytes.Buffer
	err = session.Read(func(ctrl *chess.Controller) error {
		options := []func(*image.Encoder){
			image.MarkLastMove(lastMoveColor),
			image.Perspective(perspective),
		}
		if sel := ctrl.UiState().Selected; sel.IsValid() {
			options = append(options, image.MarkSquares(lastMoveColor, sel))
		}
		return image.SVG(&buf, ctrl.CurrentState(), options...)
	})
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var illegal *chess.IllegalMoveError
	var parse *chess.ParseError
	switch {
	case errors.Is(err, errSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, chess.ErrGameOver),
		errors.Is(err, chess.ErrPromotionRequired),
		errors.Is(err, chess.ErrNoPendingPromotion):
		return fiber.StatusConflict
	case errors.As(err, &illegal),
		errors.As(err, &parse),
		errors.Is(err, chess.ErrUnknownPreset):
		return fiber.StatusBadRequest
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func fiberErrorHandler(c *fiber.Ctx, err error) error {
	return errorResponse(c, err)
}
