// Package v1alpha1 serves the game over HTTP with gin
package v1alpha1

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
	"github.com/KirkDiggler/onemillion/internal/presentation/board"
)

// ViewSource returns what the presenter last showed for a game and signals
// when it changes
type ViewSource interface {
	View(gameID string) (board.View, bool)
	Watch(gameID string) (<-chan struct{}, func())
}

// streamWriteWait bounds each websocket write
const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// BoardRenderer draws a view as a PNG
type BoardRenderer interface {
	EncodePNG(w io.Writer, view board.View) error
}

// HandlerConfig holds dependencies for the battle handler
type HandlerConfig struct {
	GameService game.Service
	Views       ViewSource
	Renderer    BoardRenderer
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.GameService == nil {
		vb.RequiredField("GameService")
	}
	if c.Views == nil {
		vb.RequiredField("Views")
	}
	if c.Renderer == nil {
		vb.RequiredField("Renderer")
	}
	return vb.Build()
}

// Handler maps HTTP requests onto the game service
type Handler struct {
	gameService game.Service
	views       ViewSource
	renderer    BoardRenderer
}

// NewHandler creates a new battle handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		gameService: cfg.GameService,
		views:       cfg.Views,
		renderer:    cfg.Renderer,
	}, nil
}

// RegisterRoutes mounts the handler under /v1alpha1
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/v1alpha1")
	v1.POST("/games", h.StartGame)
	v1.GET("/games/:id", h.GetGame)
	v1.GET("/games/:id/board.png", h.GetBoardImage)
	v1.GET("/games/:id/stream", h.StreamBoard)
	v1.DELETE("/games/:id", h.ResetGame)
	v1.POST("/games/:id/attack", h.Attack)
	v1.POST("/games/:id/defend", h.Defend)
	v1.POST("/games/:id/upgrade", h.Upgrade)
	v1.POST("/games/:id/advance", h.Advance)
	v1.POST("/games/:id/image", h.LoadImage)
	v1.POST("/games/:id/end", h.EndGame)
	v1.GET("/high-score", h.GetHighScore)
}

// StartGameRequest selects the difficulty; the body is optional
type StartGameRequest struct {
	Difficulty string `json:"difficulty"`
}

// ActionRequest names the acting party slot
type ActionRequest struct {
	Slot string `json:"slot" binding:"required"`
}

// UpgradeRequest names the party member to level up
type UpgradeRequest struct {
	Target string `json:"target" binding:"required"`
}

// GameResponse is returned by every game route
type GameResponse struct {
	Game *battle.GameState `json:"game"`
	View *board.View       `json:"view,omitempty"`
}

// AttackResponse reports the result of an attack
type AttackResponse struct {
	GameResponse
	Damage       int  `json:"damage"`
	Healed       bool `json:"healed"`
	NewRecord    bool `json:"new_record"`
	BossDefeated bool `json:"boss_defeated"`
}

// UpgradeResponse reports the multiplier after the upgrade
type UpgradeResponse struct {
	GameResponse
	Multiplier float64 `json:"multiplier"`
}

// AdvanceResponse reports the step that ran
type AdvanceResponse struct {
	GameResponse
	Step       game.Step        `json:"step"`
	BossAction *game.BossAction `json:"boss_action,omitempty"`
}

// ImageResponse reports the image now shown
type ImageResponse struct {
	Image    imagefeed.Image `json:"image"`
	Fallback bool            `json:"fallback"`
	Status   string          `json:"status,omitempty"`
}

// HighScoreResponse carries the last winning max hit
type HighScoreResponse struct {
	Value int `json:"value"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StartGame handles POST /v1alpha1/games
func (h *Handler) StartGame(c *gin.Context) {
	var req StartGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
			return
		}
	}

	out, err := h.gameService.StartGame(c.Request.Context(), &game.StartGameInput{Difficulty: req.Difficulty})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.gameResponse(out.Game))
}

// GetGame handles GET /v1alpha1/games/:id
func (h *Handler) GetGame(c *gin.Context) {
	out, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.gameResponse(out.Game))
}

// GetBoardImage handles GET /v1alpha1/games/:id/board.png
func (h *Handler) GetBoardImage(c *gin.Context) {
	out, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	view := h.viewFor(out.Game)

	var buf bytes.Buffer
	if err := h.renderer.EncodePNG(&buf, view); err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// StreamBoard handles GET /v1alpha1/games/:id/stream. After the upgrade the
// current view is sent, then the view again after every change, until the
// client disconnects.
func (h *Handler) StreamBoard(c *gin.Context) {
	out, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	gameID := out.Game.ID

	changes, stop := h.views.Watch(gameID)
	defer stop()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("Board stream upgrade failed", "game_id", gameID, "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := writeView(conn, h.viewFor(out.Game)); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-changes:
			view, ok := h.views.View(gameID)
			if !ok {
				// the run ended
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game ended")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteWait))
				return
			}
			if err := writeView(conn, view); err != nil {
				slog.Debug("Board stream closed", "game_id", gameID, "error", err)
				return
			}
		}
	}
}

// ResetGame handles DELETE /v1alpha1/games/:id
func (h *Handler) ResetGame(c *gin.Context) {
	out, err := h.gameService.ResetGame(c.Request.Context(), &game.ResetGameInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.gameResponse(out.Game))
}

// EndGame handles POST /v1alpha1/games/:id/end
func (h *Handler) EndGame(c *gin.Context) {
	out, err := h.gameService.EndGame(c.Request.Context(), &game.EndGameInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &GameResponse{Game: out.Game})
}

// Attack handles POST /v1alpha1/games/:id/attack
func (h *Handler) Attack(c *gin.Context) {
	slot, ok := bindSlot(c)
	if !ok {
		return
	}

	out, err := h.gameService.Attack(c.Request.Context(), &game.AttackInput{
		GameID: c.Param("id"),
		Slot:   slot,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &AttackResponse{
		GameResponse: *h.gameResponse(out.Game),
		Damage:       out.Damage,
		Healed:       out.Healed,
		NewRecord:    out.NewRecord,
		BossDefeated: out.BossDefeated,
	})
}

// Defend handles POST /v1alpha1/games/:id/defend
func (h *Handler) Defend(c *gin.Context) {
	slot, ok := bindSlot(c)
	if !ok {
		return
	}

	out, err := h.gameService.Defend(c.Request.Context(), &game.DefendInput{
		GameID: c.Param("id"),
		Slot:   slot,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.gameResponse(out.Game))
}

// Upgrade handles POST /v1alpha1/games/:id/upgrade
func (h *Handler) Upgrade(c *gin.Context) {
	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}
	target, err := battle.ParseSlot(req.Target)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.gameService.Upgrade(c.Request.Context(), &game.UpgradeInput{
		GameID: c.Param("id"),
		Target: target,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &UpgradeResponse{
		GameResponse: *h.gameResponse(out.Game),
		Multiplier:   out.Multiplier,
	})
}

// Advance handles POST /v1alpha1/games/:id/advance
func (h *Handler) Advance(c *gin.Context) {
	out, err := h.gameService.Advance(c.Request.Context(), &game.AdvanceInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &AdvanceResponse{
		GameResponse: *h.gameResponse(out.Game),
		Step:         out.Step,
		BossAction:   out.BossAction,
	})
}

// LoadImage handles POST /v1alpha1/games/:id/image
func (h *Handler) LoadImage(c *gin.Context) {
	out, err := h.gameService.LoadImage(c.Request.Context(), &game.LoadImageInput{GameID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &ImageResponse{
		Image:    out.Image,
		Fallback: out.Fallback,
		Status:   out.Status,
	})
}

// GetHighScore handles GET /v1alpha1/high-score
func (h *Handler) GetHighScore(c *gin.Context) {
	out, err := h.gameService.GetHighScore(c.Request.Context(), &game.GetHighScoreInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &HighScoreResponse{Value: out.Value})
}

func (h *Handler) gameResponse(state *battle.GameState) *GameResponse {
	resp := &GameResponse{Game: state}
	if state == nil {
		return resp
	}
	if view, ok := h.views.View(state.ID); ok {
		resp.View = &view
	}
	return resp
}

// viewFor returns the board view of a game, or one built from the stored
// state when nothing has been shown yet
func (h *Handler) viewFor(state *battle.GameState) board.View {
	if view, ok := h.views.View(state.ID); ok {
		return view
	}
	return board.View{
		GameID:    state.ID,
		Party:     state.Roster.Party,
		BossHP:    state.Roster.Boss.HP,
		MaxDamage: state.Session.MaxDamage,
	}
}

func writeView(conn *websocket.Conn, view board.View) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(&view)
}

func bindSlot(c *gin.Context) (battle.Slot, bool) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return 0, false
	}
	slot, err := battle.ParseSlot(req.Slot)
	if err != nil {
		writeError(c, err)
		return 0, false
	}
	return slot, true
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.JSON(code.HTTPStatus(), &ErrorResponse{
		Code:    code,
		Message: errors.GetMessage(err),
	})
}
