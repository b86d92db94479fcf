package v1alpha1_test

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/onemillion/internal/orchestrators/game/mock"
	"github.com/KirkDiggler/onemillion/internal/presentation/board"
	"github.com/KirkDiggler/onemillion/internal/presentation/render"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *gamemock.MockService
	board       *board.Board
	router      *gin.Engine
	state       *battle.GameState
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.ctrl = gomock.NewController(s.T())
	s.mockService = gamemock.NewMockService(s.ctrl)
	s.board = board.New()
	s.state = battle.NewGameState("game_1", battle.DifficultyDefault)

	renderer, err := render.New(&render.Config{})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		GameService: s.mockService,
		Views:       s.board,
		Renderer:    renderer,
	})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *HandlerTestSuite) TestNewHandler() {
	_, err := v1alpha1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "validation failed")
}

func (s *HandlerTestSuite) TestStartGame() {
	s.mockService.EXPECT().
		StartGame(gomock.Any(), &game.StartGameInput{Difficulty: "impossible"}).
		Return(&game.StartGameOutput{Game: s.state}, nil)
	s.board.ShowBossHP(context.Background(), "game_1", 1000000)

	rec := s.do(http.MethodPost, "/v1alpha1/games", `{"difficulty":"impossible"}`)
	s.Equal(http.StatusCreated, rec.Code)

	var resp v1alpha1.GameResponse
	s.decode(rec, &resp)
	s.Equal("game_1", resp.Game.ID)
	s.Equal(battle.SlotHero, resp.Game.Turn)
	s.Require().NotNil(resp.View)
	s.Equal(1000000, resp.View.BossHP)
}

func (s *HandlerTestSuite) TestStartGameWithoutBody() {
	s.mockService.EXPECT().
		StartGame(gomock.Any(), &game.StartGameInput{}).
		Return(&game.StartGameOutput{Game: s.state}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/games", "")
	s.Equal(http.StatusCreated, rec.Code)

	var resp v1alpha1.GameResponse
	s.decode(rec, &resp)
	s.Nil(resp.View)
}

func (s *HandlerTestSuite) TestAttack() {
	s.mockService.EXPECT().
		Attack(gomock.Any(), &game.AttackInput{GameID: "game_1", Slot: battle.SlotKnight}).
		Return(&game.AttackOutput{Game: s.state, Damage: 42, NewRecord: true}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/attack", `{"slot":"knight"}`)
	s.Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.AttackResponse
	s.decode(rec, &resp)
	s.Equal(42, resp.Damage)
	s.True(resp.NewRecord)
	s.False(resp.BossDefeated)
	s.Equal("game_1", resp.Game.ID)
}

func (s *HandlerTestSuite) TestAttackBadSlot() {
	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/attack", `{"slot":"dragon"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp v1alpha1.ErrorResponse
	s.decode(rec, &resp)
	s.Equal(errors.CodeInvalidArgument, resp.Code)
	s.Contains(resp.Message, "unknown slot")

	rec = s.do(http.MethodPost, "/v1alpha1/games/game_1/defend", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestDefend() {
	s.mockService.EXPECT().
		Defend(gomock.Any(), &game.DefendInput{GameID: "game_1", Slot: battle.SlotMage}).
		Return(&game.DefendOutput{Game: s.state}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/defend", `{"slot":"Mage"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestUpgrade() {
	s.mockService.EXPECT().
		Upgrade(gomock.Any(), &game.UpgradeInput{GameID: "game_1", Target: battle.SlotHero}).
		Return(&game.UpgradeOutput{Game: s.state, Multiplier: 1.1}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/upgrade", `{"target":"hero"}`)
	s.Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.UpgradeResponse
	s.decode(rec, &resp)
	s.Equal(1.1, resp.Multiplier)
}

func (s *HandlerTestSuite) TestAdvance() {
	action := &game.BossAction{
		Kind:      game.BossHitOne,
		RawDamage: 50,
		Hits:      []game.Hit{{Slot: battle.SlotScholar, Damage: 50}},
	}
	s.mockService.EXPECT().
		Advance(gomock.Any(), &game.AdvanceInput{GameID: "game_1"}).
		Return(&game.AdvanceOutput{Game: s.state, Step: game.StepBossTurn, BossAction: action}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/advance", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"slot":"scholar"`)

	var resp v1alpha1.AdvanceResponse
	s.decode(rec, &resp)
	s.Equal(game.StepBossTurn, resp.Step)
	s.Equal(action, resp.BossAction)
}

func (s *HandlerTestSuite) TestGetAndReset() {
	s.mockService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{GameID: "game_1"}).
		Return(&game.GetGameOutput{Game: s.state}, nil)
	s.mockService.EXPECT().
		ResetGame(gomock.Any(), &game.ResetGameInput{GameID: "game_1"}).
		Return(&game.ResetGameOutput{Game: s.state}, nil)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/v1alpha1/games/game_1", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/v1alpha1/games/game_1", "").Code)
}

func (s *HandlerTestSuite) TestEndGame() {
	s.mockService.EXPECT().
		EndGame(gomock.Any(), &game.EndGameInput{GameID: "game_1"}).
		Return(&game.EndGameOutput{Game: s.state}, nil)
	s.mockService.EXPECT().
		EndGame(gomock.Any(), &game.EndGameInput{GameID: "game_1"}).
		Return(nil, errors.NotFound("game not found"))

	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/end", "")
	s.Equal(http.StatusOK, rec.Code)
	var resp v1alpha1.GameResponse
	s.decode(rec, &resp)
	s.Equal("game_1", resp.Game.ID)
	s.Nil(resp.View)

	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/v1alpha1/games/game_1/end", "").Code)
}

func (s *HandlerTestSuite) TestGetBoardImage() {
	s.mockService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{GameID: "game_1"}).
		Return(&game.GetGameOutput{Game: s.state}, nil)

	rec := s.do(http.MethodGet, "/v1alpha1/games/game_1/board.png", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	s.Require().NoError(err)
	s.Equal(render.DefaultWidth, img.Bounds().Dx())
}

func (s *HandlerTestSuite) TestGetBoardImageUnknownGame() {
	s.mockService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{GameID: "nope"}).
		Return(nil, errors.NotFound("game not found"))

	rec := s.do(http.MethodGet, "/v1alpha1/games/nope/board.png", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) dialStream(gameID string) (*websocket.Conn, *http.Response, func(), error) {
	srv := httptest.NewServer(s.router)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1alpha1/games/" + gameID + "/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, resp, srv.Close, err
}

func (s *HandlerTestSuite) TestStreamBoard() {
	s.mockService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{GameID: "game_1"}).
		Return(&game.GetGameOutput{Game: s.state}, nil)
	s.board.ShowBossHP(context.Background(), "game_1", 999)

	conn, _, closeServer, err := s.dialStream("game_1")
	s.Require().NoError(err)
	defer closeServer()
	defer func() { _ = conn.Close() }()
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	var view board.View
	s.Require().NoError(conn.ReadJSON(&view))
	s.Equal("game_1", view.GameID)
	s.Equal(999, view.BossHP)

	s.board.ShowBossHP(context.Background(), "game_1", 123)
	s.Require().NoError(conn.ReadJSON(&view))
	s.Equal(123, view.BossHP)
}

func (s *HandlerTestSuite) TestStreamBoardClosesWhenGameEnds() {
	s.mockService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{GameID: "game_1"}).
		Return(&game.GetGameOutput{Game: s.state}, nil)
	s.board.ShowBossHP(context.Background(), "game_1", 999)

	conn, _, closeServer, err := s.dialStream("game_1")
	s.Require().NoError(err)
	defer closeServer()
	defer func() { _ = conn.Close() }()
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	var view board.View
	s.Require().NoError(conn.ReadJSON(&view))

	s.board.ClearGame(context.Background(), "game_1")
	err = conn.ReadJSON(&view)
	s.True(websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}

func (s *HandlerTestSuite) TestStreamBoardUnknownGame() {
	s.mockService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{GameID: "nope"}).
		Return(nil, errors.NotFound("game not found"))

	_, resp, closeServer, err := s.dialStream("nope")
	defer closeServer()
	s.Require().ErrorIs(err, websocket.ErrBadHandshake)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestLoadImage() {
	s.mockService.EXPECT().
		LoadImage(gomock.Any(), &game.LoadImageInput{GameID: "game_1"}).
		Return(&game.LoadImageOutput{
			Image:    game.DefaultFallbackImage,
			Fallback: true,
			Status:   "ERROR: HTTP error! status: 500. Using default image.",
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/image", "")
	s.Equal(http.StatusOK, rec.Code)

	var resp v1alpha1.ImageResponse
	s.decode(rec, &resp)
	s.True(resp.Fallback)
	s.Equal(imagefeed.Image{URL: "imgs/dragon.png", Alt: "Default image of a dragon"}, resp.Image)
}

func (s *HandlerTestSuite) TestGetHighScore() {
	s.mockService.EXPECT().
		GetHighScore(gomock.Any(), &game.GetHighScoreInput{}).
		Return(&game.GetHighScoreOutput{Value: 57}, nil)

	rec := s.do(http.MethodGet, "/v1alpha1/high-score", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"value":57}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestErrorMapping() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   errors.Code
	}{
		{"not found", errors.NotFound("game not found"), http.StatusNotFound, errors.CodeNotFound},
		{"out of turn", errors.FailedPrecondition("it is not the Hero's turn"), http.StatusConflict, errors.CodeFailedPrecondition},
		{"invalid", errors.InvalidArgument("unknown difficulty"), http.StatusBadRequest, errors.CodeInvalidArgument},
		{"unavailable", errors.Unavailable("store down"), http.StatusServiceUnavailable, errors.CodeUnavailable},
		{"plain", context.DeadlineExceeded, http.StatusInternalServerError, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().
				Advance(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			rec := s.do(http.MethodPost, "/v1alpha1/games/game_1/advance", "")
			s.Equal(tc.status, rec.Code)

			var resp v1alpha1.ErrorResponse
			s.decode(rec, &resp)
			s.Equal(tc.code, resp.Code)
			s.Equal(errors.GetMessage(tc.err), resp.Message)
		})
	}
}
