package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lmcginley620/SeniorProject/internal/game"
)

// Server translates the HTTP surface into engine calls and engine error
// kinds back into status codes. The engine itself knows nothing about HTTP.
type Server struct {
	engine *game.Engine
}

func New(engine *game.Engine) *Server {
	return &Server{engine: engine}
}

// Mount registers all routes on the given router.
func (s *Server) Mount(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	games := r.Group("/games")
	games.POST("", s.createGame)
	games.POST("/:id/join", s.joinGame)
	games.GET("/:id/players", s.listPlayers)
	games.POST("/:id/lobby", s.openLobby)
	games.POST("/:id/start-trivia", s.startTrivia)
	games.GET("/:id/questions", s.currentQuestion)
	games.POST("/:id/answer", s.submitAnswer)
	games.POST("/:id/next-question", s.nextQuestion)
	games.GET("/:id/results", s.results)
	games.GET("/:id/status", s.status)
	games.GET("/:id/leaderboard", s.leaderboard)
	games.POST("/:id/end", s.endGame)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error, msg string) {
	c.JSON(statusFor(err), gin.H{"error": msg})
}

func (s *Server) createGame(c *gin.Context) {
	var req struct {
		HostID string   `json:"hostId" binding:"required"`
		Topics []string `json:"topics"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g, err := s.engine.CreateGame(c.Request.Context(), req.HostID, req.Topics)
	if err != nil {
		fail(c, err, "failed to create game")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) joinGame(c *gin.Context) {
	var req struct {
		PlayerName string `json:"playerName" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := s.engine.JoinGame(c.Request.Context(), c.Param("id"), req.PlayerName)
	if err != nil {
		fail(c, err, "unable to join game")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listPlayers(c *gin.Context) {
	g, err := s.engine.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "game not found")
		return
	}
	c.JSON(http.StatusOK, g.Players)
}

func (s *Server) openLobby(c *gin.Context) {
	var req struct {
		HostID string   `json:"hostId" binding:"required"`
		Topics []string `json:"topics"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g, err := s.engine.OpenLobby(c.Request.Context(), c.Param("id"), req.HostID, req.Topics)
	if err != nil {
		fail(c, err, "unable to create lobby")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": g.Status, "questions": g.Questions})
}

func (s *Server) startTrivia(c *gin.Context) {
	var req struct {
		HostID string `json:"hostId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g, err := s.engine.StartTrivia(c.Request.Context(), c.Param("id"), req.HostID)
	if err != nil {
		fail(c, err, "unable to start trivia")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": g.Status, "question": g.Questions[g.CurrentQuestionIndex]})
}

func (s *Server) currentQuestion(c *gin.Context) {
	q, err := s.engine.CurrentQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "no current question")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId" binding:"required"`
		Answer   string `json:"answer" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ok, err := s.engine.SubmitAnswer(c.Request.Context(), c.Param("id"), req.PlayerID, req.Answer)
	if err != nil {
		fail(c, err, "failed to submit answer")
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to submit answer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "answer recorded"})
}

func (s *Server) nextQuestion(c *gin.Context) {
	q, err := s.engine.AdvanceQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "unable to move to next question")
		return
	}
	if q == nil {
		c.JSON(http.StatusOK, gin.H{"status": game.StatusEnded})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": game.StatusInProgress, "question": q})
}

func (s *Server) results(c *gin.Context) {
	b, err := s.engine.ResultsBreakdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "game is not in results phase")
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": b.Question, "results": b.Counts})
}

func (s *Server) status(c *gin.Context) {
	g, err := s.engine.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "game not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": g.Status})
}

func (s *Server) leaderboard(c *gin.Context) {
	players, err := s.engine.Leaderboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "game not found")
		return
	}
	c.JSON(http.StatusOK, players)
}

func (s *Server) endGame(c *gin.Context) {
	var req struct {
		HostID string `json:"hostId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := s.engine.EndGame(c.Request.Context(), c.Param("id"), req.HostID); err != nil {
		fail(c, err, "unable to end game")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": game.StatusEnded})
}
