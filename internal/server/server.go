package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ChemaTorresGarvia/fichas-backend/internal/database"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/review"
	"github.com/ChemaTorresGarvia/fichas-backend/internal/streak"
	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server exposes the review engine and its derived views over HTTP for the
// web client. Authentication stays external: the client sends the user key
// (email or display name) explicitly; missing keys default to "anon".
type Server struct {
	engine   *review.Engine
	cards    *database.FlashcardRepository
	progress *database.ProgressRepository
	streaks  *streak.Tracker
	hub      *Hub
}

// New creates a server around the given collaborators
func New(engine *review.Engine, cards *database.FlashcardRepository,
	progress *database.ProgressRepository, streaks *streak.Tracker, hub *Hub) *Server {
	return &Server{
		engine:   engine,
		cards:    cards,
		progress: progress,
		streaks:  streaks,
		hub:      hub,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/flashcards", s.handleFlashcards)
		api.GET("/topics", s.handleTopics)
		api.GET("/review/due", s.handleDue)
		api.POST("/review/result", s.handleResult)
		api.GET("/stats/today", s.handleStatsToday)
		api.GET("/streak", s.handleStreak)
	}

	r.GET("/ws", s.handleWebSocket)

	return r
}

// userKeyFrom derives the user identity from the request, defaulting to
// "anon" when absent.
func userKeyFrom(c *gin.Context) string {
	key := strings.TrimSpace(c.Query("user"))
	if key == "" {
		return "anon"
	}
	return key
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleFlashcards(c *gin.Context) {
	cards, err := s.cards.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (s *Server) handleTopics(c *gin.Context) {
	topics, err := s.cards.ListTopics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (s *Server) handleDue(c *gin.Context) {
	userKey := userKeyFrom(c)
	due, err := s.engine.DueToday(userKey, models.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute due set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_key": userKey, "due": due})
}

type resultRequest struct {
	User     string `json:"user"`
	CardKey  string `json:"card_key" binding:"required"`
	Recalled bool   `json:"recalled"`
}

func (s *Server) handleResult(c *gin.Context) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card_key is required"})
		return
	}
	userKey := strings.TrimSpace(req.User)
	if userKey == "" {
		userKey = "anon"
	}

	entry, persisted := s.engine.RecordOutcome(userKey, req.CardKey, req.Recalled, models.Today())
	c.JSON(http.StatusOK, gin.H{
		"entry":     entry,
		"persisted": persisted,
	})
}

func (s *Server) handleStatsToday(c *gin.Context) {
	userKey := userKeyFrom(c)
	stats, err := s.progress.DailyStats(userKey, models.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load daily stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleStreak(c *gin.Context) {
	userKey := userKeyFrom(c)
	row, err := s.streaks.Get(userKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load streak"})
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	userKey := userKeyFrom(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed for user %q: %v", userKey, err)
		return
	}
	log.Printf("ws: connected user=%q", userKey)
	s.hub.Register(userKey, conn)
}
