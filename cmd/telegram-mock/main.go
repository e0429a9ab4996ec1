package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SendMessageRequest is the subset of the Bot API sendMessage body the
// admin app sends.
type SendMessageRequest struct {
	ChatID    string `json:"chat_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
	ParseMode string `json:"parse_mode"`
}

type Chat struct {
	ID string `json:"id"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Date      int64  `json:"date"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
	Token     string `json:"-"`
}

// APIResponse mirrors the Bot API envelope.
type APIResponse struct {
	OK          bool     `json:"ok"`
	Result      *Message `json:"result,omitempty"`
	ErrorCode   int      `json:"error_code,omitempty"`
	Description string   `json:"description,omitempty"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	BotID       string    `json:"bot_id"`
	Timestamp   time.Time `json:"timestamp"`
	FailureRate float64   `json:"failure_rate"`
	Received    int       `json:"received"`
}

// MockBot records every accepted message and fails a share of them.
type MockBot struct {
	mu          sync.Mutex
	failureRate float64
	delay       time.Duration
	validTokens map[string]bool
	botID       string
	rng         *rand.Rand
	nextID      int64
	messages    []Message
}

// NewMockBot accepts any token when tokens is empty.
func NewMockBot(failureRate float64, delay time.Duration, tokens []string) *MockBot {
	valid := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		valid[t] = true
	}
	return &MockBot{
		failureRate: failureRate,
		delay:       delay,
		validTokens: valid,
		botID:       "MOCK_BOT_" + uuid.New().String()[:8],
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockBot) authorized(token string) bool {
	return len(m.validTokens) == 0 || m.validTokens[token]
}

func (m *MockBot) deliver(token string, req *SendMessageRequest) (*Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rng.Float64() < m.failureRate {
		return nil, false
	}
	m.nextID++
	msg := Message{
		MessageID: m.nextID,
		Date:      time.Now().Unix(),
		Chat:      Chat{ID: req.ChatID},
		Text:      req.Text,
		Token:     token,
	}
	m.messages = append(m.messages, msg)
	return &msg, true
}

func (m *MockBot) received() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}

type Handler struct {
	bot *MockBot
}

func NewHandler(bot *MockBot) *Handler {
	return &Handler{bot: bot}
}

// SendMessage serves POST /bot{token}/sendMessage.
func (h *Handler) SendMessage(c *gin.Context) {
	segment := c.Param("bot")
	if !strings.HasPrefix(segment, "bot") {
		c.JSON(http.StatusNotFound, APIResponse{ErrorCode: http.StatusNotFound, Description: "Not Found"})
		return
	}
	token := strings.TrimPrefix(segment, "bot")
	if !h.bot.authorized(token) {
		c.JSON(http.StatusUnauthorized, APIResponse{ErrorCode: http.StatusUnauthorized, Description: "Unauthorized"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			ErrorCode:   http.StatusBadRequest,
			Description: "Bad Request: " + err.Error(),
		})
		return
	}

	if h.bot.delay > 0 {
		time.Sleep(h.bot.delay)
	}

	msg, ok := h.bot.deliver(token, &req)
	if !ok {
		log.Warn().Str("chat_id", req.ChatID).Msg("Simulated send failure")
		c.JSON(http.StatusTooManyRequests, APIResponse{
			ErrorCode:   http.StatusTooManyRequests,
			Description: "Too Many Requests: retry after 1",
		})
		return
	}

	log.Info().
		Str("chat_id", req.ChatID).
		Int64("message_id", msg.MessageID).
		Str("parse_mode", req.ParseMode).
		Msg("Message accepted")
	c.JSON(http.StatusOK, APIResponse{OK: true, Result: msg})
}

// ListMessages returns everything accepted so far.
func (h *Handler) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.bot.received())
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		BotID:       h.bot.botID,
		Timestamp:   time.Now(),
		FailureRate: h.bot.failureRate,
		Received:    len(h.bot.received()),
	})
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})

	router.POST("/:bot/sendMessage", handler.SendMessage)
	router.GET("/messages", handler.ListMessages)
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	failureRate := getEnvFloat("FAILURE_RATE", 0)
	delay := getEnvDuration("DELAY", 0)
	tokens := splitTokens(getEnv("BOT_TOKENS", ""))

	log.Info().
		Str("port", port).
		Float64("failure_rate", failureRate).
		Dur("delay", delay).
		Int("tokens", len(tokens)).
		Msg("Starting mock Telegram Bot API")

	router := SetupRouter(NewHandler(NewMockBot(failureRate, delay, tokens)))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitTokens(v string) []string {
	var out []string
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
