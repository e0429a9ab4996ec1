package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/nimasrn/resto-manager/pkg/prom"
	"github.com/valyala/fasthttp"
)

// SettingsSource supplies the Telegram credentials at send time.
type SettingsSource interface {
	Get(ctx context.Context) (*model.Settings, error)
}

type Config struct {
	// APIURL is the Bot API base, e.g. https://api.telegram.org.
	APIURL  string
	Timeout time.Duration
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Client relays messages to a Telegram chat through the Bot API.
type Client struct {
	config   Config
	client   *fasthttp.Client
	settings SettingsSource
	network  Connectivity
}

func NewClient(config Config, settings SettingsSource, network Connectivity) *Client {
	return &Client{
		config: config,
		client: &fasthttp.Client{
			Name:                "resto-manager",
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 60 * time.Second,
		},
		settings: settings,
		network:  network,
	}
}

// SendMessage posts text to the configured chat and reports whether the API
// accepted it. It returns false without touching the network when offline or
// when the bot token or chat id is missing. Failures are logged, never
// returned.
func (c *Client) SendMessage(ctx context.Context, text string) bool {
	if !c.network.Online(ctx) {
		logger.Info("[notify] offline, message not sent")
		return false
	}

	settings, err := c.settings.Get(ctx)
	if err != nil {
		logger.Error("[notify] failed to read settings", "error", err)
		return false
	}
	if !settings.CanNotify() {
		logger.Info("[notify] telegram settings are missing")
		return false
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    settings.TelegramChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		logger.Error("[notify] failed to marshal request", "error", err)
		return false
	}

	start := time.Now()
	err = c.doRequest(ctx, settings.TelegramBotToken, body)
	prom.AddNotifySendDuration(time.Since(start).Seconds())
	if err != nil {
		logger.Error("[notify] failed to send message", "error", err)
		return false
	}
	return true
}

func (c *Client) doRequest(ctx context.Context, token string, body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(strings.TrimRight(c.config.APIURL, "/") + "/bot" + token + "/sendMessage")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode < fasthttp.StatusOK || statusCode >= fasthttp.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d, body: %s", statusCode, resp.Body())
	}
	return nil
}
