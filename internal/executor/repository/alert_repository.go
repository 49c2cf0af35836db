package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/pkg/logger"
	"golang-stock-signal/pkg/telegram"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

var ErrAlertDestinationMissing = errors.New("alert destination is not configured")

// AlertRepository delivers alert messages. Delivery is attempted once.
type AlertRepository interface {
	SendAlert(ctx context.Context, message string, destination string) error
	// Destination is the configured default destination; empty when alerts cannot be delivered.
	Destination() string
}

// NewAlertRepository selects the alert sink from the configured provider.
func NewAlertRepository(cfg config.Alert, notifier telegram.Notifier, log *logger.Logger) (AlertRepository, error) {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)

	switch cfg.Provider {
	case "", "discord":
		return NewDiscordAlertRepository(cfg.WebhookURL, cfg.Timeout, limiter, log), nil
	case "telegram":
		if notifier == nil {
			return nil, fmt.Errorf("telegram provider selected without a telegram notifier")
		}
		return &telegramAlertRepository{notifier: notifier, limiter: limiter, logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown alert provider %q", cfg.Provider)
	}
}

type discordAlertRepository struct {
	client     *resty.Client
	webhookURL string
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewDiscordAlertRepository posts {"content": message} to a Discord webhook.
func NewDiscordAlertRepository(webhookURL string, timeout time.Duration, limiter *rate.Limiter, log *logger.Logger) AlertRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &discordAlertRepository{
		client:     resty.New().SetTimeout(timeout),
		webhookURL: webhookURL,
		limiter:    limiter,
		logger:     log,
	}
}

func (r *discordAlertRepository) Destination() string {
	return r.webhookURL
}

func (r *discordAlertRepository) SendAlert(ctx context.Context, message string, destination string) error {
	if destination == "" {
		return ErrAlertDestinationMissing
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"content": message}).
		Post(destination)
	if err != nil {
		return fmt.Errorf("failed to post discord webhook: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		body := resp.String()
		if len(body) > 200 {
			body = body[:200]
		}
		return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode(), body)
	}

	r.logger.Debug("Alert sent to Discord")
	return nil
}

type telegramAlertRepository struct {
	notifier telegram.Notifier
	limiter  *rate.Limiter
	logger   *logger.Logger
}

func (r *telegramAlertRepository) Destination() string {
	if r.notifier.DefaultChatID() == 0 {
		return ""
	}
	return strconv.FormatInt(r.notifier.DefaultChatID(), 10)
}

func (r *telegramAlertRepository) SendAlert(ctx context.Context, message string, destination string) error {
	if destination == "" {
		return ErrAlertDestinationMissing
	}
	chatID, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", destination, err)
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := r.notifier.SendMessageTo(chatID, telegram.FormatSignalAlert(message, time.Now())); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	r.logger.Debug("Alert sent to Telegram", logger.Field("chat_id", chatID))
	return nil
}
