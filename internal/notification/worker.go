package notification

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_dispatch/internal/config"
	"github.com/sirupsen/logrus"
)

// Worker забирает уведомления из очереди Redis и доставляет их на вебхук
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Run обрабатывает очередь до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Starting notification worker...")
	for {
		// таймаут BRPOP ограничен, чтобы вовремя замечать отмену контекста
		result, err := w.redisClient.BRPop(ctx, time.Second, notificationQueueKey).Result()
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Stopping notification worker.")
				return nil
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop notification from Redis")
			if !sleepCtx(ctx, w.cfg.WebhookBaseDelay) {
				return nil
			}
			continue
		}

		// result[0] - ключ, result[1] - значение
		payload := result[1]
		var n Notification
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
			continue
		}

		w.deliver(ctx, n, payload)
	}
}

// deliver отправляет уведомление с экспоненциальной задержкой между попытками.
// Ошибка доставки только логируется.
func (w *Worker) deliver(ctx context.Context, n Notification, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"recipient_id": n.RecipientID,
		"incident_id":  n.IncidentID,
		"category":     n.Category,
		"priority":     n.Priority,
	})
	log.Debug("Delivering notification...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping notification delivery.")
		return false
	}

	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		err := w.send(ctx, rawPayload)
		if err == nil {
			log.Info("Notification delivered successfully.")
			return true
		}
		left := maxRetries - 1 - i
		log.WithError(err).Warnf("Notification delivery failed. Retrying in %v. Retries left: %d", delay, left)
		if left == 0 || !sleepCtx(ctx, delay) {
			break
		}
		delay *= 2
	}

	log.Errorf("Failed to deliver notification after %d attempts.", maxRetries)
	return false
}

func (w *Worker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return nil
}

// sleepCtx ждет d или отмены контекста; false, если контекст отменен
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
