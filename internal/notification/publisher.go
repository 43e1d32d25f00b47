package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "dispatch_notifications"
)

// Category - тип уведомления
type Category string

const (
	CategoryIncidentAssigned  Category = "incident_assigned"
	CategoryIncidentResolved  Category = "incident_resolved"
	CategoryPendingAssignment Category = "incident_pending_assignment"
	CategoryGeneral           Category = "general"
)

// Priority - срочность доставки
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// PriorityFor - high для решения инцидента и критичных происшествий, иначе medium
func PriorityFor(critical, resolution bool) Priority {
	if critical || resolution {
		return PriorityHigh
	}
	return PriorityMedium
}

// Notification - событие для внешней службы доставки
type Notification struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	IncidentID  uuid.UUID `json:"incident_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Category    Category  `json:"category"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher - интерфейс для публикации уведомлений
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// RedisPublisher - реализация Publisher поверх очереди в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish кладет уведомление в левую часть списка, воркер забирает справа
func (p *RedisPublisher) Publish(ctx context.Context, n Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}
