package service

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/config"
	"github.com/spec-kit/supportzen/internal/events"
)

// NotificationService mirrors store events into the log and, when configured,
// to an external webhook. Delivery is best effort: a failed POST is logged and
// forgotten, never retried.
type NotificationService struct {
	dispatcher events.Dispatcher
	client     *resty.Client
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		client:     resty.New().SetTimeout(cfg.Timeout()),
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to every store event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketUpdated,
		events.EventTicketDeleted,
		events.EventTicketAutoClosed,
		events.EventTicketArchived,
		events.EventShiftStarted,
		events.EventShiftEnded,
	} {
		n.dispatcher.Subscribe(eventType, n.handleEvent)
	}
}

func (n *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	n.logger.Info("store event",
		zap.String("type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))
	// delivery must not block the publishing mutation; the caller's context
	// ends with the request, so the POST runs detached under the client timeout
	go n.postWebhook(context.Background(), event)
	return nil
}

func (n *NotificationService) postWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(n.cfg.WebhookURL)
	if err != nil {
		n.logger.Warn("webhook delivery failed", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}
	if resp.IsError() {
		n.logger.Warn("webhook rejected event",
			zap.String("type", string(event.Type)),
			zap.String("status", resp.Status()))
	}
}
