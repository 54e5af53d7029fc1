package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"talenthub/internal/infrastructure/push"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	NotificationTypeMatchFound        = "match_found"
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeInterview         = "interview"
)

// eventSink is the hub surface the usecase needs; satisfied by *ws.Hub.
type eventSink interface {
	SendToUser(userID uuid.UUID, payload []byte)
}

// Notifier fans one event out to the persistent feed, open websocket
// connections, and registered devices.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typ, title, body string)
}

type NotificationUsecase interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]repository.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) (repository.DeviceToken, error)
	UnregisterDevice(ctx context.Context, userID uuid.UUID, token string) error
}

type notificationEvent struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

type Notifications struct {
	feed    repository.NotificationRepository
	devices repository.DeviceTokenRepository
	hub     eventSink
	pusher  push.Sender
	logger  *log.Logger
}

func NewNotificationUsecase(
	feed repository.NotificationRepository,
	devices repository.DeviceTokenRepository,
	hub eventSink,
	pusher push.Sender,
	logger *log.Logger,
) *Notifications {
	return &Notifications{feed: feed, devices: devices, hub: hub, pusher: pusher, logger: logger}
}

// Notify is best-effort on every channel: a failed store, socket, or push
// never fails the operation that triggered it. Failures are logged.
func (u *Notifications) Notify(ctx context.Context, userID uuid.UUID, typ, title, body string) {
	if userID == uuid.Nil {
		return
	}

	n := repository.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
	}
	if err := u.feed.Create(ctx, n); err != nil {
		u.logf("notify: store failed | user=%s err=%v", userID, err)
	}

	if u.hub != nil {
		evt := notificationEvent{Type: typ, Title: title, Body: body, Timestamp: time.Now().UTC()}
		if b, err := json.Marshal(evt); err == nil {
			u.hub.SendToUser(userID, b)
		}
	}

	if u.pusher != nil {
		tokens, err := u.devices.ListByUserID(ctx, userID)
		if err != nil {
			u.logf("notify: list devices failed | user=%s err=%v", userID, err)
			return
		}
		for _, t := range tokens {
			if err := u.pusher.Send(ctx, t.Token, title, body); err != nil {
				u.logf("notify: push failed | user=%s token_id=%s err=%v", userID, t.ID, err)
			}
		}
	}
}

func (u *Notifications) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]repository.Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.feed.ListByUserID(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Notifications) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.feed.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Notifications) RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) (repository.DeviceToken, error) {
	if userID == uuid.Nil {
		return repository.DeviceToken{}, ErrUnauthorized
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return repository.DeviceToken{}, ErrInvalidInput
	}
	platform = strings.TrimSpace(platform)
	if platform == "" {
		platform = "web"
	}

	t, err := u.devices.FindOrInsert(ctx, repository.DeviceToken{
		UserID:   userID,
		Token:    token,
		Platform: platform,
	})
	if err != nil {
		return repository.DeviceToken{}, ErrInternal
	}
	return t, nil
}

func (u *Notifications) UnregisterDevice(ctx context.Context, userID uuid.UUID, token string) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.devices.Delete(ctx, userID, strings.TrimSpace(token)); err != nil {
		if errors.Is(err, repository.ErrDeviceTokenNotFound) {
			return ErrNotificationNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Notifications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
