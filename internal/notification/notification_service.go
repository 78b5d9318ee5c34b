package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type RecordInput struct {
	UserID  string
	EventID string
	Title   string
	Body    string
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Record stores a notification; the bool is false when the event was
	// already recorded (redelivery).
	Record(ctx context.Context, in RecordInput) (bool, error)
	ListMine(ctx context.Context, userID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, in RecordInput) (bool, error) {
	userUUID, err := uuid.Parse(in.UserID)
	if err != nil {
		return false, err
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  userUUID,
		EventID: in.EventID,
		Title:   in.Title,
		Body:    in.Body,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			s.logger.Debug("notification already recorded for event",
				zap.String("event_id", in.EventID),
			)
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]NotificationResponse, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	return s.repo.MarkRead(ctx, id, userID)
}

type NotificationResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
