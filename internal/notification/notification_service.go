package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"go-leaveflow/internal/events"
)

// ErrAlreadyRecorded signals that this decision event was recorded by an
// earlier delivery of the same Kafka message.
var ErrAlreadyRecorded = errors.New("notification already recorded")

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	RecordDecision(ctx context.Context, event events.LeaveDecisionEvent) error
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

// RecordDecision persists a decision event as a pending notification.
// Redeliveries hit the unique (request, event type) constraint and are
// reported as ErrAlreadyRecorded so the consumer can commit and move on.
func (s *service) RecordDecision(ctx context.Context, event events.LeaveDecisionEvent) error {
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return errors.New("invalid company id in decision event")
	}
	requestID, err := uuid.Parse(event.RequestID)
	if err != nil {
		return errors.New("invalid request id in decision event")
	}
	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return errors.New("invalid employee id in decision event")
	}

	n := &Notification{
		ID:             uuid.New(),
		CompanyID:      companyID,
		LeaveRequestID: requestID,
		EmployeeID:     employeeID,
		EventType:      event.EventType,
		LeaveType:      event.LeaveType,
		Status:         event.Status,
		OccurredAt:     event.OccurredAt,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		if isDuplicateNotification(err) {
			return ErrAlreadyRecorded
		}
		s.logger.Error("record decision notification failed",
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("decision notification recorded",
		zap.String("request_id", event.RequestID),
		zap.String("event_type", event.EventType),
	)
	return nil
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notification_request_event"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_notification_request_event")
}
