package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

// SessionService exposes the generated sessions to the UI layer:
// listing and status changes. Creation is the generator's job.
type SessionService struct {
	sessionRepo SessionStore
	logger      *zap.Logger
}

func NewSessionService(sessionRepo SessionStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// ListByClass returns the sessions of a class in chronological order.
func (s *SessionService) ListByClass(ctx context.Context, classID uuid.UUID) ([]*model.Session, error) {
	return s.sessionRepo.GetByClass(ctx, classID)
}

// SetStatus moves a session to planned, done or cancelled.
func (s *SessionService) SetStatus(ctx context.Context, sessionID uuid.UUID, status model.SessionStatus) error {
	switch status {
	case model.SessionStatusPlanned, model.SessionStatusDone, model.SessionStatusCancelled:
	default:
		return fmt.Errorf("invalid session status %q", status)
	}

	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, status); err != nil {
		return fmt.Errorf("update session status: %w", err)
	}

	s.logger.Info("Session status updated",
		zap.String("session_id", sessionID.String()),
		zap.String("status", string(status)))

	return nil
}
