package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
	"github.com/jwalitptl/doctor-api/pkg/messaging"
	"github.com/jwalitptl/doctor-api/pkg/metrics"
)

// MessageType is the envelope type of every published activity.
const MessageType = "activity.created"

// Recorder appends an entry to the activity feed. Failures never reach the caller.
type Recorder interface {
	Record(ctx context.Context, kind model.ActivityKind, patientID *uuid.UUID, message string)
}

type Service struct {
	repo    repository.ActivityRepository
	broker  messaging.Broker
	channel string
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.ActivityRepository, broker messaging.Broker, channel string, m *metrics.Metrics) *Service {
	if broker == nil {
		broker = messaging.NopBroker{}
	}
	return &Service{
		repo:    repo,
		broker:  broker,
		channel: channel,
		metrics: m,
		now:     time.Now,
	}
}

func (s *Service) Record(ctx context.Context, kind model.ActivityKind, patientID *uuid.UUID, message string) {
	activity := &model.Activity{
		Base:      model.Base{ID: uuid.New(), CreatedAt: s.now()},
		Kind:      kind,
		PatientID: patientID,
		Message:   message,
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to record activity")
		s.count(kind, "store_error")
		return
	}

	msg := messaging.Message{Type: MessageType, Payload: activity}
	if err := s.broker.Publish(ctx, s.channel, msg); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("channel", s.channel).Msg("failed to publish activity")
		s.count(kind, "publish_error")
		return
	}
	s.count(kind, "ok")
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]*model.Activity, error) {
	activities, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (s *Service) count(kind model.ActivityKind, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ActivityEvents.WithLabelValues(string(kind), status).Inc()
}
