package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
	"github.com/jwalitptl/doctor-api/internal/service/activity"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters model.AppointmentFilters) ([]*model.Appointment, error)
}

type Service struct {
	repo     repository.AppointmentRepository
	activity activity.Recorder
	now      func() time.Time
}

func NewService(repo repository.AppointmentRepository, recorder activity.Recorder) *Service {
	return &Service{
		repo:     repo,
		activity: recorder,
		now:      time.Now,
	}
}

// CreateAppointment stores the appointment and returns it with the patient's
// name joined in. Unknown patients fail at the foreign key.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient_id", err)
	}

	appointment := &model.Appointment{
		Base:      model.Base{ID: uuid.New(), CreatedAt: s.now()},
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		Type:      req.Type,
		Status:    model.AppointmentStatus(req.Status),
		Reason:    req.Reason,
	}
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrUnknownPatient) {
			return nil, apperrors.BadRequest("unknown patient_id", err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.activity.Record(ctx, model.ActivityAppointmentCreated, &patientID,
		fmt.Sprintf("Appointment with %s on %s at %s", appointment.PatientName, appointment.Date, appointment.Time))
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	return appointments, nil
}
