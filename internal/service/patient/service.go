package patient

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

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.PatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	repo     repository.PatientRepository
	activity activity.Recorder
	now      func() time.Time
}

func NewService(repo repository.PatientRepository, recorder activity.Recorder) *Service {
	return &Service{
		repo:     repo,
		activity: recorder,
		now:      time.Now,
	}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.PatientRequest) (*model.Patient, error) {
	now := s.now()
	patient := &model.Patient{
		Base:      model.Base{ID: uuid.New(), CreatedAt: now},
		UpdatedAt: now,
	}
	apply(patient, req)

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.activity.Record(ctx, model.ActivityPatientCreated, &patient.ID, "New patient: "+patient.Name)
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// UpdatePatient overwrites every editable field and returns the stored record.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Base:      model.Base{ID: id},
		UpdatedAt: s.now(),
	}
	apply(patient, req)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return s.GetPatient(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	if patients == nil {
		patients = []*model.Patient{}
	}
	return patients, nil
}

func apply(patient *model.Patient, req *model.PatientRequest) {
	patient.Name = req.Name
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.Condition = req.Condition
	patient.Status = req.Status
	if patient.Status == "" {
		patient.Status = string(model.PatientStatusActive)
	}
}
