package emergency

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
	"github.com/jwalitptl/doctor-api/internal/service/activity"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
)

type EmergencyService interface {
	GetProfile(ctx context.Context, patientID uuid.UUID) (*model.EmergencyProfile, error)
	UpsertCrisisProtocol(ctx context.Context, patientID uuid.UUID, req *model.CrisisProtocolRequest) (*model.CrisisProtocol, error)
	AddContact(ctx context.Context, patientID uuid.UUID, req *model.EmergencyContactRequest) (*model.EmergencyContact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	DeletePatientContact(ctx context.Context, patientID, id uuid.UUID) error
	AddJournalEntry(ctx context.Context, patientID uuid.UUID, eventDate time.Time, req *model.BehaviorJournalRequest) (*model.BehaviorJournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id uuid.UUID) error
	DeletePatientJournalEntry(ctx context.Context, patientID, id uuid.UUID) error
}

type Service struct {
	repo     repository.EmergencyRepository
	activity activity.Recorder
	now      func() time.Time
}

func NewService(repo repository.EmergencyRepository, recorder activity.Recorder) *Service {
	return &Service{
		repo:     repo,
		activity: recorder,
		now:      time.Now,
	}
}

// GetProfile reads the protocol, contacts and journal concurrently. The reads
// are independent; any failure fails the whole profile. The patient is not
// checked for existence.
func (s *Service) GetProfile(ctx context.Context, patientID uuid.UUID) (*model.EmergencyProfile, error) {
	var (
		protocol *model.CrisisProtocol
		contacts []*model.EmergencyContact
		journal  []*model.BehaviorJournalEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		protocol, err = s.repo.GetCrisisProtocol(gctx, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = s.repo.ListContacts(gctx, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		journal, err = s.repo.ListJournal(gctx, patientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load emergency profile: %w", err)
	}

	if contacts == nil {
		contacts = []*model.EmergencyContact{}
	}
	if journal == nil {
		journal = []*model.BehaviorJournalEntry{}
	}
	sort.SliceStable(journal, func(i, j int) bool {
		return journal[i].EventDate.After(journal[j].EventDate)
	})

	return &model.EmergencyProfile{
		CrisisProtocol:    protocol,
		EmergencyContacts: contacts,
		BehaviorJournal:   journal,
	}, nil
}

// UpsertCrisisProtocol sets the patient's protocol. Callers cannot tell an
// insert from an update.
func (s *Service) UpsertCrisisProtocol(ctx context.Context, patientID uuid.UUID, req *model.CrisisProtocolRequest) (*model.CrisisProtocol, error) {
	protocol := &model.CrisisProtocol{
		ID:              uuid.New(),
		PatientID:       patientID,
		CalmSpace:       req.CalmSpace,
		SoothingObject:  req.SoothingObject,
		OtherStrategies: req.OtherStrategies,
		UpdatedAt:       s.now(),
	}
	if err := s.repo.UpsertCrisisProtocol(ctx, protocol); err != nil {
		return nil, writeErr(err, "failed to save crisis protocol")
	}

	s.activity.Record(ctx, model.ActivityProtocolSaved, &patientID, "Crisis protocol updated")
	return protocol, nil
}

func (s *Service) AddContact(ctx context.Context, patientID uuid.UUID, req *model.EmergencyContactRequest) (*model.EmergencyContact, error) {
	contact := &model.EmergencyContact{
		Base:      model.Base{ID: uuid.New(), CreatedAt: s.now()},
		PatientID: patientID,
		Name:      req.Name,
		Phone:     req.Phone,
		Relation:  req.Relation,
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, writeErr(err, "failed to add emergency contact")
	}
	return contact, nil
}

// DeleteContact succeeds whether or not the contact existed.
func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.DeleteContact(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", err)
	}
	logMissing(n, "emergency contact", id)
	return nil
}

func (s *Service) DeletePatientContact(ctx context.Context, patientID, id uuid.UUID) error {
	n, err := s.repo.DeletePatientContact(ctx, patientID, id)
	if err != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", err)
	}
	logMissing(n, "emergency contact", id)
	return nil
}

// AddJournalEntry stores an entry at eventDate. Defaulting a missing date is
// up to the caller.
func (s *Service) AddJournalEntry(ctx context.Context, patientID uuid.UUID, eventDate time.Time, req *model.BehaviorJournalRequest) (*model.BehaviorJournalEntry, error) {
	entry := &model.BehaviorJournalEntry{
		Base:      model.Base{ID: uuid.New(), CreatedAt: s.now()},
		PatientID: patientID,
		EventDate: eventDate,
		Trigger:   req.Trigger,
		Solution:  req.Solution,
		Duration:  req.Duration,
	}
	if err := s.repo.CreateJournalEntry(ctx, entry); err != nil {
		return nil, writeErr(err, "failed to add behavior journal entry")
	}

	s.activity.Record(ctx, model.ActivityJournalEntryAdded, &patientID, "Behavior journal entry: "+req.Trigger)
	return entry, nil
}

func (s *Service) DeleteJournalEntry(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.DeleteJournalEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete behavior journal entry: %w", err)
	}
	logMissing(n, "behavior journal entry", id)
	return nil
}

func (s *Service) DeletePatientJournalEntry(ctx context.Context, patientID, id uuid.UUID) error {
	n, err := s.repo.DeletePatientJournalEntry(ctx, patientID, id)
	if err != nil {
		return fmt.Errorf("failed to delete behavior journal entry: %w", err)
	}
	logMissing(n, "behavior journal entry", id)
	return nil
}

func logMissing(n int64, what string, id uuid.UUID) {
	if n == 0 {
		log.Debug().Str("id", id.String()).Msgf("%s already absent", what)
	}
}

func writeErr(err error, msg string) error {
	if errors.Is(err, repository.ErrUnknownPatient) {
		return apperrors.NotFound("patient", err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
