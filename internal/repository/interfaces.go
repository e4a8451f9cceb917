package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/doctor-api/internal/model"
)

// ErrNotFound is returned by single-row reads that match nothing.
var ErrNotFound = errors.New("record not found")

// ErrUnknownPatient is returned by writes that reference a patient id with no row.
var ErrUnknownPatient = errors.New("referenced patient does not exist")

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters model.AppointmentFilters) ([]*model.Appointment, error)
	}

	// EmergencyRepository stores crisis protocols, emergency contacts and
	// behavior journal entries.
	EmergencyRepository interface {
		// GetCrisisProtocol returns nil, nil when the patient has none.
		GetCrisisProtocol(ctx context.Context, patientID uuid.UUID) (*model.CrisisProtocol, error)
		// UpsertCrisisProtocol writes the protocol atomically, keyed on patient id,
		// and fills in the stored id and timestamp.
		UpsertCrisisProtocol(ctx context.Context, protocol *model.CrisisProtocol) error

		ListContacts(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error)
		CreateContact(ctx context.Context, contact *model.EmergencyContact) error
		// DeleteContact reports how many rows were removed.
		DeleteContact(ctx context.Context, id uuid.UUID) (int64, error)
		DeletePatientContact(ctx context.Context, patientID, id uuid.UUID) (int64, error)

		// ListJournal returns entries newest event first.
		ListJournal(ctx context.Context, patientID uuid.UUID) ([]*model.BehaviorJournalEntry, error)
		CreateJournalEntry(ctx context.Context, entry *model.BehaviorJournalEntry) error
		DeleteJournalEntry(ctx context.Context, id uuid.UUID) (int64, error)
		DeletePatientJournalEntry(ctx context.Context, patientID, id uuid.UUID) (int64, error)
	}

	DashboardRepository interface {
		GetStats(ctx context.Context) (*model.DashboardStats, error)
		ListUpcomingAppointments(ctx context.Context, limit int) ([]*model.UpcomingAppointment, error)
		ListAlerts(ctx context.Context, limit int) ([]*model.Alert, error)
	}

	ActivityRepository interface {
		Create(ctx context.Context, activity *model.Activity) error
		ListRecent(ctx context.Context, limit int) ([]*model.Activity, error)
		// DeleteBefore prunes entries created before cutoff.
		DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	UserRepository interface {
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}
)
