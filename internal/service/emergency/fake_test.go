package emergency

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jwalitptl/doctor-api/internal/model"
)

// memoryRepo keeps protocols keyed by patient, like the UNIQUE constraint does.
type memoryRepo struct {
	mu        sync.Mutex
	protocols map[uuid.UUID]*model.CrisisProtocol
	contacts  []*model.EmergencyContact
	journal   []*model.BehaviorJournalEntry

	upserts    int
	journalErr error
	createErr  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{protocols: map[uuid.UUID]*model.CrisisProtocol{}}
}

func (r *memoryRepo) GetCrisisProtocol(_ context.Context, patientID uuid.UUID) (*model.CrisisProtocol, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.protocols[patientID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepo) UpsertCrisisProtocol(_ context.Context, protocol *model.CrisisProtocol) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if existing, ok := r.protocols[protocol.PatientID]; ok {
		existing.CalmSpace = protocol.CalmSpace
		existing.SoothingObject = protocol.SoothingObject
		existing.OtherStrategies = protocol.OtherStrategies
		existing.UpdatedAt = protocol.UpdatedAt
		protocol.ID = existing.ID
		return nil
	}
	cp := *protocol
	r.protocols[protocol.PatientID] = &cp
	return nil
}

func (r *memoryRepo) ListContacts(_ context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.EmergencyContact
	for _, c := range r.contacts {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateContact(_ context.Context, contact *model.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.contacts = append(r.contacts, contact)
	return nil
}

func (r *memoryRepo) DeleteContact(_ context.Context, id uuid.UUID) (int64, error) {
	return r.deleteContact(func(c *model.EmergencyContact) bool { return c.ID == id })
}

func (r *memoryRepo) DeletePatientContact(_ context.Context, patientID, id uuid.UUID) (int64, error) {
	return r.deleteContact(func(c *model.EmergencyContact) bool { return c.ID == id && c.PatientID == patientID })
}

func (r *memoryRepo) deleteContact(match func(*model.EmergencyContact) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.contacts[:0]
	for _, c := range r.contacts {
		if match(c) {
			n++
			continue
		}
		kept = append(kept, c)
	}
	r.contacts = kept
	return n, nil
}

// ListJournal returns insertion order; ordering is the service's job here.
func (r *memoryRepo) ListJournal(_ context.Context, patientID uuid.UUID) ([]*model.BehaviorJournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.journalErr != nil {
		return nil, r.journalErr
	}
	var out []*model.BehaviorJournalEntry
	for _, e := range r.journal {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateJournalEntry(_ context.Context, entry *model.BehaviorJournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journal = append(r.journal, entry)
	return nil
}

func (r *memoryRepo) DeleteJournalEntry(_ context.Context, id uuid.UUID) (int64, error) {
	return r.deleteEntry(func(e *model.BehaviorJournalEntry) bool { return e.ID == id })
}

func (r *memoryRepo) DeletePatientJournalEntry(_ context.Context, patientID, id uuid.UUID) (int64, error) {
	return r.deleteEntry(func(e *model.BehaviorJournalEntry) bool { return e.ID == id && e.PatientID == patientID })
}

func (r *memoryRepo) deleteEntry(match func(*model.BehaviorJournalEntry) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.journal[:0]
	for _, e := range r.journal {
		if match(e) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.journal = kept
	return n, nil
}

type recorded struct {
	kind      model.ActivityKind
	patientID *uuid.UUID
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recorded
}

func (f *fakeRecorder) Record(_ context.Context, kind model.ActivityKind, patientID *uuid.UUID, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recorded{kind: kind, patientID: patientID})
}
