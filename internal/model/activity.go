package model

import (
	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityPatientCreated     ActivityKind = "patient.created"
	ActivityAppointmentCreated ActivityKind = "appointment.created"
	ActivityProtocolSaved      ActivityKind = "crisis_protocol.saved"
	ActivityJournalEntryAdded  ActivityKind = "behavior_journal.added"
)

type Activity struct {
	Base
	Kind      ActivityKind `db:"kind" json:"kind"`
	PatientID *uuid.UUID   `db:"patient_id" json:"patient_id,omitempty"`
	Message   string       `db:"message" json:"message"`
}
