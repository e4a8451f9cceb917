package model

import (
	"time"

	"github.com/google/uuid"
)

// CrisisProtocol is unique per patient.
type CrisisProtocol struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	CalmSpace       string    `db:"calm_space" json:"calm_space"`
	SoothingObject  string    `db:"soothing_object" json:"soothing_object"`
	OtherStrategies string    `db:"other_strategies" json:"other_strategies"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type EmergencyContact struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Relation  string    `db:"relation" json:"relation"`
}

type BehaviorJournalEntry struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	Trigger   string    `db:"trigger" json:"trigger"`
	Solution  string    `db:"solution" json:"solution"`
	Duration  string    `db:"duration" json:"duration"`
}

// EmergencyProfile is the composite read model of one patient's emergency data.
type EmergencyProfile struct {
	CrisisProtocol    *CrisisProtocol         `json:"crisisProtocol"`
	EmergencyContacts []*EmergencyContact     `json:"emergencyContacts"`
	BehaviorJournal   []*BehaviorJournalEntry `json:"behaviorJournal"`
}

type CrisisProtocolRequest struct {
	CalmSpace       string `json:"calm_space"`
	SoothingObject  string `json:"soothing_object"`
	OtherStrategies string `json:"other_strategies"`
}

type EmergencyContactRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Relation string `json:"relation"`
}

// BehaviorJournalRequest accepts "event_date" and, as a fallback, "date".
type BehaviorJournalRequest struct {
	EventDate string `json:"event_date"`
	Date      string `json:"date"`
	Trigger   string `json:"trigger" binding:"required"`
	Solution  string `json:"solution" binding:"required"`
	Duration  string `json:"duration"`
}
