package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment dates are YYYY-MM-DD and times HH:MM on the wire and in queries.
type Appointment struct {
	Base
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	PatientName string            `db:"patient_name" json:"patient_name"`
	Date        string            `db:"date" json:"date"`
	Time        string            `db:"time" json:"time"`
	Duration    int               `db:"duration" json:"duration"`
	Type        string            `db:"type" json:"type"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Reason      string            `db:"reason" json:"reason"`
}

type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required,date"`
	Time      string `json:"time" binding:"required,clock"`
	Duration  int    `json:"duration" binding:"min=0"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

type AppointmentFilters struct {
	Date string
}
