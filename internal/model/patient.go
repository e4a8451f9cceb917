package model

import (
	"time"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	Name      string    `db:"name" json:"name"`
	Age       *int      `db:"age" json:"age"`
	Gender    string    `db:"gender" json:"gender"`
	Condition string    `db:"condition" json:"condition"`
	Status    string    `db:"status" json:"status"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PatientRequest is the body of both create and update.
type PatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Age       *int   `json:"age" binding:"omitempty,min=0"`
	Gender    string `json:"gender"`
	Condition string `json:"condition"`
	Status    string `json:"status"`
}
