package model

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStats struct {
	AppointmentsToday   int `db:"appointments_today" json:"appointmentsToday"`
	PendingAppointments int `db:"pending_appointments" json:"pendingAppointments"`
	ActivePatients      int `db:"active_patients" json:"activePatients"`
	SatisfactionRate    int `db:"-" json:"satisfactionRate"`

	CompletedAppointments int `db:"completed_appointments" json:"-"`
	CancelledAppointments int `db:"cancelled_appointments" json:"-"`
}

type UpcomingAppointment struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Patient string    `db:"patient" json:"patient"`
	Date    string    `db:"date" json:"date"`
	Time    string    `db:"time" json:"time"`
	Type    string    `db:"type" json:"type"`
	Status  string    `db:"status" json:"status"`
}

type Alert struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Priority  string    `db:"priority" json:"priority"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Dashboard struct {
	Stats                DashboardStats         `json:"stats"`
	UpcomingAppointments []*UpcomingAppointment `json:"upcomingAppointments"`
	Alerts               []*Alert               `json:"alerts"`
	RecentActivities     []*Activity            `json:"recentActivities"`
}
