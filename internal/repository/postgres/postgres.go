package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/doctor-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type emergencyRepository struct {
	db *sqlx.DB
}

type dashboardRepository struct {
	db *sqlx.DB
}

type activityRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewEmergencyRepository(db *sqlx.DB) repository.EmergencyRepository {
	return &emergencyRepository{db: db}
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func NewActivityRepository(db *sqlx.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}
