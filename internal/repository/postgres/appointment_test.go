package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/doctor-api/internal/model"
)

var appointmentCols = []string{"id", "patient_id", "patient_name", "date", "time", "duration", "type", "status", "reason", "created_at"}

func TestAppointmentListWithDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db)
	patientID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.date = $1::date ORDER BY a.date ASC, a.time ASC")).
		WithArgs("2024-05-02").
		WillReturnRows(sqlmock.NewRows(appointmentCols).
			AddRow(uuid.NewString(), patientID.String(), "Alice", "2024-05-02", "09:30", 30, "consultation", "scheduled", "", time.Now()))

	list, err := repo.List(context.Background(), model.AppointmentFilters{Date: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].PatientName)
	assert.Equal(t, "09:30", list[0].Time)
	assert.Equal(t, model.AppointmentStatusScheduled, list[0].Status)
}

func TestAppointmentListAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.date ASC, a.time ASC")).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows(appointmentCols))

	list, err := repo.List(context.Background(), model.AppointmentFilters{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppointmentCreateReturnsJoinedRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db)

	a := &model.Appointment{
		Base:      model.Base{ID: uuid.New(), CreatedAt: time.Now()},
		PatientID: uuid.New(),
		Date:      "2024-05-02",
		Time:      "14:00",
		Duration:  45,
		Type:      "follow-up",
		Status:    model.AppointmentStatusScheduled,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WithArgs(a.ID, a.PatientID, "2024-05-02", "14:00", 45, "follow-up", model.AppointmentStatusScheduled, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(appointmentCols).
			AddRow(a.ID.String(), a.PatientID.String(), "Alice", "2024-05-02", "14:00", 45, "follow-up", "scheduled", "", time.Now()))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, "Alice", a.PatientName)
}
