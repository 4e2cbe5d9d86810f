package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/repository"
)

func newSessionRepoWithMock(t *testing.T) (repository.ParkingSessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPgParkingSessionRepository(db), mock
}

func TestCreateSession(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	now := time.Now().UTC()
	entry := now.Add(-5 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO parking_sessions`)).
		WithArgs("abc-123", "KA01AB1234", 2, entry,
			string(domain.SessionActive), string(domain.BillingHourly), 0.0, 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	session := &domain.ParkingSession{
		SessionID:          "abc-123",
		VehicleNumberPlate: "KA01AB1234",
		SlotID:             2,
		EntryTime:          entry,
		Status:             domain.SessionActive,
		BillingType:        domain.BillingHourly,
	}
	created, err := repo.Create(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveByPlate(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "session_id", "vehicle_number_plate", "slot_id", "entry_time", "exit_time",
		"status", "billing_type", "fixed_amount", "calculated_amount", "created_at", "updated_at",
	}).AddRow(7, "abc-123", "KA01AB1234", 2, now.Add(-time.Hour), nil,
		"Active", "Hourly", 0.0, 0.0, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE vehicle_number_plate = $1 AND status = $2`)).
		WithArgs("KA01AB1234", string(domain.SessionActive)).
		WillReturnRows(rows)

	session, err := repo.FindActiveByPlate(context.Background(), "KA01AB1234")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", session.SessionID)
	assert.Equal(t, 2, session.SlotID)
	assert.False(t, session.ExitTime.Valid)
}

func TestFindActiveByPlateNoSession(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE vehicle_number_plate = $1 AND status = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindActiveByPlate(context.Background(), "KA01AB1234")
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)
}

func TestCompleteSession(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SET exit_time = $1, status = $2, calculated_amount = $3`)).
		WithArgs(sqlmock.AnyArg(), string(domain.SessionCompleted), 100.0, 7).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	session := &domain.ParkingSession{
		ID:          7,
		ExitTime:    null.TimeFrom(now),
		Status:      domain.SessionCompleted,
		BillingType: domain.BillingHourly,
	}
	session.BillingAmount.Calculated = 100

	_, err := repo.Complete(context.Background(), session)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteSessionNotFound(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SET exit_time = $1, status = $2, calculated_amount = $3`)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	_, err := repo.Complete(context.Background(), &domain.ParkingSession{ID: 999})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindCompleted(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "session_id", "vehicle_number_plate", "slot_id", "entry_time", "exit_time",
		"status", "billing_type", "fixed_amount", "calculated_amount", "created_at", "updated_at",
	}).
		AddRow(1, "a", "KA01AB1234", 2, now.Add(-3*time.Hour), now.Add(-time.Hour),
			"Completed", "Hourly", 0.0, 100.0, now, now).
		AddRow(2, "b", "MH12X9999", 3, now.Add(-8*time.Hour), now.Add(-2*time.Hour),
			"Completed", "Day Pass", 150.0, 0.0, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1`)).
		WithArgs(string(domain.SessionCompleted)).
		WillReturnRows(rows)

	sessions, err := repo.FindCompleted(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 100.0, sessions[0].BillingAmount.Calculated)
	assert.Equal(t, 150.0, sessions[1].BillingAmount.Fixed)
	assert.True(t, sessions[0].ExitTime.Valid)
}
