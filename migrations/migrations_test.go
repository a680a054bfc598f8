package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

func newRunner(t *testing.T) (*Runner, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRunner(wrapped, txmanager.NewTransactionManager(wrapped), logger.NewDiscard()), mock
}

func TestApplySkipsAppliedVersions(t *testing.T) {
	r, mock := newRunner(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).
			AddRow("0001_accounts.sql").
			AddRow("0002_parking.sql"))

	for _, step := range []struct{ name, marker string }{
		{"0003_bookings.sql", "CREATE TABLE IF NOT EXISTS bookings"},
		{"0004_notifications_reports.sql", "CREATE TABLE IF NOT EXISTS notifications"},
	} {
		mock.ExpectBegin()
		mock.ExpectExec(step.marker).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(step.name).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	done, err := r.Apply(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"0003_bookings.sql", "0004_notifications_reports.sql"}, done)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	r, mock := newRunner(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	done, err := r.Apply(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMigration))
	assert.Empty(t, done)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFailsWhenVersionsTableCannotBeCreated(t *testing.T) {
	r, mock := newRunner(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnError(errors.New("permission denied"))

	_, err := r.Apply(context.Background())

	assert.True(t, errors.Is(err, ErrMigration))
	assert.NoError(t, mock.ExpectationsWereMet())
}
