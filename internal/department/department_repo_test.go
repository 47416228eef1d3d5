package department_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrms/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock, db
}

func TestDepartmentRepository_WithTxUsesTransactionConnection(t *testing.T) {
	gormDB, poolMock, poolDB := openGormOverMock(t)
	defer poolDB.Close()

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	companyID := uuid.New().String()
	id := uuid.New().String()

	txMock.ExpectBegin()
	txMock.ExpectQuery(`SELECT count\(\*\) FROM "employees"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	txMock.ExpectQuery(`SELECT count\(\*\) FROM "departments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	txMock.ExpectExec(`UPDATE "departments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	qtx := department.NewRepository(gormDB).WithTx(tx)

	employees, err := qtx.CountEmployees(context.Background(), companyID, id)
	assert.NoError(t, err)
	assert.Zero(t, employees)

	children, err := qtx.CountChildren(context.Background(), companyID, id)
	assert.NoError(t, err)
	assert.Zero(t, children)

	err = qtx.Delete(context.Background(), companyID, id)
	assert.NoError(t, err)

	assert.NoError(t, tx.Rollback())

	// The dependency re-check and the delete must land on the tx connection;
	// the pooled handle stays untouched.
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
