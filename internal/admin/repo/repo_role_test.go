package repo

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepoReplacePermissionsEmptyClears(t *testing.T) {
	db, mock := newMockDB(t)
	rr := NewRoleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `role_permissions` WHERE role_id = \\?").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	kept, err := rr.ReplacePermissions(3, nil)

	require.NoError(t, err)
	assert.Empty(t, kept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepoReplacePermissionsDropsUnknownCodes(t *testing.T) {
	db, mock := newMockDB(t)
	rr := NewRoleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `role_permissions` WHERE role_id = \\?").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `permissions` WHERE code IN").
		WithArgs("user:add", "no:such:code", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status"}).
			AddRow(11, "user:add", 1))
	mock.ExpectExec("INSERT INTO `role_permissions`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	kept, err := rr.ReplacePermissions(3, []string{"user:add", "no:such:code"})

	require.NoError(t, err)
	assert.Equal(t, []string{"user:add"}, kept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepoReplacePermissionsRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	rr := NewRoleRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `role_permissions` WHERE role_id = \\?").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `permissions` WHERE code IN").
		WithArgs("user:add", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status"}).
			AddRow(11, "user:add", 1))
	mock.ExpectExec("INSERT INTO `role_permissions`").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := rr.ReplacePermissions(3, []string{"user:add"})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepoPermissionCodes(t *testing.T) {
	db, mock := newMockDB(t)
	rr := NewRoleRepo(db)

	mock.ExpectQuery("SELECT p.code FROM").
		WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"code"}).
			AddRow("user:add").
			AddRow("user:delete"))

	codes, err := rr.PermissionCodes(3)

	require.NoError(t, err)
	assert.Equal(t, []string{"user:add", "user:delete"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepoPermissionCodesEmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	rr := NewRoleRepo(db)

	mock.ExpectQuery("SELECT p.code FROM").
		WithArgs(int64(9), 1).
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	codes, err := rr.PermissionCodes(9)

	require.NoError(t, err)
	assert.NotNil(t, codes)
	assert.Empty(t, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
