package repo

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-atrium/atrium/internal/admin/model"
)

func TestUserRepoRegisterCommits(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `user_roles`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &model.User{Username: "alice", Name: "Alice", Password: "hash", Status: 1}
	err := ur.Register(user, []int64{2})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoRegisterRollsBackOnBindingFailure(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `user_roles`").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	user := &model.User{Username: "alice", Name: "Alice", Password: "hash", Status: 1}
	err := ur.Register(user, []int64{2})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoDeleteCommits(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `user_roles` WHERE user_id = \\?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `users` WHERE id = \\?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ur.Delete(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoDeleteRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `user_roles` WHERE user_id = \\?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `users` WHERE id = \\?").
		WithArgs(int64(5)).
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	require.Error(t, ur.Delete(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateWritesStatusZero(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ur.Update(5, map[string]any{"status": 0}, nil, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateReplacesRoles(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `user_roles` WHERE user_id = \\?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `roles` WHERE code IN").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "status"}).
			AddRow(1, "管理员", "admin", 1))
	mock.ExpectExec("INSERT INTO `user_roles`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := ur.Update(5, nil, []string{"admin"}, true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateClearsRolesOnEmptyList(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `user_roles` WHERE user_id = \\?").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ur.Update(5, nil, nil, true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoListAggregatesRoleCodes(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `users` ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "status"}).
			AddRow(1, "alice", "Alice", 1).
			AddRow(2, "bob", "Bob", 1))
	mock.ExpectQuery("SELECT ur.user_id AS user_id, r.code AS code FROM").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "code"}).
			AddRow(1, "admin").
			AddRow(1, "common"))

	users, err := ur.List()

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, []string{"admin", "common"}, users[0].Roles)
	// a user with no bindings still serializes as [] rather than null
	assert.NotNil(t, users[1].Roles)
	assert.Empty(t, users[1].Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	ur := NewUserRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := ur.GetByUsername("ghost")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
