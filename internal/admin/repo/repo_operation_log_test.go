package repo

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
)

func TestOperationLogRepoAppend(t *testing.T) {
	db, mock := newMockDB(t)
	or := NewOperationLogRepo(db)

	mock.ExpectExec("INSERT INTO `operation_logs`").WillReturnResult(sqlmock.NewResult(1, 1))

	operatorId := int64(7)
	entry := &model.OperationLog{
		OperatorId:   &operatorId,
		OperatorName: "Alice",
		Action:       consts.OperationLogin,
		Module:       consts.ModuleAuth,
		Content:      "login succeeded",
		Ip:           "10.0.0.1",
	}
	require.NoError(t, or.Append(entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationLogRepoList(t *testing.T) {
	db, mock := newMockDB(t)
	or := NewOperationLogRepo(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `operation_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(42))
	mock.ExpectQuery("SELECT \\* FROM `operation_logs` ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "operator_name", "action", "module"}).
			AddRow(42, "Alice", "LOGIN", "AUTH").
			AddRow(41, "Bob", "DELETE", "USER"))

	entries, count, err := or.List(1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(42), entries[0].Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
