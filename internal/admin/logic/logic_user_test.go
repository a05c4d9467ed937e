package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	httpx "github.com/go-atrium/atrium/pkg/http"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func newUserLogicForTest(users *stubUserRepo) (*UserLogic, *stubLogRepo) {
	lr := newStubLogRepo()
	tctx := newTestCtx()
	return NewUserLogic(tctx, users, NewOperationLogLogic(tctx, lr)), lr
}

func testActor() Actor {
	return Actor{Id: 1, Name: "Admin"}
}

func TestUpdateUserEmptyRequest(t *testing.T) {
	users := &stubUserRepo{byId: map[int64]*model.User{5: {Id: 5, Username: "alice"}}}
	ul, _ := newUserLogicForTest(users)

	err := ul.UpdateUser(5, &model.UpdateUserReq{}, testActor(), "10.0.0.1")

	assert.ErrorIs(t, err, httpx.BadRequest)
}

func TestUpdateUserMissing(t *testing.T) {
	ul, _ := newUserLogicForTest(&stubUserRepo{})

	err := ul.UpdateUser(5, &model.UpdateUserReq{Name: strPtr("X")}, testActor(), "10.0.0.1")

	assert.ErrorIs(t, err, httpx.UserNotExist)
}

func TestUpdateUserCarriesStatusZero(t *testing.T) {
	users := &stubUserRepo{byId: map[int64]*model.User{5: {Id: 5, Username: "alice"}}}
	ul, lr := newUserLogicForTest(users)

	err := ul.UpdateUser(5, &model.UpdateUserReq{Status: intPtr(0)}, testActor(), "10.0.0.1")

	require.NoError(t, err)
	require.Contains(t, users.updatedFields, "status")
	assert.Equal(t, 0, users.updatedFields["status"])
	assert.False(t, users.replacedRoles)

	entry := awaitEntry(t, lr)
	assert.Equal(t, consts.OperationUpdate, entry.Action)
	assert.Contains(t, entry.Content, "status")
}

func TestUpdateUserReplacesRoles(t *testing.T) {
	users := &stubUserRepo{byId: map[int64]*model.User{5: {Id: 5, Username: "alice"}}}
	ul, lr := newUserLogicForTest(users)

	roles := []string{"admin"}
	err := ul.UpdateUser(5, &model.UpdateUserReq{Roles: &roles}, testActor(), "10.0.0.1")

	require.NoError(t, err)
	assert.True(t, users.replacedRoles)
	assert.Equal(t, []string{"admin"}, users.updatedRoles)

	entry := awaitEntry(t, lr)
	assert.Contains(t, entry.Content, "roles")
}

func TestUpdateUserClearsRolesWithEmptyList(t *testing.T) {
	users := &stubUserRepo{byId: map[int64]*model.User{5: {Id: 5, Username: "alice"}}}
	ul, _ := newUserLogicForTest(users)

	roles := []string{}
	err := ul.UpdateUser(5, &model.UpdateUserReq{Roles: &roles}, testActor(), "10.0.0.1")

	require.NoError(t, err)
	assert.True(t, users.replacedRoles)
	assert.Empty(t, users.updatedRoles)
}

func TestUpdateUserRejectsEmptyUsername(t *testing.T) {
	users := &stubUserRepo{byId: map[int64]*model.User{5: {Id: 5, Username: "alice"}}}
	ul, _ := newUserLogicForTest(users)

	err := ul.UpdateUser(5, &model.UpdateUserReq{Username: strPtr("")}, testActor(), "10.0.0.1")

	assert.ErrorIs(t, err, httpx.UsernameIsRequired)
}

func TestDeleteUser(t *testing.T) {
	users := &stubUserRepo{byId: map[int64]*model.User{5: {Id: 5, Username: "alice"}}}
	ul, lr := newUserLogicForTest(users)

	err := ul.DeleteUser(5, testActor(), "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), users.deletedId)

	entry := awaitEntry(t, lr)
	assert.Equal(t, consts.OperationDelete, entry.Action)
	assert.Contains(t, entry.Content, "alice")
	require.NotNil(t, entry.TargetId)
	assert.Equal(t, int64(5), *entry.TargetId)
}

func TestDeleteUserMissing(t *testing.T) {
	ul, _ := newUserLogicForTest(&stubUserRepo{})

	err := ul.DeleteUser(404, testActor(), "10.0.0.1")

	assert.ErrorIs(t, err, httpx.UserNotExist)
}

func TestSearchVagueRequiresUsername(t *testing.T) {
	ul, _ := newUserLogicForTest(&stubUserRepo{})

	_, err := ul.SearchVague(&model.SearchVagueReq{})

	assert.ErrorIs(t, err, httpx.UsernameIsRequired)
}
