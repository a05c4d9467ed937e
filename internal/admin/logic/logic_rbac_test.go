package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
)

func newRbacLogicForTest(roles *stubRoleRepo, perms *stubPermRepo) (*RbacLogic, *stubLogRepo) {
	lr := newStubLogRepo()
	tctx := newTestCtx()
	return NewRbacLogic(tctx, roles, perms, NewOperationLogLogic(tctx, lr)), lr
}

func rootId(id int64) *int64 { return &id }

func TestListRolesWithPermissions(t *testing.T) {
	roles := &stubRoleRepo{
		roles: []model.Role{
			{Id: 1, Name: "管理员", Code: "admin", Status: 1},
			{Id: 2, Name: "普通用户", Code: "common", Status: 1},
		},
		permCodes: map[int64][]string{
			1: {"user:add", "user:delete"},
		},
	}
	perms := &stubPermRepo{perms: []model.Permission{
		{Id: 1, Code: "system", ParentId: nil},
		{Id: 2, Code: "user:add", ParentId: rootId(1)},
		{Id: 3, Code: "user:delete", ParentId: rootId(1)},
	}}
	rl, _ := newRbacLogicForTest(roles, perms)

	overview, err := rl.ListRolesWithPermissions()

	require.NoError(t, err)
	require.Len(t, overview.Roles, 2)
	assert.Equal(t, []string{"user:add", "user:delete"}, overview.Roles[0].Permissions)
	// a role with no bindings gets an empty list, not null
	assert.NotNil(t, overview.Roles[1].Permissions)
	assert.Empty(t, overview.Roles[1].Permissions)

	require.Len(t, overview.PermissionTree, 1)
	assert.Len(t, overview.PermissionTree[0].Children, 2)
}

func TestUpdateRolePermissionsAuditsKeptCodes(t *testing.T) {
	roles := &stubRoleRepo{kept: []string{"user:add", "user:delete"}}
	rl, lr := newRbacLogicForTest(roles, &stubPermRepo{})

	kept, err := rl.UpdateRolePermissions(3, []string{"user:add", "user:delete", "ghost"}, Actor{Id: 1, Name: "Admin"}, "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, []string{"user:add", "user:delete"}, kept)
	assert.Equal(t, int64(3), roles.replacedFor)

	entry := awaitEntry(t, lr)
	assert.Equal(t, consts.OperationUpdate, entry.Action)
	assert.Equal(t, consts.ModuleRole, entry.Module)
	assert.Contains(t, entry.Content, "user:add,user:delete")
}

func TestUpdateRolePermissionsAuditsClearedAll(t *testing.T) {
	roles := &stubRoleRepo{}
	rl, lr := newRbacLogicForTest(roles, &stubPermRepo{})

	kept, err := rl.UpdateRolePermissions(3, nil, Actor{Id: 1, Name: "Admin"}, "10.0.0.1")

	require.NoError(t, err)
	assert.Empty(t, kept)

	entry := awaitEntry(t, lr)
	assert.Equal(t, "cleared all permissions", entry.Content)
}
