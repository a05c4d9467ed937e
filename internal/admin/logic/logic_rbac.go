// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logic

import (
	"fmt"
	"strings"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
)

// RbacLogic assembles the role and permission views and applies
// role-permission replacements.
type RbacLogic struct {
	ctx      *ctx.Context
	roleRepo repo.IRoleRepository
	permRepo repo.IPermissionRepository
	audit    *OperationLogLogic
}

func NewRbacLogic(ctx *ctx.Context, roleRepo repo.IRoleRepository,
	permRepo repo.IPermissionRepository, audit *OperationLogLogic) *RbacLogic {
	return &RbacLogic{
		ctx:      ctx,
		roleRepo: roleRepo,
		permRepo: permRepo,
		audit:    audit,
	}
}

// RolesOverview is the admin role screen payload: every enabled role with
// its flat permission code list, plus the full permission tree.
type RolesOverview struct {
	Roles          []model.RoleWithPermissions `json:"roles"`
	PermissionTree []*model.PermissionNode     `json:"permissionTree"`
}

func (rl *RbacLogic) ListRolesWithPermissions() (*RolesOverview, error) {
	roles, err := rl.roleRepo.ListEnabled()
	if err != nil {
		return nil, err
	}

	withPerms := make([]model.RoleWithPermissions, 0, len(roles))
	for _, role := range roles {
		codes, err := rl.roleRepo.PermissionCodes(role.Id)
		if err != nil {
			return nil, err
		}
		withPerms = append(withPerms, model.RoleWithPermissions{Role: role, Permissions: codes})
	}

	perms, err := rl.permRepo.ListEnabled()
	if err != nil {
		return nil, err
	}

	return &RolesOverview{
		Roles:          withPerms,
		PermissionTree: model.BuildPermissionTree(perms),
	}, nil
}

func (rl *RbacLogic) ListUserPermissions(username string) ([]string, error) {
	return rl.permRepo.CodesByUsername(username)
}

// UpdateRolePermissions replaces the role's whole permission set in one
// transaction. Unknown codes are dropped silently; an empty list clears
// the role. Exactly one audit entry is written either way.
func (rl *RbacLogic) UpdateRolePermissions(roleId int64, codes []string, actor Actor, ip string) ([]string, error) {
	kept, err := rl.roleRepo.ReplacePermissions(roleId, codes)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("replaced permissions with [%s]", strings.Join(kept, ","))
	if len(kept) == 0 {
		content = "cleared all permissions"
	}
	rl.audit.Record(actor, consts.OperationUpdate, consts.ModuleRole,
		&roleId, "role", content, ip)
	return kept, nil
}
