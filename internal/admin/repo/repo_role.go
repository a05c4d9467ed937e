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

package repo

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/pkg/database"
)

type IRoleRepository interface {
	ListEnabled() ([]model.Role, error)
	GetByCode(code string) (*model.Role, error)
	GetByName(name string) (*model.Role, error)
	GetByCodes(codes []string) ([]model.Role, error)
	// PermissionCodes returns the enabled permission codes bound to the role,
	// ordered by permission id.
	PermissionCodes(roleId int64) ([]string, error)
	// CodesByUserId returns the enabled role codes bound to the user.
	CodesByUserId(userId int64) ([]string, error)
	// ReplacePermissions swaps every binding of the role for the enabled
	// permissions resolved from codes, in one transaction. Unknown or
	// disabled codes are dropped. It returns the codes actually bound.
	ReplacePermissions(roleId int64, codes []string) ([]string, error)
}

type RoleRepo struct {
	db database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{db: db}
}

func (rr *RoleRepo) ListEnabled() ([]model.Role, error) {
	var roles []model.Role
	err := rr.db.Database().Where("status = ?", consts.StatusEnabled).Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "list roles")
	}
	return roles, nil
}

func (rr *RoleRepo) GetByCode(code string) (*model.Role, error) {
	var role model.Role
	err := rr.db.Database().Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (rr *RoleRepo) GetByName(name string) (*model.Role, error) {
	var role model.Role
	err := rr.db.Database().Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (rr *RoleRepo) GetByCodes(codes []string) ([]model.Role, error) {
	var roles []model.Role
	if len(codes) == 0 {
		return roles, nil
	}
	err := rr.db.Database().Where("code IN ?", codes).Find(&roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "resolve role codes")
	}
	return roles, nil
}

func (rr *RoleRepo) PermissionCodes(roleId int64) ([]string, error) {
	var codes []string
	err := rr.db.Database().
		Table("role_permissions rp").
		Select("p.code").
		Joins("JOIN permissions p ON rp.permission_id = p.id").
		Where("rp.role_id = ? AND p.status = ?", roleId, consts.StatusEnabled).
		Order("p.id ASC").
		Scan(&codes).Error
	if err != nil {
		return nil, errors.Wrap(err, "list role permission codes")
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}

func (rr *RoleRepo) CodesByUserId(userId int64) ([]string, error) {
	var codes []string
	err := rr.db.Database().
		Table("user_roles ur").
		Select("r.code").
		Joins("JOIN roles r ON ur.role_id = r.id").
		Where("ur.user_id = ? AND r.status = ?", userId, consts.StatusEnabled).
		Order("r.id ASC").
		Scan(&codes).Error
	if err != nil {
		return nil, errors.Wrap(err, "list role codes by user")
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}

func (rr *RoleRepo) ReplacePermissions(roleId int64, codes []string) ([]string, error) {
	kept := []string{}
	err := rr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleId).Delete(&model.RolePermission{}).Error; err != nil {
			return errors.Wrap(err, "delete role permissions")
		}
		if len(codes) == 0 {
			return nil
		}
		var perms []model.Permission
		err := tx.Where("code IN ? AND status = ?", codes, consts.StatusEnabled).
			Order("id ASC").
			Find(&perms).Error
		if err != nil {
			return errors.Wrap(err, "resolve permission codes")
		}
		for _, p := range perms {
			binding := model.RolePermission{RoleId: roleId, PermissionId: p.Id}
			if err := tx.Create(&binding).Error; err != nil {
				return errors.Wrap(err, "insert role permission")
			}
			kept = append(kept, p.Code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kept, nil
}
