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

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/pkg/database"
)

type IPermissionRepository interface {
	ListEnabled() ([]model.Permission, error)
	// CodesByUsername walks user -> roles -> permissions and returns the
	// distinct enabled permission codes, ordered by permission id.
	CodesByUsername(username string) ([]string, error)
}

type PermissionRepo struct {
	db database.IDatabase
}

func NewPermissionRepo(db database.IDatabase) IPermissionRepository {
	return &PermissionRepo{db: db}
}

func (pr *PermissionRepo) ListEnabled() ([]model.Permission, error) {
	var perms []model.Permission
	err := pr.db.Database().Where("status = ?", consts.StatusEnabled).Order("id ASC").Find(&perms).Error
	if err != nil {
		return nil, errors.Wrap(err, "list permissions")
	}
	return perms, nil
}

func (pr *PermissionRepo) CodesByUsername(username string) ([]string, error) {
	var rows []string
	err := pr.db.Database().
		Table("users u").
		Select("p.code").
		Joins("JOIN user_roles ur ON u.id = ur.user_id").
		Joins("JOIN roles r ON ur.role_id = r.id").
		Joins("JOIN role_permissions rp ON r.id = rp.role_id").
		Joins("JOIN permissions p ON rp.permission_id = p.id").
		Where("u.username = ? AND r.status = ? AND p.status = ?",
			username, consts.StatusEnabled, consts.StatusEnabled).
		Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list permission codes by username")
	}

	// a code can reach the user through several roles, keep the first hit
	codes := []string{}
	seen := make(map[string]struct{}, len(rows))
	for _, code := range rows {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}
