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

	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/pkg/database"
)

type IUserRepository interface {
	GetByUsername(username string) (*model.User, error)
	GetById(id int64) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	// Register inserts the user and its role bindings in one transaction.
	Register(user *model.User, roleIds []int64) error
	// Update applies the field map and, when replaceRoles is set, swaps all
	// role bindings for the ones resolved from roleCodes, atomically.
	Update(id int64, fields map[string]any, roleCodes []string, replaceRoles bool) error
	// Delete removes the user and its role bindings in one transaction.
	Delete(id int64) error
	// Import inserts a whole batch of users with their role binding in a
	// single transaction. Any failure rolls back the entire file.
	Import(rows []ImportRow) error
	List() ([]model.UserWithRoles, error)
	SearchPage(page, size int) ([]model.User, error)
	SearchVague(username string) ([]model.User, error)
}

type UserRepo struct {
	db database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{db: db}
}

func (ur *UserRepo) GetByUsername(username string) (*model.User, error) {
	var u model.User
	err := ur.db.Database().Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) GetById(id int64) (*model.User, error) {
	var u model.User
	err := ur.db.Database().Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := ur.db.Database().Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count user by username")
	}
	return count > 0, nil
}

func (ur *UserRepo) Register(user *model.User, roleIds []int64) error {
	return ur.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return errors.Wrap(err, "insert user")
		}
		for _, roleId := range roleIds {
			binding := model.UserRole{UserId: user.Id, RoleId: roleId}
			if err := tx.Create(&binding).Error; err != nil {
				return errors.Wrap(err, "insert user role")
			}
		}
		return nil
	})
}

func (ur *UserRepo) Update(id int64, fields map[string]any, roleCodes []string, replaceRoles bool) error {
	return ur.db.Database().Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return errors.Wrap(err, "update user")
			}
		}

		if !replaceRoles {
			return nil
		}

		// wholesale replace: drop all bindings, reinsert from codes
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return errors.Wrap(err, "delete user roles")
		}
		if len(roleCodes) == 0 {
			return nil
		}
		var roles []model.Role
		if err := tx.Where("code IN ?", roleCodes).Find(&roles).Error; err != nil {
			return errors.Wrap(err, "resolve role codes")
		}
		for _, role := range roles {
			binding := model.UserRole{UserId: id, RoleId: role.Id}
			if err := tx.Create(&binding).Error; err != nil {
				return errors.Wrap(err, "insert user role")
			}
		}
		return nil
	})
}

func (ur *UserRepo) Delete(id int64) error {
	return ur.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return errors.Wrap(err, "delete user roles")
		}
		if err := tx.Where("id = ?", id).Delete(&model.User{}).Error; err != nil {
			return errors.Wrap(err, "delete user")
		}
		return nil
	})
}

// ImportRow pairs a user to insert with the role it lands in.
type ImportRow struct {
	User   model.User
	RoleId int64
}

func (ur *UserRepo) Import(rows []ImportRow) error {
	return ur.db.Database().Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i].User).Error; err != nil {
				return errors.Wrapf(err, "insert imported user %s", rows[i].User.Username)
			}
			binding := model.UserRole{UserId: rows[i].User.Id, RoleId: rows[i].RoleId}
			if err := tx.Create(&binding).Error; err != nil {
				return errors.Wrapf(err, "insert imported user role %s", rows[i].User.Username)
			}
		}
		return nil
	})
}

func (ur *UserRepo) List() ([]model.UserWithRoles, error) {
	var users []model.User
	if err := ur.db.Database().Order("id ASC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	type bindingRow struct {
		UserId int64
		Code   string
	}
	var bindings []bindingRow
	err := ur.db.Database().
		Table("user_roles ur").
		Select("ur.user_id AS user_id, r.code AS code").
		Joins("JOIN roles r ON ur.role_id = r.id").
		Scan(&bindings).Error
	if err != nil {
		return nil, errors.Wrap(err, "list user role codes")
	}

	codesByUser := make(map[int64][]string, len(users))
	for _, b := range bindings {
		codesByUser[b.UserId] = append(codesByUser[b.UserId], b.Code)
	}

	result := make([]model.UserWithRoles, 0, len(users))
	for _, u := range users {
		roles := codesByUser[u.Id]
		if roles == nil {
			roles = []string{}
		}
		result = append(result, model.UserWithRoles{User: u, Roles: roles})
	}
	return result, nil
}

func (ur *UserRepo) SearchPage(page, size int) ([]model.User, error) {
	var users []model.User
	offset := (page - 1) * size
	err := ur.db.Database().Order("id ASC").Limit(size).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "search users by page")
	}
	return users, nil
}

func (ur *UserRepo) SearchVague(username string) ([]model.User, error) {
	var users []model.User
	err := ur.db.Database().Where("username LIKE ?", "%"+username+"%").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "search users by username")
	}
	return users, nil
}
