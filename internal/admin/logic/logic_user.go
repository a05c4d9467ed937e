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
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/http"
)

type UserLogic struct {
	ctx      *ctx.Context
	userRepo repo.IUserRepository
	audit    *OperationLogLogic
}

func NewUserLogic(ctx *ctx.Context, userRepo repo.IUserRepository, audit *OperationLogLogic) *UserLogic {
	return &UserLogic{
		ctx:      ctx,
		userRepo: userRepo,
		audit:    audit,
	}
}

// UpdateUser applies a partial update. Only fields present in the request
// are written; a role list replaces all bindings in the same transaction.
// The audit entry names the changed field set.
func (ul *UserLogic) UpdateUser(id int64, req *model.UpdateUserReq, actor Actor, ip string) error {
	if req.Username != nil && *req.Username == "" {
		return http.UsernameIsRequired
	}

	if _, err := ul.userRepo.GetById(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.UserNotExist
		}
		return err
	}

	fields, changed := req.Fields()
	replaceRoles := req.Roles != nil
	var roleCodes []string
	if replaceRoles {
		roleCodes = *req.Roles
	}
	if len(fields) == 0 && !replaceRoles {
		return http.BadRequest
	}

	if err := ul.userRepo.Update(id, fields, roleCodes, replaceRoles); err != nil {
		return err
	}

	sort.Strings(changed)
	if replaceRoles {
		changed = append(changed, "roles")
	}
	ul.audit.Record(actor, consts.OperationUpdate, consts.ModuleUser,
		&id, "user", fmt.Sprintf("updated fields [%s]", strings.Join(changed, ",")), ip)
	return nil
}

// DeleteUser removes the user and its role bindings in one transaction.
func (ul *UserLogic) DeleteUser(id int64, actor Actor, ip string) error {
	user, err := ul.userRepo.GetById(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.UserNotExist
		}
		return err
	}

	if err := ul.userRepo.Delete(id); err != nil {
		return err
	}

	ul.audit.Record(actor, consts.OperationDelete, consts.ModuleUser,
		&id, "user", fmt.Sprintf("deleted user %s", user.Username), ip)
	return nil
}

func (ul *UserLogic) GetUserList() ([]model.UserWithRoles, error) {
	return ul.userRepo.List()
}

func (ul *UserLogic) SearchPage(req *model.SearchPageReq) ([]model.User, error) {
	return ul.userRepo.SearchPage(req.Page, req.Size)
}

func (ul *UserLogic) SearchVague(req *model.SearchVagueReq) ([]model.User, error) {
	if req.Username == "" {
		return nil, http.UsernameIsRequired
	}
	return ul.userRepo.SearchVague(req.Username)
}
