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
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
)

// sheet columns: 0 name, 1 工号 (username), 2 password, 3 role name, 4 department
const importColumns = 5

type ExcelLogic struct {
	ctx      *ctx.Context
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository
	audit    *OperationLogLogic
}

func NewExcelLogic(ctx *ctx.Context, userRepo repo.IUserRepository,
	roleRepo repo.IRoleRepository, audit *OperationLogLogic) *ExcelLogic {
	return &ExcelLogic{
		ctx:      ctx,
		userRepo: userRepo,
		roleRepo: roleRepo,
		audit:    audit,
	}
}

// ImportResult reports a bulk import back to the admin screen.
type ImportResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Error   int      `json:"error"`
	Errors  []string `json:"errors"`
}

// ImportUsers reads an xlsx sheet of users and inserts the valid rows in
// one transaction. Rows failing validation are reported per row and do
// not block the rest of the file; a database failure rolls back all of it.
func (el *ExcelLogic) ImportUsers(r io.Reader, actor Actor, ip string) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, http.BadRequest
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("close workbook: %v", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, http.BadRequest
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, http.BadRequest
	}
	if len(rows) <= 1 {
		return nil, http.BadRequest
	}
	rows = rows[1:] // header

	result := &ImportResult{Total: len(rows), Errors: []string{}}
	roleIds := map[string]int64{} // role name -> id, one lookup per distinct name
	imports := make([]repo.ImportRow, 0, len(rows))

	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header
		for len(row) < importColumns {
			row = append(row, "")
		}
		name, username, password, roleName, department := row[0], row[1], row[2], row[3], row[4]

		if username == "" || password == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: username and password are required", rowNum))
			continue
		}
		exists, err := el.userRepo.ExistsByUsername(username)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: user %s already exists", rowNum, username))
			continue
		}

		roleId := consts.DefaultRoleId
		if roleName != "" {
			id, ok := roleIds[roleName]
			if !ok {
				role, err := el.roleRepo.GetByName(roleName)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
				id = consts.DefaultRoleId
				if role != nil {
					id = role.Id
				}
				roleIds[roleName] = id
			}
			roleId = id
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = username
		}
		imports = append(imports, repo.ImportRow{
			User: model.User{
				Username:   username,
				Name:       name,
				Password:   string(hash),
				Department: department,
				Status:     consts.StatusEnabled,
			},
			RoleId: roleId,
		})
	}

	if len(imports) > 0 {
		if err := el.userRepo.Import(imports); err != nil {
			return nil, err
		}
	}
	result.Success = len(imports)
	result.Error = len(result.Errors)

	el.audit.Record(actor, consts.OperationUpload, consts.ModuleFile,
		nil, "file", fmt.Sprintf("imported %d of %d users from sheet", result.Success, result.Total), ip)
	return result, nil
}
