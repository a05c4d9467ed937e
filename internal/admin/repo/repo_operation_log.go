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

	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/pkg/database"
)

// IOperationLogRepository is append-only, entries are never updated or
// deleted through the application.
type IOperationLogRepository interface {
	Append(entry *model.OperationLog) error
	List(page, size int) ([]model.OperationLog, int64, error)
}

type OperationLogRepo struct {
	db database.IDatabase
}

func NewOperationLogRepo(db database.IDatabase) IOperationLogRepository {
	return &OperationLogRepo{db: db}
}

func (or *OperationLogRepo) Append(entry *model.OperationLog) error {
	if err := or.db.Database().Create(entry).Error; err != nil {
		return errors.Wrap(err, "append operation log")
	}
	return nil
}

func (or *OperationLogRepo) List(page, size int) ([]model.OperationLog, int64, error) {
	var count int64
	if err := or.db.Database().Model(&model.OperationLog{}).Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count operation logs")
	}

	var entries []model.OperationLog
	offset := (page - 1) * size
	err := or.db.Database().Order("id DESC").Limit(size).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list operation logs")
	}
	return entries, count, nil
}
