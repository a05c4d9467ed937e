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

package model

import (
	"time"

	"github.com/go-atrium/atrium/internal/admin/consts"
)

// OperationLog 操作日志，append-only。
// OperatorId is nullable so historical entries survive the deletion of the
// operator (ON DELETE SET NULL); OperatorName is denormalized for the same
// reason. A login failure is recorded with a NULL operator id and the
// attempted username as the operator name.
type OperationLog struct {
	Id           int64                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OperatorId   *int64               `gorm:"column:operator_id" json:"operatorId"`
	OperatorName string               `gorm:"column:operator_name" json:"operatorName"`
	TargetId     *int64               `gorm:"column:target_id" json:"targetId"`
	TargetType   string               `gorm:"column:target_type" json:"targetType"`
	Action       consts.OperationType `gorm:"column:action;not null" json:"action"`
	Module       consts.ModuleType    `gorm:"column:module;not null" json:"module"`
	Content      string               `gorm:"column:content" json:"content"`
	Ip           string               `gorm:"column:ip" json:"ip"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (OperationLog) TableName() string {
	return "operation_logs"
}
