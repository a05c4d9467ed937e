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
	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/log"
)

// OperationLogLogic records audit entries. Writes are fire-and-forget: a
// failed insert is logged and swallowed, it never blocks or fails the
// business operation that triggered it.
type OperationLogLogic struct {
	ctx     *ctx.Context
	logRepo repo.IOperationLogRepository
}

func NewOperationLogLogic(ctx *ctx.Context, logRepo repo.IOperationLogRepository) *OperationLogLogic {
	return &OperationLogLogic{
		ctx:     ctx,
		logRepo: logRepo,
	}
}

// Actor identifies who performed an operation, taken from the verified
// token claims. Unauthenticated actors (failed logins, anonymous uploads)
// carry id 0 and are stored with a NULL operator id.
type Actor struct {
	Id   int64
	Name string
}

func (ol *OperationLogLogic) Record(actor Actor, action consts.OperationType, module consts.ModuleType,
	targetId *int64, targetType, content, ip string) {
	var operatorId *int64
	if actor.Id > 0 {
		operatorId = &actor.Id
	}
	entry := &model.OperationLog{
		OperatorId:   operatorId,
		OperatorName: actor.Name,
		TargetId:     targetId,
		TargetType:   targetType,
		Action:       action,
		Module:       module,
		Content:      content,
		Ip:           ip,
	}
	go func() {
		if err := ol.logRepo.Append(entry); err != nil {
			log.Errorw("append operation log", "action", action, "module", module, "error", err)
		}
	}()
}

func (ol *OperationLogLogic) List(page, size int) ([]model.OperationLog, int64, error) {
	return ol.logRepo.List(page, size)
}
