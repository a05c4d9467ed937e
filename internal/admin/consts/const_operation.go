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

package consts

// OperationType classifies what an audit entry records.
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
	OperationQuery  OperationType = "QUERY"
	OperationLogin  OperationType = "LOGIN"
	OperationUpload OperationType = "UPLOAD"
)

// ModuleType names the functional area an audit entry belongs to.
type ModuleType string

const (
	ModuleUser  ModuleType = "USER"
	ModuleRole  ModuleType = "ROLE"
	ModuleFile  ModuleType = "FILE"
	ModuleAuth  ModuleType = "AUTH"
	ModuleScore ModuleType = "SCORE"
)

const (
	// StatusEnabled / StatusDisabled are shared by users, roles and permissions.
	StatusEnabled  = 1
	StatusDisabled = 0

	// DefaultRoleId is assigned on registration and bulk import when no
	// role is given.
	DefaultRoleId int64 = 2

	// SessionKeyPrefix prefixes the Redis key holding a user's live session.
	SessionKeyPrefix = "atrium:session:"
)

// Permission types mirror the frontend's menu/button/api split.
const (
	PermissionTypeMenu   = "menu"
	PermissionTypeButton = "button"
	PermissionTypeApi    = "api"
)
