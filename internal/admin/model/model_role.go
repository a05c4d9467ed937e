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

import "time"

// Role 角色表
type Role struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Code        string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Description string    `gorm:"column:description" json:"description"`
	Status      int       `gorm:"column:status;not null;default:1" json:"status"` // 0: disabled, 1: enabled
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole 用户角色关联表
type UserRole struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserId    int64     `gorm:"column:user_id;not null;index" json:"userId"`
	RoleId    int64     `gorm:"column:role_id;not null;index" json:"roleId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// RolePermission 角色权限关联表
type RolePermission struct {
	Id           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RoleId       int64     `gorm:"column:role_id;not null;index" json:"roleId"`
	PermissionId int64     `gorm:"column:permission_id;not null;index" json:"permissionId"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// RoleWithPermissions is a role plus the codes of its enabled permissions.
type RoleWithPermissions struct {
	Role
	Permissions []string `json:"permissions"`
}

// UpdateRolePermissionsReq replaces a role's permission set wholesale.
type UpdateRolePermissionsReq struct {
	Permissions []string `json:"permissions"`
}
