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

// Permission 权限点，parent_id 自引用构成菜单树
type Permission struct {
	Id          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Code        string `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Type        string `gorm:"column:type;not null" json:"type"` // menu, button, api
	Description string `gorm:"column:description" json:"description"`
	ParentId    *int64 `gorm:"column:parent_id" json:"parentId"`
	Status      int    `gorm:"column:status;not null;default:1" json:"status"` // 0: disabled, 1: enabled
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionNode is a permission with its children attached, as returned to
// the frontend menu tree.
type PermissionNode struct {
	Permission
	Children []*PermissionNode `json:"children,omitempty"`
}

// BuildPermissionTree groups a flat, id-ordered permission list under their
// parents. Roots are the rows whose parent id is NULL; sibling order follows
// the input order, so callers should pass rows ordered by id ascending.
// Rows pointing at a missing parent are dropped rather than promoted.
func BuildPermissionTree(perms []Permission) []*PermissionNode {
	nodes := make(map[int64]*PermissionNode, len(perms))
	for _, p := range perms {
		nodes[p.Id] = &PermissionNode{Permission: p}
	}

	var roots []*PermissionNode
	for _, p := range perms {
		node := nodes[p.Id]
		if p.ParentId == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*p.ParentId]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}
