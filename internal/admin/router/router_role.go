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

package router

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/go-atrium/atrium/internal/admin/common"
	"github.com/go-atrium/atrium/internal/admin/logic"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/interceptor"
)

/**
 * @file: router_role.go
 * @description: role overview, role-permission replacement, user permissions, audit log
 */

func (rt *Router) roleRouter(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/roles", auth, rt.getRoles)
	r.PUT("/roles/:roleId/permissions", auth, rt.updateRolePermissions)
	r.GET("/user-permissions", auth, rt.getUserPermissions)
	r.GET("/logs", auth, rt.getOperationLogs)
}

func (rt *Router) newRbacLogic() *logic.RbacLogic {
	db := rt.Ctx.GetDB()
	return logic.NewRbacLogic(rt.Ctx, repo.NewRoleRepo(db), repo.NewPermissionRepo(db), rt.newAudit())
}

func (rt *Router) getRoles(c *gin.Context) {
	overview, err := rt.newRbacLogic().ListRolesWithPermissions()
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, overview)
}

func (rt *Router) updateRolePermissions(c *gin.Context) {
	roleId, err := strconv.ParseInt(c.Param("roleId"), 10, 64)
	if err != nil {
		httpx.WithRepErr(c, httpx.BadRequest)
		return
	}

	var req model.UpdateRolePermissionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	kept, err := rt.newRbacLogic().UpdateRolePermissions(roleId, req.Permissions, actor, c.ClientIP())
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"permissions": kept})
}

func (rt *Router) getUserPermissions(c *gin.Context) {
	claims, ok := interceptor.GetClaims(c)
	if !ok {
		httpx.WithRepErr(c, httpx.Unauthorized)
		return
	}

	codes, err := rt.newRbacLogic().ListUserPermissions(claims.Username)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"permissions": codes})
}

func (rt *Router) getOperationLogs(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}

	audit := rt.newAudit()
	entries, count, err := audit.List(page, size)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"logs": entries, "count": count})
}
