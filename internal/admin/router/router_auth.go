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
	"github.com/gin-gonic/gin"

	"github.com/go-atrium/atrium/internal/admin/logic"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/interceptor"
)

/**
 * @file: router_auth.go
 * @description: login, register, token refresh
 */

func (rt *Router) authRouter(r *gin.Engine) {
	r.POST("/login", rt.login)
	r.POST("/register", rt.register)
	r.POST("/refresh-token", rt.refreshToken)
	r.POST("/logout", interceptor.AuthorizationInterceptor(rt.Http.Auth.SecretKey,
		rt.Http.Auth.RedisKeyPrefix, rt.Ctx.GetCache()), rt.logout)
}

func (rt *Router) newAuthLogic() *logic.AuthLogic {
	db := rt.Ctx.GetDB()
	return logic.NewAuthLogic(rt.Ctx,
		repo.NewUserRepo(db),
		repo.NewRoleRepo(db),
		repo.NewPermissionRepo(db),
		repo.NewAuthRepo(rt.Ctx.GetCache()),
		rt.newAudit())
}

func (rt *Router) login(c *gin.Context) {
	var login model.Login
	if err := c.ShouldBindJSON(&login); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	resp, err := rt.newAuthLogic().Login(&login, rt.Http.Auth, c.ClientIP())
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, resp)
}

func (rt *Router) register(c *gin.Context) {
	var register model.Register
	if err := c.ShouldBindJSON(&register); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	if err := rt.newAuthLogic().Register(&register, c.ClientIP()); err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepMsg(c, "registered")
}

func (rt *Router) refreshToken(c *gin.Context) {
	var req model.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	resp, err := rt.newAuthLogic().Refresh(&req, rt.Http.Auth)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, resp)
}

func (rt *Router) logout(c *gin.Context) {
	claims, ok := interceptor.GetClaims(c)
	if !ok {
		httpx.WithRepErr(c, httpx.Unauthorized)
		return
	}

	if err := rt.newAuthLogic().Logout(claims.UserId); err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepMsg(c, "logged out")
}
