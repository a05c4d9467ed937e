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
 * @file: router_user.go
 * @description: user list, partial update, delete, search
 */

func (rt *Router) userRouter(r *gin.Engine, auth gin.HandlerFunc) {
	// /user/list keeps its long-standing contract: the header only has
	// to be present, it is not verified
	r.GET("/user/list", interceptor.HeaderPresenceInterceptor(), rt.getUserList)

	r.PUT("/updateList/:id", auth, rt.updateUser)
	r.DELETE("/deleteList/:id", auth, rt.deleteUser)
	r.POST("/searchPage", auth, rt.searchPage)
	r.POST("/searchVague", auth, rt.searchVague)
}

func (rt *Router) newUserLogic() *logic.UserLogic {
	return logic.NewUserLogic(rt.Ctx, repo.NewUserRepo(rt.Ctx.GetDB()), rt.newAudit())
}

func (rt *Router) getUserList(c *gin.Context) {
	users, err := rt.newUserLogic().GetUserList()
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"users": users})
}

func (rt *Router) updateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpx.WithRepErr(c, httpx.BadRequest)
		return
	}

	var req model.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	if err := rt.newUserLogic().UpdateUser(id, &req, actor, c.ClientIP()); err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepMsg(c, "updated")
}

func (rt *Router) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpx.WithRepErr(c, httpx.BadRequest)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	if err := rt.newUserLogic().DeleteUser(id, actor, c.ClientIP()); err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepMsg(c, "deleted")
}

func (rt *Router) searchPage(c *gin.Context) {
	var req model.SearchPageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	users, err := rt.newUserLogic().SearchPage(&req)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"users": users})
}

func (rt *Router) searchVague(c *gin.Context) {
	var req model.SearchVagueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	users, err := rt.newUserLogic().SearchVague(&req)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"users": users})
}
