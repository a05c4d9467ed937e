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
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-atrium/atrium/internal/admin/logic"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/interceptor"
	"github.com/go-atrium/atrium/pkg/http/ws"
	"github.com/go-atrium/atrium/pkg/metrics"
	"github.com/go-atrium/atrium/pkg/version"
)

/**
 * @file: router.go
 * @description: setup router
 */

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context
}

func NewRouter(httpConf *httpx.Http, ctx *ctx.Context) *Router {
	return &Router{
		Http: httpConf,
		Ctx:  ctx,
	}
}

func (rt *Router) Router() *gin.Engine {

	gin.SetMode(rt.Http.Mode)

	r := gin.New()

	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		fmt.Printf("[Atrium] %-6s %-25s --> %s (%d handlers) \n", httpMethod, absolutePath, handlerName, nuHandlers)
	}

	r.Use(interceptor.CorsInterceptor())
	r.Use(interceptor.ExceptionInterceptor)

	if rt.Http.AccessLog {
		r.Use(interceptor.AccessLogInterceptor(rt.Ctx.Log))
	}

	if rt.Http.ExposeMetrics {
		r.Use(metrics.Interceptor())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersion())
	})

	r.GET("/socket", ws.Handle)

	auth := interceptor.AuthorizationInterceptor(rt.Http.Auth.SecretKey,
		rt.Http.Auth.RedisKeyPrefix, rt.Ctx.GetCache())

	rt.authRouter(r)
	rt.userRouter(r, auth)
	rt.roleRouter(r, auth)
	rt.scoreRouter(r)
	rt.miscRouter(r, auth)

	return r
}

// newAudit builds the shared fire-and-forget audit recorder for a request.
func (rt *Router) newAudit() *logic.OperationLogLogic {
	return logic.NewOperationLogLogic(rt.Ctx, repo.NewOperationLogRepo(rt.Ctx.GetDB()))
}
