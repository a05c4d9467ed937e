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
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/mojocn/base64Captcha"

	"github.com/go-atrium/atrium/internal/admin/common"
	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/logic"
	"github.com/go-atrium/atrium/internal/admin/repo"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/id"
	"github.com/go-atrium/atrium/pkg/log"
)

/**
 * @file: router_misc.go
 * @description: captcha, file upload, async routes, excel import
 */

var captchaStore = base64Captcha.DefaultMemStore

func (rt *Router) miscRouter(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/captcha", rt.getCaptcha)
	r.POST("/upload", rt.upload)
	r.GET("/get-async-routes", rt.getAsyncRoutes)
	r.POST("/api/excel/import-local", auth, rt.importExcel)
}

func (rt *Router) getCaptcha(c *gin.Context) {
	driver := base64Captcha.NewDriverMath(40, 120, 0, 0, nil, nil, nil)
	captcha := base64Captcha.NewCaptcha(driver, captchaStore)
	id, b64s, answer, err := captcha.Generate()
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"id": id, "text": answer, "image": b64s})
}

func (rt *Router) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		httpx.WithRepErr(c, httpx.BadRequest)
		return
	}

	dir := rt.Http.UploadDir
	if dir == "" {
		dir = "./public/files"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Errorf("create upload dir: %v", err)
		httpx.WithRepErr(c, err)
		return
	}

	saved := make([]string, 0, len(files))
	for _, file := range files {
		// 避免同名覆盖
		name := id.GetUUIDWithoutDashes() + "_" + filepath.Base(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
			log.Errorf("save upload %s: %v", file.Filename, err)
			httpx.WithRepErr(c, err)
			return
		}
		saved = append(saved, name)
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	rt.newAudit().Record(actor, consts.OperationUpload, consts.ModuleFile,
		nil, "file", fmt.Sprintf("uploaded %d files", len(saved)), c.ClientIP())
	httpx.WithRepJSON(c, gin.H{"files": saved})
}

// getAsyncRoutes feeds the frontend router. The payload is static, the
// frontend filters it against the permission codes from login.
func (rt *Router) getAsyncRoutes(c *gin.Context) {
	httpx.WithRepJSON(c, []gin.H{
		{
			"path": "/permission",
			"meta": gin.H{"title": "权限管理", "icon": "lollipop", "rank": 10},
			"children": []gin.H{
				{
					"path": "/permission/page/index",
					"name": "PermissionPage",
					"meta": gin.H{"title": "页面权限", "roles": []string{"admin", "common"}},
				},
				{
					"path": "/permission/button/index",
					"name": "PermissionButton",
					"meta": gin.H{
						"title": "按钮权限",
						"roles": []string{"admin", "common"},
						"auths": []string{"btn_add", "btn_edit", "btn_delete"},
					},
				},
			},
		},
	})
}

func (rt *Router) importExcel(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}
	src, err := file.Open()
	if err != nil {
		httpx.WithRepErr(c, httpx.BadRequest)
		return
	}
	defer src.Close()

	db := rt.Ctx.GetDB()
	excelLogic := logic.NewExcelLogic(rt.Ctx, repo.NewUserRepo(db), repo.NewRoleRepo(db), rt.newAudit())

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	result, err := excelLogic.ImportUsers(src, actor, c.ClientIP())
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, result)
}
