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

	"github.com/go-atrium/atrium/internal/admin/common"
	"github.com/go-atrium/atrium/internal/admin/logic"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	httpx "github.com/go-atrium/atrium/pkg/http"
)

/**
 * @file: router_score.go
 * @description: exam score queries, normalization write-back, raw import
 */

func (rt *Router) scoreRouter(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/years", rt.getYears)
		api.GET("/subjects", rt.getSubjects)
		api.GET("/grades", rt.getGrades)
		api.GET("/exam-types", rt.getExamTypes)
		api.POST("/import-scores", rt.importScores)
		api.GET("/total/grades", rt.getTotalGrades)
		api.GET("/total/exam-types", rt.getTotalExamTypes)
		api.GET("/total-scores", rt.getTotalScores)
	}

	r.GET("/query-points", rt.queryPoints)
	r.GET("/get-ratios", rt.getRatios)
	r.POST("/update-scores", rt.updateScores)
	r.POST("/add-ratio", rt.addRatio)
	r.POST("/enable-editing", rt.enableEditing)
}

func (rt *Router) newScoreLogic() *logic.ScoreLogic {
	return logic.NewScoreLogic(rt.Ctx, repo.NewScoreRepo(rt.Ctx.GetDB()), rt.newAudit())
}

func (rt *Router) getYears(c *gin.Context) {
	years, err := rt.newScoreLogic().Years()
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"years": years})
}

func (rt *Router) getSubjects(c *gin.Context) {
	subjects, err := rt.newScoreLogic().Subjects(c.Query("year"))
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"subjects": subjects})
}

func (rt *Router) getGrades(c *gin.Context) {
	grades, err := rt.newScoreLogic().Grades(c.Query("year"), c.Query("subject"))
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"grades": grades})
}

func (rt *Router) getExamTypes(c *gin.Context) {
	types, err := rt.newScoreLogic().ExamTypes(c.Query("year"), c.Query("subject"), c.Query("grade"))
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"examTypes": types})
}

func (rt *Router) queryPoints(c *gin.Context) {
	var filter model.ScoreFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	points, err := rt.newScoreLogic().QueryPoints(filter)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"points": points})
}

func (rt *Router) getRatios(c *gin.Context) {
	var filter model.ScoreFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	ratios, err := rt.newScoreLogic().GetRatios(filter)
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"ratios": ratios})
}

func (rt *Router) updateScores(c *gin.Context) {
	var rows []model.ScoreUpdate
	if err := c.ShouldBindJSON(&rows); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	if err := rt.newScoreLogic().UpdateScores(rows, actor, c.ClientIP()); err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepMsg(c, "scores updated")
}

func (rt *Router) addRatio(c *gin.Context) {
	var rows []model.RatioInsert
	if err := c.ShouldBindJSON(&rows); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	ids, err := rt.newScoreLogic().AddRatios(rows, actor, c.ClientIP())
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"ratioIds": ids})
}

func (rt *Router) enableEditing(c *gin.Context) {
	var req struct {
		Ids []int64 `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	if err := rt.newScoreLogic().EnableEditing(req.Ids, actor, c.ClientIP()); err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepMsg(c, "editing enabled")
}

func (rt *Router) importScores(c *gin.Context) {
	var rows []model.ScoreImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
		return
	}

	actor := common.ActorFromContext(c, rt.Http.Auth.SecretKey)
	imported, err := rt.newScoreLogic().ImportScores(rows, actor, c.ClientIP())
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"imported": imported})
}

func (rt *Router) getTotalGrades(c *gin.Context) {
	grades, err := rt.newScoreLogic().TotalGrades(c.Query("year"))
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"grades": grades})
}

func (rt *Router) getTotalExamTypes(c *gin.Context) {
	types, err := rt.newScoreLogic().TotalExamTypes(c.Query("year"), c.Query("grade"))
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"examTypes": types})
}

func (rt *Router) getTotalScores(c *gin.Context) {
	scores, err := rt.newScoreLogic().TotalScores(c.Query("year"), c.Query("grade"), c.Query("examType"))
	if err != nil {
		httpx.WithRepErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"scores": scores})
}
