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
	"fmt"
	"strconv"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/http"
)

type ScoreLogic struct {
	ctx       *ctx.Context
	scoreRepo repo.IScoreRepository
	audit     *OperationLogLogic
}

func NewScoreLogic(ctx *ctx.Context, scoreRepo repo.IScoreRepository, audit *OperationLogLogic) *ScoreLogic {
	return &ScoreLogic{
		ctx:       ctx,
		scoreRepo: scoreRepo,
		audit:     audit,
	}
}

func (sl *ScoreLogic) Years() ([]int, error) {
	return sl.scoreRepo.Years()
}

func (sl *ScoreLogic) Subjects(year string) ([]string, error) {
	if year == "" {
		return nil, http.BadRequest
	}
	return sl.scoreRepo.Subjects(year)
}

func (sl *ScoreLogic) Grades(year, subject string) ([]string, error) {
	if year == "" || subject == "" {
		return nil, http.BadRequest
	}
	return sl.scoreRepo.Grades(year, subject)
}

func (sl *ScoreLogic) ExamTypes(year, subject, grade string) ([]string, error) {
	if year == "" || subject == "" || grade == "" {
		return nil, http.BadRequest
	}
	return sl.scoreRepo.ExamTypes(year, subject, grade)
}

func (sl *ScoreLogic) QueryPoints(filter model.ScoreFilter) ([]model.Point, error) {
	if filter.Year == "" || filter.Subject == "" || filter.Grade == "" || filter.ExamType == "" {
		return nil, http.BadRequest
	}
	return sl.scoreRepo.QueryPoints(filter)
}

// GetRatios finds the normalization curves referenced by one exam and
// returns their sector rows, A..E within each curve.
func (sl *ScoreLogic) GetRatios(filter model.ScoreFilter) ([]model.Ratio, error) {
	ids, err := sl.scoreRepo.RatioIds(filter)
	if err != nil {
		return nil, err
	}
	return sl.scoreRepo.RatiosByIds(ids)
}

func (sl *ScoreLogic) UpdateScores(rows []model.ScoreUpdate, actor Actor, ip string) error {
	if len(rows) == 0 {
		return http.BadRequest
	}
	if err := sl.scoreRepo.UpdateScores(rows); err != nil {
		return err
	}
	sl.audit.Record(actor, consts.OperationUpdate, consts.ModuleScore,
		nil, "point", fmt.Sprintf("wrote back %d normalized scores", len(rows)), ip)
	return nil
}

func (sl *ScoreLogic) EnableEditing(ids []int64, actor Actor, ip string) error {
	if len(ids) == 0 {
		return http.BadRequest
	}
	if err := sl.scoreRepo.EnableEditing(ids); err != nil {
		return err
	}
	sl.audit.Record(actor, consts.OperationUpdate, consts.ModuleScore,
		nil, "point", fmt.Sprintf("unlocked %d scores for editing", len(ids)), ip)
	return nil
}

func (sl *ScoreLogic) AddRatios(rows []model.RatioInsert, actor Actor, ip string) ([]int64, error) {
	if len(rows) == 0 {
		return nil, http.BadRequest
	}
	ids, err := sl.scoreRepo.AddRatios(rows)
	if err != nil {
		return nil, err
	}
	sl.audit.Record(actor, consts.OperationCreate, consts.ModuleScore,
		nil, "ratio", fmt.Sprintf("added normalization curve with %d sectors", len(rows)), ip)
	return ids, nil
}

// ImportScores converts raw rows into point records, dropping rows whose
// numeric columns do not parse. It returns how many rows were kept.
func (sl *ScoreLogic) ImportScores(rows []model.ScoreImportRow, actor Actor, ip string) (int, error) {
	points := make([]model.Point, 0, len(rows))
	for _, row := range rows {
		year, err := strconv.Atoi(row.Year)
		if err != nil {
			continue
		}
		point, err := strconv.ParseFloat(row.Point, 64)
		if err != nil {
			continue
		}
		scNum, err := strconv.Atoi(row.ScNum)
		if err != nil {
			continue
		}
		stNum, err := strconv.Atoi(row.StNum)
		if err != nil {
			continue
		}
		points = append(points, model.Point{
			Year:     year,
			ExamType: row.ExamType,
			Subject:  row.Subject,
			Point:    point,
			ScLev:    row.ScLev,
			ScClass:  row.ScClass,
			ScNum:    scNum,
			ScName:   row.ScName,
			StNum:    stNum,
			Button:   0,
		})
	}
	if len(points) == 0 {
		return 0, http.BadRequest
	}

	if err := sl.scoreRepo.ImportScores(points); err != nil {
		return 0, err
	}

	sl.audit.Record(actor, consts.OperationUpload, consts.ModuleScore,
		nil, "point", fmt.Sprintf("imported %d of %d raw scores", len(points), len(rows)), ip)
	return len(points), nil
}

func (sl *ScoreLogic) TotalGrades(year string) ([]string, error) {
	if year == "" {
		return nil, http.BadRequest
	}
	return sl.scoreRepo.TotalGrades(year)
}

func (sl *ScoreLogic) TotalExamTypes(year, grade string) ([]string, error) {
	if year == "" || grade == "" {
		return nil, http.BadRequest
	}
	return sl.scoreRepo.TotalExamTypes(year, grade)
}

// TotalScores groups one exam prefix's points by student, so the frontend
// can sum per-subject scores into a total table.
func (sl *ScoreLogic) TotalScores(year, grade, examTypePrefix string) (map[int][]model.Point, error) {
	if year == "" || grade == "" || examTypePrefix == "" {
		return nil, http.BadRequest
	}
	points, err := sl.scoreRepo.TotalPoints(year, grade, examTypePrefix)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[int][]model.Point)
	for _, p := range points {
		byStudent[p.StNum] = append(byStudent[p.StNum], p)
	}
	return byStudent, nil
}
