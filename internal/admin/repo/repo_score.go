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

package repo

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/pkg/database"
)

// scoreBatchWorkers caps concurrent statements in a write-back batch.
const scoreBatchWorkers = 8

type IScoreRepository interface {
	Years() ([]int, error)
	Subjects(year string) ([]string, error)
	Grades(year, subject string) ([]string, error)
	ExamTypes(year, subject, grade string) ([]string, error)
	QueryPoints(filter model.ScoreFilter) ([]model.Point, error)
	// RatioIds returns the distinct normalization curve ids referenced by
	// one exam's points.
	RatioIds(filter model.ScoreFilter) ([]int64, error)
	// RatiosByIds returns the sector rows of the given curves, A..E order.
	RatiosByIds(ids []int64) ([]model.Ratio, error)
	UpdateScores(rows []model.ScoreUpdate) error
	EnableEditing(ids []int64) error
	AddRatios(rows []model.RatioInsert) ([]int64, error)
	ImportScores(points []model.Point) error
	TotalGrades(year string) ([]string, error)
	// TotalExamTypes returns the distinct 5-char exam type prefixes of one
	// year and grade, so midterms and finals collapse across subjects.
	TotalExamTypes(year, grade string) ([]string, error)
	// TotalPoints returns every subject's points for one exam prefix.
	TotalPoints(year, grade, examTypePrefix string) ([]model.Point, error)
}

type ScoreRepo struct {
	db database.IDatabase
}

func NewScoreRepo(db database.IDatabase) IScoreRepository {
	return &ScoreRepo{db: db}
}

func (sr *ScoreRepo) Years() ([]int, error) {
	var years []int
	err := sr.db.Database().Model(&model.Point{}).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years).Error
	if err != nil {
		return nil, errors.Wrap(err, "list score years")
	}
	return years, nil
}

func (sr *ScoreRepo) Subjects(year string) ([]string, error) {
	var subjects []string
	err := sr.db.Database().Model(&model.Point{}).
		Distinct("subject").
		Where("year = ?", year).
		Order("subject ASC").
		Pluck("subject", &subjects).Error
	if err != nil {
		return nil, errors.Wrap(err, "list score subjects")
	}
	return subjects, nil
}

func (sr *ScoreRepo) Grades(year, subject string) ([]string, error) {
	var grades []string
	err := sr.db.Database().Model(&model.Point{}).
		Distinct("sc_lev").
		Where("year = ? AND subject = ?", year, subject).
		Order("sc_lev ASC").
		Pluck("sc_lev", &grades).Error
	if err != nil {
		return nil, errors.Wrap(err, "list score grades")
	}
	return grades, nil
}

func (sr *ScoreRepo) ExamTypes(year, subject, grade string) ([]string, error) {
	var types []string
	err := sr.db.Database().Model(&model.Point{}).
		Distinct("exam_type").
		Where("year = ? AND subject = ? AND sc_lev = ?", year, subject, grade).
		Order("exam_type ASC").
		Pluck("exam_type", &types).Error
	if err != nil {
		return nil, errors.Wrap(err, "list score exam types")
	}
	return types, nil
}

func (sr *ScoreRepo) QueryPoints(filter model.ScoreFilter) ([]model.Point, error) {
	var points []model.Point
	err := sr.db.Database().
		Where("year = ? AND subject = ? AND sc_lev = ? AND exam_type = ?",
			filter.Year, filter.Subject, filter.Grade, filter.ExamType).
		Order("point DESC").
		Find(&points).Error
	if err != nil {
		return nil, errors.Wrap(err, "query points")
	}
	return points, nil
}

func (sr *ScoreRepo) RatioIds(filter model.ScoreFilter) ([]int64, error) {
	var ids []int64
	err := sr.db.Database().Model(&model.Point{}).
		Distinct("ratio_id").
		Where("year = ? AND subject = ? AND sc_lev = ? AND exam_type = ? AND ratio_id IS NOT NULL",
			filter.Year, filter.Subject, filter.Grade, filter.ExamType).
		Order("ratio_id ASC").
		Pluck("ratio_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list ratio ids")
	}
	return ids, nil
}

func (sr *ScoreRepo) RatiosByIds(ids []int64) ([]model.Ratio, error) {
	var ratios []model.Ratio
	if len(ids) == 0 {
		return ratios, nil
	}
	err := sr.db.Database().
		Where("ratio_id IN ?", ids).
		Order("sector ASC").
		Find(&ratios).Error
	if err != nil {
		return nil, errors.Wrap(err, "list ratios")
	}
	return ratios, nil
}

func (sr *ScoreRepo) UpdateScores(rows []model.ScoreUpdate) error {
	g := errgroup.Group{}
	g.SetLimit(scoreBatchWorkers)
	for _, row := range rows {
		g.Go(func() error {
			fields := map[string]any{
				"point_adj": row.PointAdj,
				"ratio_id":  row.RatioId,
				"rank":      row.Rank,
				"segment":   row.Segment,
				"s_rank":    row.SRank,
			}
			err := sr.db.Database().Model(&model.Point{}).Where("id = ?", row.Id).Updates(fields).Error
			return errors.Wrapf(err, "update point %d", row.Id)
		})
	}
	return g.Wait()
}

func (sr *ScoreRepo) EnableEditing(ids []int64) error {
	g := errgroup.Group{}
	g.SetLimit(scoreBatchWorkers)
	for _, id := range ids {
		g.Go(func() error {
			err := sr.db.Database().Model(&model.Point{}).
				Where("id = ?", id).
				Update("button", 1).Error
			return errors.Wrapf(err, "unlock point %d", id)
		})
	}
	return g.Wait()
}

func (sr *ScoreRepo) AddRatios(rows []model.RatioInsert) ([]int64, error) {
	ids := make([]int64, len(rows))
	g := errgroup.Group{}
	g.SetLimit(scoreBatchWorkers)
	for i, row := range rows {
		g.Go(func() error {
			ratio := model.Ratio{
				NumA:    row.NumA,
				NumB:    row.NumB,
				Ratio:   row.Ratio,
				Step:    row.Step,
				OriginA: row.OriginA,
				OriginB: row.OriginB,
				Sector:  row.Sector,
			}
			if err := sr.db.Database().Create(&ratio).Error; err != nil {
				return errors.Wrapf(err, "insert ratio sector %s", row.Sector)
			}
			ids[i] = ratio.RatioId
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (sr *ScoreRepo) ImportScores(points []model.Point) error {
	return sr.db.Database().Transaction(func(tx *gorm.DB) error {
		for i := range points {
			if err := tx.Create(&points[i]).Error; err != nil {
				return errors.Wrap(err, "insert point")
			}
		}
		return nil
	})
}

func (sr *ScoreRepo) TotalGrades(year string) ([]string, error) {
	var grades []string
	err := sr.db.Database().Model(&model.Point{}).
		Distinct("sc_lev").
		Where("year = ?", year).
		Order("sc_lev ASC").
		Pluck("sc_lev", &grades).Error
	if err != nil {
		return nil, errors.Wrap(err, "list total score grades")
	}
	return grades, nil
}

func (sr *ScoreRepo) TotalExamTypes(year, grade string) ([]string, error) {
	var types []string
	err := sr.db.Database().Model(&model.Point{}).
		Select("DISTINCT LEFT(exam_type, 5) AS prefix").
		Where("year = ? AND sc_lev = ?", year, grade).
		Order("prefix ASC").
		Pluck("prefix", &types).Error
	if err != nil {
		return nil, errors.Wrap(err, "list total exam types")
	}
	return types, nil
}

func (sr *ScoreRepo) TotalPoints(year, grade, examTypePrefix string) ([]model.Point, error) {
	var points []model.Point
	err := sr.db.Database().
		Where("year = ? AND sc_lev = ? AND exam_type LIKE ?",
			year, grade, examTypePrefix+"%").
		Order("stnum ASC, subject ASC").
		Find(&points).Error
	if err != nil {
		return nil, errors.Wrap(err, "query total points")
	}
	return points, nil
}
