package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-atrium/atrium/internal/admin/model"
	httpx "github.com/go-atrium/atrium/pkg/http"
)

type stubScoreRepo struct {
	ratioIds []int64
	ratioReq []int64
	points   []model.Point
	updates  []model.ScoreUpdate
	unlocked []int64
}

func (s *stubScoreRepo) Years() ([]int, error)                       { return []int{2025, 2024}, nil }
func (s *stubScoreRepo) Subjects(year string) ([]string, error)      { return nil, nil }
func (s *stubScoreRepo) Grades(y, sub string) ([]string, error)      { return nil, nil }
func (s *stubScoreRepo) ExamTypes(y, s2, g string) ([]string, error) { return nil, nil }

func (s *stubScoreRepo) QueryPoints(filter model.ScoreFilter) ([]model.Point, error) {
	return s.points, nil
}

func (s *stubScoreRepo) RatioIds(filter model.ScoreFilter) ([]int64, error) {
	return s.ratioIds, nil
}

func (s *stubScoreRepo) RatiosByIds(ids []int64) ([]model.Ratio, error) {
	s.ratioReq = ids
	ratios := make([]model.Ratio, len(ids))
	for i, id := range ids {
		ratios[i] = model.Ratio{RatioId: id}
	}
	return ratios, nil
}

func (s *stubScoreRepo) UpdateScores(rows []model.ScoreUpdate) error {
	s.updates = rows
	return nil
}

func (s *stubScoreRepo) EnableEditing(ids []int64) error {
	s.unlocked = ids
	return nil
}

func (s *stubScoreRepo) AddRatios(rows []model.RatioInsert) ([]int64, error) {
	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func (s *stubScoreRepo) ImportScores(points []model.Point) error {
	s.points = points
	return nil
}

func (s *stubScoreRepo) TotalGrades(year string) ([]string, error)         { return nil, nil }
func (s *stubScoreRepo) TotalExamTypes(y, g string) ([]string, error)      { return nil, nil }
func (s *stubScoreRepo) TotalPoints(y, g, p string) ([]model.Point, error) { return s.points, nil }

func newScoreLogicForTest(scores *stubScoreRepo) (*ScoreLogic, *stubLogRepo) {
	lr := newStubLogRepo()
	tctx := newTestCtx()
	return NewScoreLogic(tctx, scores, NewOperationLogLogic(tctx, lr)), lr
}

func TestImportScoresFiltersNonNumericRows(t *testing.T) {
	scores := &stubScoreRepo{}
	sl, _ := newScoreLogicForTest(scores)

	rows := []model.ScoreImportRow{
		{Year: "2025", Point: "92.5", ScNum: "3", StNum: "17", Subject: "math", ExamType: "2025-1 midterm"},
		{Year: "n/a", Point: "88", ScNum: "3", StNum: "18", Subject: "math"},
		{Year: "2025", Point: "absent", ScNum: "3", StNum: "19", Subject: "math"},
	}
	imported, err := sl.ImportScores(rows, Actor{Id: 1, Name: "Admin"}, "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.Len(t, scores.points, 1)
	assert.Equal(t, 2025, scores.points[0].Year)
	assert.Equal(t, 92.5, scores.points[0].Point)
	assert.Equal(t, 17, scores.points[0].StNum)
}

func TestImportScoresAllInvalid(t *testing.T) {
	scores := &stubScoreRepo{}
	sl, _ := newScoreLogicForTest(scores)

	rows := []model.ScoreImportRow{{Year: "bad", Point: "also bad"}}
	_, err := sl.ImportScores(rows, Actor{Id: 1, Name: "Admin"}, "10.0.0.1")

	assert.ErrorIs(t, err, httpx.BadRequest)
	assert.Empty(t, scores.points)
}

func TestGetRatiosResolvesIdsFirst(t *testing.T) {
	scores := &stubScoreRepo{ratioIds: []int64{4, 9}}
	sl, _ := newScoreLogicForTest(scores)

	ratios, err := sl.GetRatios(model.ScoreFilter{Year: "2025", Subject: "math", Grade: "G1", ExamType: "midterm"})

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 9}, scores.ratioReq)
	require.Len(t, ratios, 2)
	assert.Equal(t, int64(4), ratios[0].RatioId)
}

func TestUpdateScoresRejectsEmptyBatch(t *testing.T) {
	sl, _ := newScoreLogicForTest(&stubScoreRepo{})

	err := sl.UpdateScores(nil, Actor{Id: 1, Name: "Admin"}, "10.0.0.1")

	assert.ErrorIs(t, err, httpx.BadRequest)
}

func TestQueryPointsRequiresFullFilter(t *testing.T) {
	sl, _ := newScoreLogicForTest(&stubScoreRepo{})

	_, err := sl.QueryPoints(model.ScoreFilter{Year: "2025"})

	assert.ErrorIs(t, err, httpx.BadRequest)
}
