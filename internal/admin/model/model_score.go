package model

/**
 * @file: model_score.go
 * @description: exam score normalization tables (points, ratio)
 */

// Point is one student's score for one exam, plus the adjusted score and
// ranking fields filled in by normalization.
type Point struct {
	Id       int64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Year     int      `gorm:"column:year" json:"year"`
	ExamType string   `gorm:"column:exam_type" json:"exam_type"`
	Subject  string   `gorm:"column:subject" json:"subject"`
	Point    float64  `gorm:"column:point" json:"point"`
	PointAdj *float64 `gorm:"column:point_adj" json:"point_adj"`
	ScLev    string   `gorm:"column:sc_lev" json:"sc_lev"` // grade level
	ScClass  string   `gorm:"column:sc_class" json:"sc_class"`
	ScNum    int      `gorm:"column:sc_num" json:"sc_num"`
	ScName   string   `gorm:"column:sc_name" json:"sc_name"`
	Button   int      `gorm:"column:button" json:"button"` // 1: editable, 0: locked
	StNum    int      `gorm:"column:stnum" json:"stnum"`
	RatioId  *int64   `gorm:"column:ratio_id" json:"ratio_id"`
	Rank     *int     `gorm:"column:rank" json:"rank"`
	Segment  *string  `gorm:"column:segment" json:"segment"`
	SRank    *int     `gorm:"column:s_rank" json:"s_rank"`
}

func (Point) TableName() string {
	return "points"
}

// Ratio is one sector (A..E) of a normalization curve.
type Ratio struct {
	RatioId int64   `gorm:"column:ratio_id;primaryKey;autoIncrement" json:"ratio_id"`
	NumA    float64 `gorm:"column:numa" json:"numa"`
	NumB    float64 `gorm:"column:numb" json:"numb"`
	Ratio   float64 `gorm:"column:ratio" json:"ratio"`
	Step    float64 `gorm:"column:step" json:"step"`
	OriginA float64 `gorm:"column:oragina" json:"oragina"`
	OriginB float64 `gorm:"column:oranginb" json:"oranginb"`
	Sector  string  `gorm:"column:sector" json:"sector"`
}

func (Ratio) TableName() string {
	return "ratio"
}

// ScoreFilter narrows point queries down to one exam.
type ScoreFilter struct {
	Year     string `form:"year"`
	Subject  string `form:"subject"`
	Grade    string `form:"grade"`
	ExamType string `form:"examType"`
}

// ScoreUpdate is one row of a normalization write-back batch.
type ScoreUpdate struct {
	Id       int64    `json:"id"`
	PointAdj *float64 `json:"point_adj"`
	RatioId  *int64   `json:"ratio_id"`
	Rank     *int     `json:"rank"`
	Segment  *string  `json:"segment"`
	SRank    *int     `json:"s_rank"`
}

// ScoreImportRow is one row of a raw score import.
type ScoreImportRow struct {
	Year     string `json:"year"`
	ExamType string `json:"exam_type"`
	Subject  string `json:"subject"`
	Point    string `json:"point"`
	ScLev    string `json:"sc_lev"`
	ScClass  string `json:"sc_class"`
	ScNum    string `json:"sc_num"`
	ScName   string `json:"sc_name"`
	StNum    string `json:"stnum"`
}

// RatioInsert is one sector row of a new normalization curve.
type RatioInsert struct {
	NumA    float64 `json:"numa"`
	NumB    float64 `json:"numb"`
	Ratio   float64 `json:"ratio"`
	Step    float64 `json:"step"`
	OriginA float64 `json:"oragina"`
	OriginB float64 `json:"oranginb"`
	Sector  string  `json:"sector"`
}
