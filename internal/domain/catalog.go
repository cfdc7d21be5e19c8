package domain

// Branch is an academic department or program. Reference data.
type Branch struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Code string `json:"code" gorm:"size:32;uniqueIndex;not null"`
}

func (Branch) TableName() string { return "branches" }

// Semester is a numbered academic term. Reference data.
type Semester struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	Number int   `json:"number" gorm:"uniqueIndex;not null"`
}

func (Semester) TableName() string { return "semesters" }

// ExamType classifies an assessment, e.g. END_SEM or MID_SEM. Reference data.
type ExamType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Code string `json:"code" gorm:"size:32;uniqueIndex;not null"`
}

func (ExamType) TableName() string { return "exam_types" }
