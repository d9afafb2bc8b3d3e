package models

import "time"

// Exam represents a teacher-authored assessment with manually graded questions.
type Exam struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Subject         string     `gorm:"size:128" json:"subject"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	DurationMinutes int        `gorm:"not null;default:0" json:"duration_minutes"`
	CreatedByID     *uint      `json:"created_by_id"`
	CreatedBy       *User      `json:"created_by"`
	Questions       []Question `gorm:"foreignKey:ExamID" json:"questions"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
