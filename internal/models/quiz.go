package models

import "time"

// Quiz represents a teacher-authored assessment with auto-graded multiple-choice questions.
type Quiz struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	DurationMinutes int        `gorm:"not null;default:0" json:"duration_minutes"`
	CreatedByID     *uint      `json:"created_by_id"`
	CreatedBy       *User      `json:"created_by"`
	Questions       []Question `gorm:"foreignKey:QuizID" json:"questions"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
