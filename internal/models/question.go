package models

import "time"

// Question types for exam free-text questions.
const (
	QuestionTypeShort = "Short"
	QuestionTypeLong  = "Long"
	QuestionTypeOther = "Other"
)

// Question belongs to exactly one exam or one quiz. Options are populated
// only for quiz questions.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Marks     int       `gorm:"not null;default:1" json:"marks"`
	Type      string    `gorm:"size:32" json:"type"`
	ExamID    *uint     `gorm:"index" json:"exam_id"`
	QuizID    *uint     `gorm:"index" json:"quiz_id"`
	Options   []Option  `gorm:"foreignKey:QuestionID" json:"options"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Option is a selectable choice for a quiz question.
type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}
