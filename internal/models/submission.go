package models

import "time"

// Submission kinds derived from which title field is populated.
const (
	SubmissionKindExam = "exam"
	SubmissionKindQuiz = "quiz"
)

// Submission records one student's attempt at an exam or a quiz. Exactly one
// of ExamTitle/QuizTitle is populated; ExamID is set only for exam attempts.
type Submission struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ExamTitle       string    `gorm:"size:255" json:"exam_title"`
	QuizTitle       string    `gorm:"size:255" json:"quiz_title"`
	StudentName     string    `gorm:"size:128" json:"student_name"`
	StudentID       *uint     `gorm:"index" json:"student_id"`
	Student         *User     `json:"student"`
	ExamID          *uint     `gorm:"index" json:"exam_id"`
	Exam            *Exam     `json:"exam"`
	Quiz            *Quiz     `gorm:"-" json:"-"`
	Evaluated       bool      `gorm:"not null;default:false" json:"evaluated"`
	Marks           *int      `json:"marks"`
	TeacherComments string    `gorm:"type:text" json:"teacher_comments"`
	SubmittedAt     time.Time `gorm:"not null" json:"submitted_at"`
	Answers         []Answer  `gorm:"foreignKey:SubmissionID" json:"answers"`
}

// Kind reports whether this is an exam or a quiz attempt.
func (s Submission) Kind() string {
	if s.QuizTitle != "" {
		return SubmissionKindQuiz
	}
	return SubmissionKindExam
}

// IsQuiz reports whether the submission was taken against a quiz.
func (s Submission) IsQuiz() bool {
	return s.Kind() == SubmissionKindQuiz
}

// StudentUsername resolves the student identity, preferring the linked user
// over the denormalised name captured at submit time.
func (s Submission) StudentUsername() string {
	if s.Student != nil && s.Student.Username != "" {
		return s.Student.Username
	}
	return s.StudentName
}

// Answer records one answered question inside a submission. QuestionID is
// nullable so answers survive question deletion.
type Answer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"index;not null" json:"submission_id"`
	QuestionID   *uint     `gorm:"index" json:"question_id"`
	Question     *Question `json:"question"`
	TextAnswer   string    `gorm:"type:text" json:"text_answer"`
	FilePath     string    `gorm:"size:512" json:"file_path"`
	MarksAwarded int       `gorm:"not null;default:0" json:"marks_awarded"`
	IsCorrect    *bool     `json:"is_correct"`
}
