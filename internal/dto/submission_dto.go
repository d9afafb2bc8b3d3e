package dto

import (
	"time"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// ExamAnswerInput is one answered exam question inside a submit request.
type ExamAnswerInput struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	TextAnswer string `json:"text_answer"`
	FilePath   string `json:"file_path"`
}

// ExamSubmitRequest records a student's exam attempt. StudentID is a legacy
// fallback honoured only when no bearer token identifies the student.
type ExamSubmitRequest struct {
	ExamID    uint              `json:"exam_id" validate:"required,gt=0"`
	StudentID uint              `json:"student_id"`
	Answers   []ExamAnswerInput `json:"answers" validate:"dive"`
}

// ExamSubmitResponse acknowledges a stored exam attempt.
type ExamSubmitResponse struct {
	SubmissionID uint `json:"submission_id"`
}

// QuizAnswerInput is one selected option inside a quiz submit request.
type QuizAnswerInput struct {
	QuestionID     uint   `json:"question_id" validate:"required,gt=0"`
	SelectedOption string `json:"selected_option"`
}

// QuizSubmitRequest records a student's quiz attempt.
type QuizSubmitRequest struct {
	QuizTitle   string            `json:"quiz_title" validate:"required"`
	StudentName string            `json:"student_name"`
	Answers     []QuizAnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// QuizSubmitResponse reports the auto-graded result.
type QuizSubmitResponse struct {
	SubmissionID   uint   `json:"submission_id"`
	Marks          int    `json:"marks"`
	TotalQuestions int    `json:"total_questions"`
	FormattedScore string `json:"formatted_score"`
}

// EvaluateRequest carries per-answer marks for a manual evaluation pass.
// Marks are keyed by answer ID and fully overwrite any previous evaluation.
type EvaluateRequest struct {
	MarksAwarded map[uint]int `json:"marks_awarded" validate:"required,min=1"`
	Comment      string       `json:"comment"`
}

// AppendAnswerRequest attaches a late answer to an existing submission.
type AppendAnswerRequest struct {
	SubmissionID uint   `json:"submission_id" validate:"required,gt=0"`
	TextAnswer   string `json:"text_answer"`
	FilePath     string `json:"file_path"`
}

// AnswerDetail serializes one answer inside a submission detail view.
type AnswerDetail struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"question_text"`
	Marks        int    `json:"marks"`
	TextAnswer   string `json:"text_answer"`
	FilePath     string `json:"file_path,omitempty"`
	MarksAwarded int    `json:"marks_awarded"`
	IsCorrect    bool   `json:"is_correct"`
}

// SubmissionDetail is the full submission view served to authorised readers.
type SubmissionDetail struct {
	ID              uint           `json:"id"`
	StudentName     string         `json:"student_name"`
	ExamTitle       string         `json:"exam_title,omitempty"`
	QuizTitle       string         `json:"quiz_title,omitempty"`
	Kind            string         `json:"kind"`
	SubmittedAt     time.Time      `json:"submitted_at"`
	Evaluated       bool           `json:"evaluated"`
	Marks           int            `json:"marks"`
	TeacherComments string         `json:"teacher_comments,omitempty"`
	Answers         []AnswerDetail `json:"answers"`
}

// NewSubmissionDetail maps a submission and its answers onto the detail view.
func NewSubmissionDetail(submission models.Submission) SubmissionDetail {
	answers := make([]AnswerDetail, 0, len(submission.Answers))
	for _, answer := range submission.Answers {
		detail := AnswerDetail{
			ID:           answer.ID,
			QuestionText: "N/A",
			Marks:        1,
			TextAnswer:   answer.TextAnswer,
			FilePath:     answer.FilePath,
			MarksAwarded: answer.MarksAwarded,
		}
		if answer.Question != nil {
			detail.QuestionText = answer.Question.Text
			detail.Marks = answer.Question.Marks
		}
		if answer.IsCorrect != nil {
			detail.IsCorrect = *answer.IsCorrect
		}
		answers = append(answers, detail)
	}

	marks := 0
	if submission.Marks != nil {
		marks = *submission.Marks
	}

	return SubmissionDetail{
		ID:              submission.ID,
		StudentName:     submission.StudentUsername(),
		ExamTitle:       submission.ExamTitle,
		QuizTitle:       submission.QuizTitle,
		Kind:            submission.Kind(),
		SubmittedAt:     submission.SubmittedAt,
		Evaluated:       submission.Evaluated,
		Marks:           marks,
		TeacherComments: submission.TeacherComments,
		Answers:         answers,
	}
}
