package dto

import "time"

// GradingRow is one entry in the teacher-facing evaluation queue.
type GradingRow struct {
	ID            uint      `json:"id"`
	StudentName   string    `json:"student_name"`
	ExamTitle     string    `json:"exam_title"`
	Evaluated     bool      `json:"evaluated"`
	SubmittedAt   time.Time `json:"submitted_at"`
	MarksObtained int       `json:"marks_obtained"`
	TotalMarks    int       `json:"total_marks"`
	MarksDisplay  string    `json:"marks_display"`
}

// MySubmissionRow summarizes one of the student's own exam attempts.
type MySubmissionRow struct {
	SubmissionID uint      `json:"submission_id"`
	ExamID       uint      `json:"exam_id"`
	ExamTitle    string    `json:"exam_title"`
	Evaluated    bool      `json:"evaluated"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Marks        int       `json:"marks"`
}

// PerformanceRow is one evaluated attempt in the performance report.
type PerformanceRow struct {
	StudentName   string `json:"student_name"`
	Title         string `json:"title"`
	Kind          string `json:"kind"`
	MarksObtained int    `json:"marks_obtained"`
	TotalMarks    int    `json:"total_marks"`
	MarksDisplay  string `json:"marks_display"`
	Comment       string `json:"comment"`
	Status        string `json:"status"`
}
