package service

import (
	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// CanViewSubmission decides whether the principal may read a submission.
// Admins always may; teachers only for attempts against their own exams;
// students only for their own attempts.
func CanViewSubmission(submission models.Submission, principal auth.Principal) bool {
	switch principal.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleTeacher:
		return teacherOwnsSubmission(submission, principal)
	case auth.RoleStudent:
		return studentOwnsSubmission(submission, principal)
	default:
		return false
	}
}

// CanModifySubmission decides whether the principal may evaluate or delete a
// submission. Students never may, not even their own.
func CanModifySubmission(submission models.Submission, principal auth.Principal) bool {
	switch principal.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleTeacher:
		return teacherOwnsSubmission(submission, principal)
	default:
		return false
	}
}

func teacherOwnsSubmission(submission models.Submission, principal auth.Principal) bool {
	if submission.Exam != nil && submission.Exam.CreatedBy != nil {
		return principal.SameUser(submission.Exam.CreatedBy.Username)
	}
	if submission.Quiz != nil && submission.Quiz.CreatedBy != nil {
		return principal.SameUser(submission.Quiz.CreatedBy.Username)
	}
	return false
}

func studentOwnsSubmission(submission models.Submission, principal auth.Principal) bool {
	if submission.Student != nil && principal.SameUser(submission.Student.Username) {
		return true
	}
	return principal.SameUser(submission.StudentName)
}
