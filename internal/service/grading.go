package service

import (
	"fmt"
	"strings"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// GradeSelection scores a single quiz answer against the question's option
// set. The selected text matches when its trimmed, case-insensitive form
// equals any correct option's trimmed text. An unresolvable question is
// treated as incorrect rather than failing the whole submission.
func GradeSelection(question *models.Question, selected string) (bool, int) {
	if question == nil {
		return false, 0
	}

	trimmed := strings.TrimSpace(selected)
	for _, option := range question.Options {
		if !option.IsCorrect {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(option.Text), trimmed) {
			return true, question.Marks
		}
	}

	return false, 0
}

// ExamTotals derives the obtained and possible marks for an exam submission.
// Only questions actually answered contribute to the possible total; an
// answer whose question was deleted counts as one mark of possible credit.
func ExamTotals(submission models.Submission) (int, int) {
	obtained := 0
	if submission.Marks != nil {
		obtained = *submission.Marks
	}

	possible := 0
	for _, answer := range submission.Answers {
		if answer.Question != nil {
			possible += answer.Question.Marks
		} else {
			possible++
		}
	}

	return obtained, possible
}

// QuizTotals derives the obtained and possible tallies for a quiz submission:
// one point per correct answer out of the number of answers recorded. When no
// answers survived, fallbackQuestionCount (the quiz's current question count)
// stands in for the possible total.
func QuizTotals(submission models.Submission, fallbackQuestionCount int) (int, int) {
	obtained := 0
	for _, answer := range submission.Answers {
		if answer.IsCorrect != nil && *answer.IsCorrect {
			obtained++
		}
	}

	possible := len(submission.Answers)
	if possible == 0 {
		possible = fallbackQuestionCount
	}

	return obtained, possible
}

// Percentage computes obtained/possible as a percentage, zero when nothing
// was obtainable.
func Percentage(obtained, possible int) float64 {
	if possible <= 0 {
		return 0
	}
	return float64(obtained) * 100 / float64(possible)
}

// FormatScore renders the short "obtained / possible" display string.
func FormatScore(obtained, possible int) string {
	return fmt.Sprintf("%d / %d", obtained, possible)
}

// FormatScorePercent renders the full display string with a one-decimal percentage.
func FormatScorePercent(obtained, possible int) string {
	return fmt.Sprintf("%d / %d (%.1f%%)", obtained, possible, Percentage(obtained, possible))
}
