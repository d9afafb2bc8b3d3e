package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

func TestGradeSelection(t *testing.T) {
	question := &models.Question{
		Text:  "What is 6 x 7?",
		Marks: 1,
		Options: []models.Option{
			{Text: "41", IsCorrect: false},
			{Text: "42", IsCorrect: true},
		},
	}

	tests := []struct {
		name        string
		question    *models.Question
		selected    string
		wantCorrect bool
		wantMarks   int
	}{
		{name: "exact match", question: question, selected: "42", wantCorrect: true, wantMarks: 1},
		{name: "surrounding whitespace trimmed", question: question, selected: "  42 ", wantCorrect: true, wantMarks: 1},
		{name: "case insensitive", question: &models.Question{Marks: 2, Options: []models.Option{{Text: "Paris", IsCorrect: true}}}, selected: "pArIs", wantCorrect: true, wantMarks: 2},
		{name: "wrong option", question: question, selected: "41", wantCorrect: false, wantMarks: 0},
		{name: "unknown text", question: question, selected: "forty-two", wantCorrect: false, wantMarks: 0},
		{name: "nil question treated as incorrect", question: nil, selected: "42", wantCorrect: false, wantMarks: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			correct, marks := GradeSelection(tc.question, tc.selected)
			require.Equal(t, tc.wantCorrect, correct)
			require.Equal(t, tc.wantMarks, marks)
		})
	}
}

func TestExamTotals(t *testing.T) {
	marks := 12
	submission := models.Submission{
		ExamTitle: "Algebra Final",
		Marks:     &marks,
		Answers: []models.Answer{
			{Question: &models.Question{Marks: 5}},
			{Question: &models.Question{Marks: 10}},
		},
	}

	obtained, possible := ExamTotals(submission)
	require.Equal(t, 12, obtained)
	require.Equal(t, 15, possible)
}

func TestExamTotalsDeletedQuestionCountsAsOne(t *testing.T) {
	marks := 4
	submission := models.Submission{
		Marks: &marks,
		Answers: []models.Answer{
			{Question: &models.Question{Marks: 5}},
			{Question: nil},
		},
	}

	_, possible := ExamTotals(submission)
	require.Equal(t, 6, possible)
}

func TestExamTotalsUnevaluated(t *testing.T) {
	submission := models.Submission{
		Answers: []models.Answer{{Question: &models.Question{Marks: 3}}},
	}

	obtained, possible := ExamTotals(submission)
	require.Equal(t, 0, obtained)
	require.Equal(t, 3, possible)
}

func TestQuizTotals(t *testing.T) {
	yes := true
	no := false
	submission := models.Submission{
		QuizTitle: "Capitals",
		Answers: []models.Answer{
			{IsCorrect: &yes},
			{IsCorrect: &no},
			{IsCorrect: &yes},
		},
	}

	obtained, possible := QuizTotals(submission, 10)
	require.Equal(t, 2, obtained)
	require.Equal(t, 3, possible)
}

func TestQuizTotalsFallsBackToQuestionCount(t *testing.T) {
	obtained, possible := QuizTotals(models.Submission{QuizTitle: "Empty"}, 7)
	require.Equal(t, 0, obtained)
	require.Equal(t, 7, possible)
}

func TestFormatScore(t *testing.T) {
	require.Equal(t, "12 / 15", FormatScore(12, 15))
	require.Equal(t, "0 / 0", FormatScore(0, 0))
}

func TestFormatScorePercent(t *testing.T) {
	require.Equal(t, "12 / 15 (80.0%)", FormatScorePercent(12, 15))
	require.Equal(t, "1 / 3 (33.3%)", FormatScorePercent(1, 3))
	require.Equal(t, "0 / 0 (0.0%)", FormatScorePercent(0, 0))
}
