package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// SubmissionRepository defines data operations for the submission ledger.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	AppendAnswer(ctx context.Context, answer *models.Answer) error
	ListAll(ctx context.Context) ([]models.Submission, error)
	ListByExamCreator(ctx context.Context, username string) ([]models.Submission, error)
	ListByQuizCreator(ctx context.Context, username string) ([]models.Submission, error)
	ListByStudent(ctx context.Context, username string) ([]models.Submission, error)
	SaveEvaluation(ctx context.Context, submission *models.Submission) error
	Delete(ctx context.Context, id uint) error
	DeleteByExamID(ctx context.Context, examID uint) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Answers.Question").
		Preload("Exam.CreatedBy").
		Preload("Student")
}

// Create persists the submission and its answers in one transaction, so a
// half-written attempt is never observable.
func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) AppendAnswer(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *submissionRepository) ListAll(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByExamCreator(ctx context.Context, username string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).
		Joins("JOIN exams ON exams.id = submissions.exam_id").
		Joins("JOIN users ON users.id = exams.created_by_id").
		Where("LOWER(users.username) = LOWER(?)", username).
		Order("submissions.submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// ListByQuizCreator matches quiz attempts against the quiz author through the
// denormalised quiz title, since quiz submissions carry no quiz foreign key.
func (r *submissionRepository) ListByQuizCreator(ctx context.Context, username string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).
		Joins("JOIN quizzes ON LOWER(quizzes.title) = LOWER(submissions.quiz_title)").
		Joins("JOIN users ON users.id = quizzes.created_by_id").
		Where("LOWER(users.username) = LOWER(?)", username).
		Order("submissions.submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// ListByStudent matches either the linked user or the denormalised student
// name captured at submit time.
func (r *submissionRepository) ListByStudent(ctx context.Context, username string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).
		Joins("LEFT JOIN users ON users.id = submissions.student_id").
		Where("LOWER(users.username) = LOWER(?) OR LOWER(submissions.student_name) = LOWER(?)", username, username).
		Order("submissions.submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// SaveEvaluation writes the evaluated marks back to the submission row and
// every answer row in one transaction.
func (r *submissionRepository) SaveEvaluation(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range submission.Answers {
			answer := submission.Answers[i]
			if err := tx.Model(&models.Answer{}).
				Where("id = ?", answer.ID).
				Updates(map[string]interface{}{
					"marks_awarded": answer.MarksAwarded,
					"is_correct":    answer.IsCorrect,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"evaluated":        submission.Evaluated,
				"marks":            submission.Marks,
				"teacher_comments": submission.TeacherComments,
			}).Error
	})
}

func (r *submissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Submission{}, id).Error
	})
}

// DeleteByExamID removes every submission recorded against the exam, answers
// first, and reports how many submissions were removed.
func (r *submissionRepository) DeleteByExamID(ctx context.Context, examID uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Submission{}).
			Where("exam_id = ?", examID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("submission_id IN ?", ids).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Submission{})
		removed = result.RowsAffected
		return result.Error
	})

	return removed, err
}
