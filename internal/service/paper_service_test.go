package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

func newPaperService(t *testing.T) (PaperService, *storageStub, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t)
	storage := &storageStub{}
	svc := NewPaperService(repository.NewPaperRepository(db), storage, testValidator(), testLogger())

	return svc, storage, db
}

func TestPaperUploadArchivesPDF(t *testing.T) {
	svc, storage, db := newPaperService(t)

	file := buildFileHeader(t, "maths-2024.pdf", pdfHeader)
	paper, err := svc.Upload(context.Background(), dto.PaperUploadRequest{Subject: "Mathematics", Year: 2024}, file)
	require.NoError(t, err)
	require.Equal(t, "Mathematics", paper.Subject)
	require.Equal(t, 2024, paper.Year)
	require.Equal(t, "https://cdn.example.com/maths-2024.pdf", paper.FileURL)
	require.Equal(t, 1, storage.uploads)

	var stored models.Paper
	require.NoError(t, db.First(&stored, paper.ID).Error)
	require.Equal(t, "maths-2024.pdf", stored.FileName)
}

func TestPaperUploadRejectsNonPDF(t *testing.T) {
	svc, storage, _ := newPaperService(t)

	file := buildFileHeader(t, "maths-2024.txt", []byte("not a pdf"))
	_, err := svc.Upload(context.Background(), dto.PaperUploadRequest{Subject: "Mathematics", Year: 2024}, file)
	require.ErrorIs(t, err, ErrPaperNotPDF)
	require.Zero(t, storage.uploads)
}

func TestPaperUploadValidatesMetadata(t *testing.T) {
	svc, _, _ := newPaperService(t)

	file := buildFileHeader(t, "paper.pdf", pdfHeader)
	_, err := svc.Upload(context.Background(), dto.PaperUploadRequest{Year: 2024}, file)
	require.Error(t, err, "subject is required")

	_, err = svc.Upload(context.Background(), dto.PaperUploadRequest{Subject: "Math"}, file)
	require.Error(t, err, "year is required")
}

func TestPaperListOrdersNewestYearFirst(t *testing.T) {
	svc, _, db := newPaperService(t)

	require.NoError(t, db.Create(&models.Paper{Subject: "Math", Year: 2022, FileName: "a.pdf", FileURL: "u1"}).Error)
	require.NoError(t, db.Create(&models.Paper{Subject: "Math", Year: 2024, FileName: "b.pdf", FileURL: "u2"}).Error)

	papers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, papers, 2)
	require.Equal(t, 2024, papers[0].Year)

	fetched, err := svc.GetByID(context.Background(), papers[0].ID)
	require.NoError(t, err)
	require.Equal(t, "b.pdf", fetched.FileName)

	_, err = svc.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrPaperNotFound)
}
