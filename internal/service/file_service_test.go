package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

var pdfHeader = []byte("%PDF-1.7\n%test document body")

type storageStub struct {
	uploads  int
	lastName string
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	s.uploads++
	s.lastName = name
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestFileServiceRejectsOversizedUpload(t *testing.T) {
	storage := &storageStub{}
	svc := NewFileService(storage, 1, testLogger())

	file := buildFileHeader(t, "big.pdf", bytes.Repeat([]byte("a"), 2*1024*1024))

	_, err := svc.Upload(context.Background(), file)
	require.ErrorIs(t, err, ErrFileTooLarge)
	require.Zero(t, storage.uploads)
}

func TestFileServiceRejectsDisallowedType(t *testing.T) {
	storage := &storageStub{}
	svc := NewFileService(storage, 5, testLogger())

	file := buildFileHeader(t, "notes.txt", []byte("plain text answer"))

	_, err := svc.Upload(context.Background(), file)
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestFileServiceStoresPDF(t *testing.T) {
	storage := &storageStub{}
	svc := NewFileService(storage, 5, testLogger())

	file := buildFileHeader(t, "solution.pdf", pdfHeader)

	response, err := svc.Upload(context.Background(), file)
	require.NoError(t, err)
	require.Equal(t, "solution.pdf", response.FileName)
	require.Equal(t, "https://cdn.example.com/solution.pdf", response.URL)
	require.Equal(t, "application/pdf", response.MimeType)
	require.Equal(t, int64(len(pdfHeader)), response.SizeBytes)
}

func TestFileServiceStoresImage(t *testing.T) {
	storage := &storageStub{}
	svc := NewFileService(storage, 5, testLogger())

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	file := buildFileHeader(t, "scan.png", pngHeader)

	response, err := svc.Upload(context.Background(), file)
	require.NoError(t, err)
	require.Equal(t, "image/png", response.MimeType)
}
