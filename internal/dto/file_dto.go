package dto

// FileUploadResponse reports where an uploaded attachment landed.
type FileUploadResponse struct {
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}
