package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func (c Config) validate() error {
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("cloudinary credentials must be provided")
	}
	return nil
}

// Service stores question papers and answer attachments on Cloudinary.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary-backed file store.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload stores the file under a collision-free public ID derived from its
// original name and returns the secure delivery URL.
func (s *Service) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	result, err := s.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicIDFor(name),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info().
		Str("public_id", result.PublicID).
		Int("bytes", result.Bytes).
		Msg("asset stored")

	return result.SecureURL, nil
}

// publicIDFor slugs the original file name and appends a random suffix so
// repeated uploads of the same paper never overwrite each other.
func publicIDFor(name string) string {
	slug := slugify(strings.TrimSuffix(name, filepath.Ext(name)))
	if slug == "" {
		slug = "attachment"
	}

	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
