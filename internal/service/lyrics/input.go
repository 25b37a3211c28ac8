package lyrics

import (
	"net/url"
	"strings"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// IngestInput holds a raw lyrics text to analyse and import.
type IngestInput struct {
	Title  string
	Lyrics string
}

// Validate checks all fields and collects all errors.
func (i IngestInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.Lyrics) == "" {
		errs = append(errs, domain.FieldError{Field: "lyrics", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// IngestURLInput names a lyrics page. Title overrides the page title when set.
type IngestURLInput struct {
	URL   string
	Title string
}

// Validate checks all fields and collects all errors.
func (i IngestURLInput) Validate() error {
	raw := strings.TrimSpace(i.URL)
	if raw == "" {
		return domain.NewValidationError("url", "required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewValidationError("url", "must be an absolute http(s) URL")
	}
	return nil
}
