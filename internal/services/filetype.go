package services

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
)

// ContentTypeResolver decides whether an uploaded file reference points at a
// PDF, an image, or something it cannot classify. It never returns an error:
// classification failure degrades to KindUnknown and the caller falls back to
// trying both extraction paths.
type ContentTypeResolver interface {
	DetectKind(ctx context.Context, fileURL string) models.FileKind
}

type contentTypeResolver struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewContentTypeResolver(httpClient *http.Client, logger *zap.SugaredLogger) ContentTypeResolver {
	return &contentTypeResolver{
		httpClient: httpClient,
		logger:     logger,
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// DetectKind implements ContentTypeResolver. A recognized extension wins
// without a network call; extensionless references (common with upload
// providers) get a HEAD probe and are classified from the reported media type.
func (r *contentTypeResolver) DetectKind(ctx context.Context, fileURL string) models.FileKind {
	ext := referenceExtension(fileURL)
	if ext == ".pdf" {
		return models.KindPDF
	}
	if imageExtensions[ext] {
		return models.KindImage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fileURL, nil)
	if err != nil {
		r.logger.Warnw("content-type probe skipped: bad file URL", "url", fileURL, "error", err)
		return models.KindUnknown
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warnw("content-type probe failed", "url", fileURL, "error", err)
		return models.KindUnknown
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "pdf"):
		return models.KindPDF
	case strings.HasPrefix(contentType, "image/"):
		return models.KindImage
	default:
		return models.KindUnknown
	}
}

// referenceExtension returns the lowercased extension of the URL's path
// component, tolerating references that do not parse as URLs.
func referenceExtension(fileURL string) string {
	p := fileURL
	if u, err := url.Parse(fileURL); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}

// imageMimeTypeFor guesses the MIME type to attach to image bytes sent to the
// model. PNGs are declared as such, everything else goes as JPEG.
func imageMimeTypeFor(fileURL string) string {
	if referenceExtension(fileURL) == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
