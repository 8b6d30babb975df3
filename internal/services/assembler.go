package services

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
)

// ProgressFunc receives one progress message as the pipeline advances.
// Implementations must not block.
type ProgressFunc func(message string, data map[string]any)

// DocumentAssembler turns an application's attachments into labeled extracted
// documents. Attachments are processed strictly in order, one at a time, so a
// human watching the progress log sees an interpretable sequence. Attachments
// that yield no text are dropped, with a progress note.
type DocumentAssembler interface {
	Assemble(ctx context.Context, attachments []models.Attachment, emit ProgressFunc) []models.ExtractedDocument
}

type documentAssembler struct {
	resolver  ContentTypeResolver
	extractor TextExtractor
	logger    *zap.SugaredLogger
}

func NewDocumentAssembler(
	resolver ContentTypeResolver,
	extractor TextExtractor,
	logger *zap.SugaredLogger,
) DocumentAssembler {
	return &documentAssembler{
		resolver:  resolver,
		extractor: extractor,
		logger:    logger,
	}
}

// Assemble implements DocumentAssembler.
func (a *documentAssembler) Assemble(
	ctx context.Context,
	attachments []models.Attachment,
	emit ProgressFunc,
) []models.ExtractedDocument {
	if emit == nil {
		emit = func(string, map[string]any) {}
	}

	emit(fmt.Sprintf("Found %d document(s) to analyze", len(attachments)), nil)

	documents := make([]models.ExtractedDocument, 0, len(attachments))
	for i, attachment := range attachments {
		label := attachmentLabel(attachment, i)
		emit(fmt.Sprintf("Analyzing document %d/%d: %s", i+1, len(attachments), label), nil)

		text := a.extract(ctx, attachment)
		if strings.TrimSpace(text) == "" {
			a.logger.Warnw("no text extracted from attachment", "label", label, "url", attachment.FileURL)
			emit(fmt.Sprintf("Could not extract text from: %s", label), nil)
			continue
		}

		documents = append(documents, models.ExtractedDocument{Label: label, Text: text})
		emit(fmt.Sprintf("Completed analyzing: %s", label), nil)
	}

	return documents
}

func (a *documentAssembler) extract(ctx context.Context, attachment models.Attachment) string {
	switch a.resolver.DetectKind(ctx, attachment.FileURL) {
	case models.KindPDF:
		return a.extractor.ExtractFromPDF(ctx, attachment.FileURL)
	case models.KindImage:
		return a.extractor.ExtractFromImage(ctx, attachment.FileURL)
	default:
		// Unknown kind: PDF first, then image. A file that is neither
		// legitimately produces two empty attempts before being dropped.
		text := a.extractor.ExtractFromPDF(ctx, attachment.FileURL)
		if strings.TrimSpace(text) == "" {
			text = a.extractor.ExtractFromImage(ctx, attachment.FileURL)
		}
		return text
	}
}

// attachmentLabel names one extracted document: the requirement's declared
// name (e.g. "Resume"), else the stored filename, else the URL basename, else
// a positional placeholder.
func attachmentLabel(attachment models.Attachment, index int) string {
	if attachment.RequirementName != nil && *attachment.RequirementName != "" {
		return *attachment.RequirementName
	}
	if attachment.FileName != nil && *attachment.FileName != "" {
		return *attachment.FileName
	}
	if u, err := url.Parse(attachment.FileURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return fmt.Sprintf("Document %d", index+1)
}
