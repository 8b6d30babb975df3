package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const pdfExtractionPrompt = "Extract all text from this PDF document. Return only the extracted text, " +
	"preserving the structure and formatting as much as possible. Include all personal information " +
	"like names, addresses, phone numbers, emails, education details, and work experience."

const imageExtractionPrompt = "Extract all text from this image. Return only the extracted text, " +
	"preserving the structure and formatting as much as possible. Include all personal information " +
	"like names, addresses, phone numbers, emails, and other details."

// minTextLayerChars is the threshold above which a PDF's embedded text layer
// is trusted and the vision-model call is skipped. Below it the PDF is
// treated as scanned.
const minTextLayerChars = 200

// TextExtractor pulls raw text out of one uploaded file via the multimodal
// model. Both entry points return the empty string on any failure (fetch,
// decode, model error): extraction failure for one document must never abort
// a batch.
type TextExtractor interface {
	ExtractFromPDF(ctx context.Context, fileURL string) string
	ExtractFromImage(ctx context.Context, fileURL string) string
}

type textExtractor struct {
	gemini     GeminiService
	pdfParser  PDFParserService
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewTextExtractor(
	gemini GeminiService,
	pdfParser PDFParserService,
	httpClient *http.Client,
	logger *zap.SugaredLogger,
) TextExtractor {
	return &textExtractor{
		gemini:     gemini,
		pdfParser:  pdfParser,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ExtractFromPDF implements TextExtractor.
func (e *textExtractor) ExtractFromPDF(ctx context.Context, fileURL string) string {
	data := e.fetch(ctx, fileURL)
	if len(data) == 0 {
		return ""
	}

	// Text-layer fast path. Scanned PDFs yield little or nothing here and
	// fall through to the vision model.
	if text, err := e.pdfParser.ExtractText(data); err == nil && utf8.RuneCountInString(strings.TrimSpace(text)) >= minTextLayerChars {
		return text
	}

	text, err := e.gemini.GenerateWithFile(ctx, pdfExtractionPrompt, data, "application/pdf")
	if err != nil {
		e.logger.Warnw("PDF extraction failed", "url", fileURL, "error", err)
		return ""
	}
	return text
}

// ExtractFromImage implements TextExtractor.
func (e *textExtractor) ExtractFromImage(ctx context.Context, fileURL string) string {
	data := e.fetch(ctx, fileURL)
	if len(data) == 0 {
		return ""
	}

	text, err := e.gemini.GenerateWithFile(ctx, imageExtractionPrompt, data, imageMimeTypeFor(fileURL))
	if err != nil {
		e.logger.Warnw("image extraction failed", "url", fileURL, "error", err)
		return ""
	}
	return text
}

func (e *textExtractor) fetch(ctx context.Context, fileURL string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		e.logger.Warnw("fetch skipped: bad file URL", "url", fileURL, "error", err)
		return nil
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Warnw("fetch failed", "url", fileURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		e.logger.Warnw("fetch returned error status", "url", fileURL, "status", resp.StatusCode)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		e.logger.Warnw("fetch read failed", "url", fileURL, "error", err)
		return nil
	}
	return data
}
