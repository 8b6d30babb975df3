package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParserService reads the embedded text layer of a PDF. Scanned documents
// have no text layer and come back empty; callers fall through to the vision
// model for those.
type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextFromFile(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	text, err := readAllPages(reader, false)
	if err != nil {
		return "", err
	}
	return text, nil
}

// ExtractTextFromFile implements PDFParserService.
func (p *pdfParserService) ExtractTextFromFile(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, err := readAllPages(reader, true)
	if err != nil {
		return nil, err
	}

	return &PDFContent{
		Text:      text,
		PageCount: reader.NumPage(),
		FilePath:  filePath,
	}, nil
}

func readAllPages(reader *pdf.Reader, pageMarkers bool) (string, error) {
	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		if pageMarkers {
			textBuilder.WriteString(fmt.Sprintf("--- Page %d ---\n", pageIndex))
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return text, nil
}
