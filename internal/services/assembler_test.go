package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiretrack/screening-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestAssembleSkipsFailedDocuments(t *testing.T) {
	attachments := []models.Attachment{
		{FileURL: "https://cdn.example.com/resume.pdf", RequirementName: strPtr("Resume")},
		{FileURL: "https://cdn.example.com/scanned.pdf", RequirementName: strPtr("Diploma")},
		{FileURL: "https://cdn.example.com/id.png", RequirementName: strPtr("Valid ID")},
	}

	resolver := &stubResolver{kinds: map[string]models.FileKind{
		"https://cdn.example.com/resume.pdf":  models.KindPDF,
		"https://cdn.example.com/scanned.pdf": models.KindPDF,
		"https://cdn.example.com/id.png":      models.KindImage,
	}}
	extractor := &stubExtractor{
		pdfTexts: map[string]string{
			"https://cdn.example.com/resume.pdf": "John Doe, Pasig City, BSN graduate",
			// scanned.pdf yields nothing
		},
		imageTexts: map[string]string{
			"https://cdn.example.com/id.png": "Republic of the Philippines ID card",
		},
	}

	assembler := NewDocumentAssembler(resolver, extractor, testLogger())

	var messages []string
	documents := assembler.Assemble(context.Background(), attachments, func(msg string, _ map[string]any) {
		messages = append(messages, msg)
	})

	require.Len(t, documents, 2)
	assert.Equal(t, "Resume", documents[0].Label)
	assert.Equal(t, "John Doe, Pasig City, BSN graduate", documents[0].Text)
	assert.Equal(t, "Valid ID", documents[1].Label)

	assert.Contains(t, messages, "Found 3 document(s) to analyze")
	assert.Contains(t, messages, "Analyzing document 1/3: Resume")
	assert.Contains(t, messages, "Completed analyzing: Resume")
	assert.Contains(t, messages, "Could not extract text from: Diploma")
	assert.GreaterOrEqual(t, len(messages), len(attachments)+1)
}

func TestAssembleEmptyAttachmentList(t *testing.T) {
	assembler := NewDocumentAssembler(&stubResolver{}, &stubExtractor{}, testLogger())

	var messages []string
	documents := assembler.Assemble(context.Background(), nil, func(msg string, _ map[string]any) {
		messages = append(messages, msg)
	})

	assert.Empty(t, documents)
	assert.Equal(t, []string{"Found 0 document(s) to analyze"}, messages)
}

func TestAssembleUnknownKindTriesPDFThenImage(t *testing.T) {
	url := "https://uploads.example.com/opaque-ref"
	extractor := &stubExtractor{
		imageTexts: map[string]string{url: "text from image path"},
	}

	assembler := NewDocumentAssembler(&stubResolver{}, extractor, testLogger())

	documents := assembler.Assemble(context.Background(), []models.Attachment{{FileURL: url}}, nil)

	require.Len(t, documents, 1)
	assert.Equal(t, "text from image path", documents[0].Text)
	assert.Equal(t, []string{url}, extractor.pdfCalls, "PDF path is attempted first")
	assert.Equal(t, []string{url}, extractor.imageCalls)
}

func TestAssembleNilProgressFunc(t *testing.T) {
	url := "https://cdn.example.com/resume.pdf"
	resolver := &stubResolver{kinds: map[string]models.FileKind{url: models.KindPDF}}
	extractor := &stubExtractor{pdfTexts: map[string]string{url: "resume text"}}

	assembler := NewDocumentAssembler(resolver, extractor, testLogger())

	assert.NotPanics(t, func() {
		documents := assembler.Assemble(context.Background(), []models.Attachment{{FileURL: url}}, nil)
		assert.Len(t, documents, 1)
	})
}

func TestAttachmentLabel(t *testing.T) {
	tests := []struct {
		name       string
		attachment models.Attachment
		index      int
		want       string
	}{
		{
			name:       "requirement name wins",
			attachment: models.Attachment{FileURL: "https://cdn.example.com/abc.pdf", RequirementName: strPtr("Resume"), FileName: strPtr("final_v2.pdf")},
			want:       "Resume",
		},
		{
			name:       "file name next",
			attachment: models.Attachment{FileURL: "https://cdn.example.com/abc.pdf", FileName: strPtr("final_v2.pdf")},
			want:       "final_v2.pdf",
		},
		{
			name:       "url basename next",
			attachment: models.Attachment{FileURL: "https://cdn.example.com/files/transcript.pdf"},
			want:       "transcript.pdf",
		},
		{
			name:       "positional placeholder last",
			attachment: models.Attachment{FileURL: "https://cdn.example.com/"},
			index:      2,
			want:       "Document 3",
		},
		{
			name:       "empty requirement name ignored",
			attachment: models.Attachment{FileURL: "https://cdn.example.com/x.pdf", RequirementName: strPtr(""), FileName: strPtr("scan.jpg")},
			want:       "scan.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attachmentLabel(tt.attachment, tt.index))
		})
	}
}
