package main

import (
	"context"
	"log"
	"os"
	"strings"

	"hiretrack/screening-api/internal/config"
	"hiretrack/screening-api/internal/services"
)

func main() {
	log.Println("🚀 Starting guideline ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is required for ingestion")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	knowledge, err := services.NewKnowledgeBase(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()

	if err := knowledge.EnsureCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	documents := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/hiring_guidelines.pdf",
			DocType: "hiring_guidelines",
			Name:    "Company Hiring Guidelines",
		},
		{
			Path:    "./reference_docs/screening_rubric.pdf",
			DocType: "screening_rubric",
			Name:    "Application Screening Rubric",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Type: %s", doc.DocType)

		// Check if file exists
		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		// Extract text from PDF
		log.Printf("   📖 Extracting text...")
		content, err := pdfParser.ExtractTextFromFile(doc.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(content.Text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Previous chunks for this document are replaced, not appended.
		if err := knowledge.DeleteDocument(ctx, doc.DocType); err != nil {
			log.Printf("   ⚠️  Failed to clear previous chunks: %v", err)
		}

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			if err := knowledge.UpsertChunk(ctx, doc.DocType, doc.DocType, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All guidelines ingested successfully!")
}
