package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildDOCX assembles a minimal valid DOCX archive holding the given
// paragraphs, one run each.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(p)
		body.WriteString("</w:t></w:r></w:p>")
	}

	document := fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s</w:body></w:document>`,
		body.String(),
	)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(document)); err != nil {
		t.Fatalf("failed to write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	extractor := NewExtractorService()
	data := buildDOCX(t, "Jane Doe", "Senior Software Engineer with ten years of backend experience.")

	text, err := extractor.Extract(data, KindDOCX)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if !strings.Contains(text, "Jane Doe") {
		t.Errorf("extracted text missing first paragraph: %q", text)
	}
	if !strings.Contains(text, "backend experience") {
		t.Errorf("extracted text missing second paragraph: %q", text)
	}
}

func TestExtractDOCXNotAZip(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.Extract([]byte("definitely not a zip archive"), KindDOCX)
	if err == nil {
		t.Fatal("expected error for corrupt DOCX")
	}

	var unreadable *UnreadableDocumentError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected *UnreadableDocumentError, got %T", err)
	}
	if unreadable.Kind != KindDOCX {
		t.Errorf("kind = %s, want %s", unreadable.Kind, KindDOCX)
	}
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	extractor := NewExtractorService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create("word/other.xml")
	f.Write([]byte("<x/>"))
	zw.Close()

	_, err := extractor.Extract(buf.Bytes(), KindDOCX)
	var unreadable *UnreadableDocumentError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected *UnreadableDocumentError, got %v", err)
	}
}

func TestExtractDOCXEmptyBody(t *testing.T) {
	extractor := NewExtractorService()
	data := buildDOCX(t)

	// A well-formed document with no text decodes to an empty string; the
	// orchestrator's minimum-length check owns that case.
	text, err := extractor.Extract(data, KindDOCX)
	if err != nil {
		t.Fatalf("Extract returned error for empty body: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestExtractPDFCorrupt(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.Extract([]byte("%PDF-garbage that is not a real file"), KindPDF)
	if err == nil {
		t.Fatal("expected error for corrupt PDF")
	}

	var unreadable *UnreadableDocumentError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected *UnreadableDocumentError, got %T", err)
	}
	if unreadable.Kind != KindPDF {
		t.Errorf("kind = %s, want %s", unreadable.Kind, KindPDF)
	}
}

func TestExtractUnsupportedKind(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.Extract([]byte("plain text"), DocumentKind("txt"))
	if err == nil {
		t.Fatal("expected error for unsupported kind")
	}
}
