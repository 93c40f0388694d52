package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentKind identifies the declared format of an uploaded resume.
type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
)

// UnreadableDocumentError reports that the uploaded bytes could not be
// decoded as the declared format. Retrying the same bytes cannot succeed.
type UnreadableDocumentError struct {
	Kind DocumentKind
	Err  error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("failed to parse %s file: %v", strings.ToUpper(string(e.Kind)), e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error {
	return e.Err
}

type ExtractorService interface {
	Extract(data []byte, kind DocumentKind) (string, error)
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// Extract implements ExtractorService.
func (e *extractorService) Extract(data []byte, kind DocumentKind) (string, error) {
	switch kind {
	case KindPDF:
		return e.extractPDF(data)
	case KindDOCX:
		return e.extractDOCX(data)
	default:
		return "", fmt.Errorf("unsupported document kind: %s", kind)
	}
}

func (e *extractorService) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &UnreadableDocumentError{Kind: KindPDF, Err: err}
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, the rest may still carry the resume
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	// Zero extracted text is not a decode failure: the orchestrator's
	// minimum-length check reports it as insufficient content.
	return strings.TrimSpace(textBuilder.String()), nil
}

// wordDocument mirrors the paragraph/run structure of word/document.xml.
type wordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    struct {
		Paragraphs []struct {
			Runs []struct {
				Text string `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

func (e *extractorService) extractDOCX(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &UnreadableDocumentError{Kind: KindDOCX, Err: fmt.Errorf("failed to read DOCX as ZIP: %w", err)}
	}

	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == "word/document.xml" {
			documentFile = file
			break
		}
	}

	if documentFile == nil {
		return "", &UnreadableDocumentError{Kind: KindDOCX, Err: fmt.Errorf("document.xml not found in DOCX")}
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return "", &UnreadableDocumentError{Kind: KindDOCX, Err: fmt.Errorf("failed to open document.xml: %w", err)}
	}
	defer xmlFile.Close()

	xmlData, err := io.ReadAll(xmlFile)
	if err != nil {
		return "", &UnreadableDocumentError{Kind: KindDOCX, Err: fmt.Errorf("failed to read document.xml: %w", err)}
	}

	var doc wordDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return "", &UnreadableDocumentError{Kind: KindDOCX, Err: fmt.Errorf("failed to parse document.xml: %w", err)}
	}

	var textBuilder strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, run := range para.Runs {
			textBuilder.WriteString(run.Text)
		}
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}
