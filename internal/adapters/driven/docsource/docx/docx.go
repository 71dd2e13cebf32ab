// Package docx extracts authoring prompt text from Word documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source reads .docx files from disk.
type Source struct{}

// New creates a new docx document source.
func New() *Source {
	return &Source{}
}

// ExtractText returns the document's paragraph text, one paragraph per
// line, with empty paragraphs dropped.
func (s *Source) ExtractText(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening docx %s: %v", domain.ErrInvalidInput, path, err)
	}
	defer reader.Close()

	content, err := readDocumentXML(&reader.Reader)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", fmt.Errorf("%w: %s has no word/document.xml", domain.ErrInvalidInput, path)
	}

	return parseParagraphs(content), nil
}

// readDocumentXML finds and reads word/document.xml from the archive.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening document.xml: %v", domain.ErrInvalidInput, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading document.xml: %v", domain.ErrInvalidInput, err)
		}
		return content, nil
	}
	return nil, nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseParagraphs extracts paragraph text, skipping empty paragraphs.
func parseParagraphs(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var lines []string
	for _, para := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range para.Runs {
			for _, text := range r.Text {
				sb.WriteString(text.Content)
			}
		}
		line := strings.TrimSpace(sb.String())
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}
