// Package ingestion extracts and cleans resume text from uploaded documents.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported resume document format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

var (
	errNoText = errors.New("document contains no text")
	xmlTags   = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat picks the document format from the file extension, falling back
// to the declared content type.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch mediaType {
	case mimePDF:
		return FormatPDF, nil
	case mimeDOCX:
		return FormatDOCX, nil
	case mimeText:
		return FormatText, nil
	}
	return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
}

// Extract returns the cleaned text of an uploaded resume.
func Extract(filename, contentType string, data []byte) (string, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return "", err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	default:
		raw = string(bytes.ToValidUTF8(data, []byte(" ")))
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Cause: err}
	}

	text := CleanText(raw)
	if text == "" {
		return "", &ExtractionError{Format: format, Cause: errNoText}
	}
	return text, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText turns WordprocessingML into plain text, one paragraph per line.
func docxXMLToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	return html.UnescapeString(xmlTags.ReplaceAllString(xml, ""))
}
