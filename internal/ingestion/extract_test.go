package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		expected    Format
		wantErr     bool
	}{
		{"pdf extension", "cv.PDF", "", FormatPDF, false},
		{"docx extension", "cv.docx", "application/octet-stream", FormatDOCX, false},
		{"txt extension", "cv.txt", "", FormatText, false},
		{"pdf mime", "upload", "application/pdf", FormatPDF, false},
		{"docx mime", "upload", mimeDOCX, FormatDOCX, false},
		{"text mime with charset", "upload", "text/plain; charset=utf-8", FormatText, false},
		{"legacy doc", "cv.doc", "application/msword", "", true},
		{"image", "photo.png", "image/png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(tt.filename, tt.contentType)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				assert.ErrorAs(t, err, &unsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("resume.txt", "text/plain", []byte("Jane   Doe\r\nGo developer\n\n\n\nBerlin"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer\n\nBerlin", text)
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t,
		`<w:document><w:body>`+
			`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Go Engineer &amp; SRE</w:t></w:r></w:p>`+
			`</w:body></w:document>`)

	text, err := Extract("resume.docx", mimeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Go Engineer & SRE", text)
}

func TestExtract_EmptyDocument(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body><w:p></w:p></w:body></w:document>`)

	_, err := Extract("resume.docx", "", data)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, FormatDOCX, extractionErr.Format)
	assert.ErrorIs(t, err, errNoText)
}

func TestExtract_CorruptDocx(t *testing.T) {
	_, err := Extract("resume.docx", "", []byte("not a zip"))
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract("resume.pdf", "application/pdf", []byte("%PDF-1.4 truncated"))
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, FormatPDF, extractionErr.Format)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("photo.png", "image/png", []byte{0x89, 0x50})
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "photo.png")
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<Relationships></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
