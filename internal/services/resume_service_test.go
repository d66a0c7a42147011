package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisp-hire/interview-service/internal/utils"
)

// buildDocx assembles a minimal DOCX archive whose body holds one paragraph
// per input line.
func buildDocx(t *testing.T, lines ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t>`)
		xmlEscape(&body, line)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var archive bytes.Buffer
	writer := zip.NewWriter(&archive)
	entry, err := writer.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return archive.Bytes()
}

func xmlEscape(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
}

type failingExtractor struct{}

func (failingExtractor) ExtractText(data []byte) (string, error) {
	return "", errors.New("corrupt document")
}

func TestResumeService_Parse_PDF(t *testing.T) {
	service := NewResumeService(DocxTextExtractor{}, utils.NewDevelopmentLogger())

	info, err := service.Parse(context.Background(), []byte("%PDF-1.4 fake body"), MimePDF)
	require.NoError(t, err)

	assert.True(t, info.IsPDF)
	assert.Empty(t, info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Phone)
}

func TestResumeService_Parse_PDFSniffedFromContent(t *testing.T) {
	service := NewResumeService(DocxTextExtractor{}, utils.NewDevelopmentLogger())

	// No declared type: the magic bytes decide.
	info, err := service.Parse(context.Background(), []byte("%PDF-1.7\nsome body"), "")
	require.NoError(t, err)
	assert.True(t, info.IsPDF)
}

func TestResumeService_Parse_StripsMIMEParameters(t *testing.T) {
	service := NewResumeService(DocxTextExtractor{}, utils.NewDevelopmentLogger())

	info, err := service.Parse(context.Background(), []byte("%PDF-1.4"), "application/pdf; charset=utf-8")
	require.NoError(t, err)
	assert.True(t, info.IsPDF)
}

func TestResumeService_Parse_DOCX(t *testing.T) {
	service := NewResumeService(DocxTextExtractor{}, utils.NewDevelopmentLogger())
	data := buildDocx(t,
		"John Smith",
		"Senior Frontend Engineer",
		"john.smith@example.com | (555) 123-4567",
		"Experience: 6 years of React development.",
	)

	info, err := service.Parse(context.Background(), data, MimeDOCX)
	require.NoError(t, err)

	assert.False(t, info.IsPDF)
	assert.Equal(t, "John Smith", info.Name)
	assert.Equal(t, "john.smith@example.com", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Contains(t, info.RawText, "React development")
}

func TestResumeService_Parse_DOCXExtractionFailureDegrades(t *testing.T) {
	service := NewResumeService(failingExtractor{}, utils.NewDevelopmentLogger())

	info, err := service.Parse(context.Background(), []byte("not a real docx"), MimeDOCX)
	require.NoError(t, err)

	// Extraction failure falls back to manual entry, not an upload error.
	assert.Empty(t, info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Phone)
}

func TestResumeService_Parse_UnsupportedFormat(t *testing.T) {
	service := NewResumeService(DocxTextExtractor{}, utils.NewDevelopmentLogger())

	_, err := service.Parse(context.Background(), []byte("plain text resume"), "text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	// Sniffed plain text is rejected the same way.
	_, err = service.Parse(context.Background(), []byte("plain text resume"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDocxTextExtractor_ExtractText(t *testing.T) {
	data := buildDocx(t, "First line", "Second line")

	text, err := DocxTextExtractor{}.ExtractText(data)
	require.NoError(t, err)
	assert.Equal(t, "First line\nSecond line\n", text)
}

func TestDocxTextExtractor_RejectsNonArchive(t *testing.T) {
	_, err := DocxTextExtractor{}.ExtractText([]byte("nope"))
	assert.Error(t, err)
}

func TestExtractCandidateInfo(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedName  string
		expectedEmail string
		expectedPhone string
	}{
		{
			name:          "typical header",
			text:          "Jane Doe\njane.doe@example.com\n555-123-4567\nSkills: React",
			expectedName:  "Jane Doe",
			expectedEmail: "jane.doe@example.com",
			expectedPhone: "555-123-4567",
		},
		{
			name:          "contact details on the first line suppress the name guess",
			text:          "jane.doe@example.com\nJane Doe",
			expectedName:  "",
			expectedEmail: "jane.doe@example.com",
		},
		{
			name:          "phone-looking first line suppresses the name guess",
			text:          "555 123 4567\nJane Doe",
			expectedName:  "",
			expectedPhone: "555 123 4567",
		},
		{
			name:          "leading blank lines are skipped",
			text:          "\n\n  Jane Doe  \ncontact: jane@company.io",
			expectedName:  "Jane Doe",
			expectedEmail: "jane@company.io",
		},
		{
			name:          "international prefix",
			text:          "Jane Doe\n+1 555.123.4567",
			expectedName:  "Jane Doe",
			expectedPhone: "+1 555.123.4567",
		},
		{
			name: "empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := extractCandidateInfo(tt.text)

			assert.Equal(t, tt.expectedName, info.Name)
			assert.Equal(t, tt.expectedEmail, info.Email)
			assert.Equal(t, tt.expectedPhone, info.Phone)
			assert.Equal(t, tt.text, info.RawText)
		})
	}
}
