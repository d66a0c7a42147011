package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/utils"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// TextExtractor is the document-conversion collaborator: raw bytes in,
// plain text out.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// DocxTextExtractor extracts text from DOCX documents.
type DocxTextExtractor struct{}

func (DocxTextExtractor) ExtractText(data []byte) (string, error) {
	return utils.DocxExtractText(data)
}

// ResumeService turns an uploaded resume into best-effort candidate fields.
// PDF uploads are accepted but never parsed; the candidate fills the form by
// hand. Only field extraction is attempted, nothing is persisted here.
type ResumeService interface {
	Parse(ctx context.Context, data []byte, declaredMIME string) (*models.ResumeInfo, error)
}

type resumeService struct {
	extractor TextExtractor
	logger    utils.Logger
}

func NewResumeService(extractor TextExtractor, logger utils.Logger) ResumeService {
	return &resumeService{
		extractor: extractor,
		logger:    logger,
	}
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// Accepts any NANP-looking 3-3-4 digit grouping. Known to be loose; the
	// verification step lets the candidate correct false positives.
	phoneRegex     = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	phoneLikeRegex = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
)

func (s *resumeService) Parse(ctx context.Context, data []byte, declaredMIME string) (*models.ResumeInfo, error) {
	mime := declaredMIME
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	// Strip parameters such as "; charset=..."
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}

	switch mime {
	case MimePDF:
		// In-process PDF extraction is unsupported; candidate enters fields
		// manually.
		return &models.ResumeInfo{IsPDF: true}, nil

	case MimeDOCX:
		text, err := s.extractor.ExtractText(data)
		if err != nil {
			// Extraction failure degrades to manual entry, never fatal.
			s.logger.Warn("Resume extraction failed, falling back to manual input", "error", err)
			return &models.ResumeInfo{}, nil
		}
		info := extractCandidateInfo(text)
		return info, nil

	default:
		s.logger.Warn("Rejected resume upload with unsupported type", "mime_type", mime)
		return nil, ErrUnsupportedFormat
	}
}

// extractCandidateInfo pulls contact fields out of raw resume text. All
// heuristics are best-effort; empty results are expected and handled by the
// verification step.
func extractCandidateInfo(text string) *models.ResumeInfo {
	info := &models.ResumeInfo{RawText: text}
	if text == "" {
		return info
	}

	if email := emailRegex.FindString(text); email != "" {
		info.Email = email
	}
	if phone := phoneRegex.FindString(text); phone != "" {
		info.Phone = phone
	}

	// Name heuristic: the first non-blank line, unless it looks like contact
	// details itself.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, "@") && !phoneLikeRegex.MatchString(line) {
			info.Name = line
		}
		break
	}

	return info
}
