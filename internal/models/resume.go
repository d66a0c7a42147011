package models

// ResumeInfo holds the best-effort fields extracted from an uploaded resume.
// All fields may be empty; the verification step requires the user to fill
// whatever extraction missed.
type ResumeInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	RawText string `json:"raw_text"`
	IsPDF   bool   `json:"is_pdf_file"`
}
