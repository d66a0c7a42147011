package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisp-hire/interview-service/internal/services"
	"github.com/crisp-hire/interview-service/internal/utils"
)

// SessionHandler exposes the candidate-facing session actions: resume
// upload, info verification, and the interview question loop.
type SessionHandler struct {
	BaseHandler
	service services.SessionService
}

func NewSessionHandler(service services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// UploadResume accepts a multipart resume upload and returns the extracted
// candidate fields.
// POST /api/v1/session/resume-upload
func (h *SessionHandler) UploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "resume file is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "failed to read uploaded file", err)
		return
	}

	info, err := h.service.UploadResume(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Resume parsed", info)
}

// SubmitInfo records the verified candidate fields and creates the
// candidate record.
// POST /api/v1/session/info
func (h *SessionHandler) SubmitInfo(c *gin.Context) {
	var req services.SubmitInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	candidate, err := h.service.SubmitInfo(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Candidate created", candidate)
}

// StartInterview begins the fixed question sequence.
// POST /api/v1/session/start
func (h *SessionHandler) StartInterview(c *gin.Context) {
	snapshot, err := h.service.StartInterview(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Interview started", snapshot)
}

// SubmitAnswer records a typed answer for the current question.
// POST /api/v1/session/answer
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.service.SubmitAnswer(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer recorded", result)
}

// DontKnow submits the fixed don't-know answer for the current question.
// POST /api/v1/session/dont-know
func (h *SessionHandler) DontKnow(c *gin.Context) {
	result, err := h.service.DontKnow(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer recorded", result)
}

// Exit pauses the interview, preserving partial answers.
// POST /api/v1/session/exit
func (h *SessionHandler) Exit(c *gin.Context) {
	if err := h.service.Exit(c.Request.Context()); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Interview paused", nil)
}

type resumeSessionRequest struct {
	Resume bool `json:"resume"`
}

// ResumeSession either re-attaches the stored unfinished interview or
// abandons it and returns to the upload phase.
// POST /api/v1/session/resume
func (h *SessionHandler) ResumeSession(c *gin.Context) {
	var req resumeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	snapshot, err := h.service.ResumeOrStartNew(c.Request.Context(), req.Resume)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session updated", snapshot)
}

// GetSession returns the current session snapshot.
// GET /api/v1/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session state", snapshot)
}
