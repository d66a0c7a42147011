package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
	"github.com/crisp-hire/interview-service/internal/services"
	"github.com/crisp-hire/interview-service/internal/utils"
)

// CandidateHandler serves the interviewer dashboard.
type CandidateHandler struct {
	BaseHandler
	service services.CandidateService
	exports services.ExportService
}

func NewCandidateHandler(service services.CandidateService, exports services.ExportService, logger utils.Logger) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		exports:     exports,
	}
}

// ListCandidates lists stored candidates with search and sort.
// GET /api/v1/candidates?q=&status=&sort_by=&sort_order=&limit=&offset=
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	filters := parseCandidateFilters(c)

	candidates, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Candidates", gin.H{
		"candidates": candidates,
		"total":      total,
	})
}

// GetCandidate returns one candidate with full interview detail.
// GET /api/v1/candidates/:id
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		h.RespondWithError(c, http.StatusBadRequest, "candidate id is required", nil)
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Candidate", detail)
}

// ExportCandidates streams candidate results as an XLSX workbook.
// GET /api/v1/candidates/export
func (h *CandidateHandler) ExportCandidates(c *gin.Context) {
	data, err := h.exports.ExportCandidates(c.Request.Context(), parseCandidateFilters(c))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseCandidateFilters(c *gin.Context) repositories.CandidateFilters {
	filters := repositories.CandidateFilters{
		Search:    c.Query("q"),
		SortBy:    c.DefaultQuery("sort_by", "score"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if status := c.Query("status"); status != "" {
		candidateStatus := models.CandidateStatus(status)
		filters.Status = &candidateStatus
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filters.Offset = offset
	}

	return filters
}
