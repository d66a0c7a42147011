package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/crisp-hire/interview-service/internal/services"
	"github.com/crisp-hire/interview-service/internal/utils"
)

type HandlerManager struct {
	sessionHandler   *SessionHandler
	candidateHandler *CandidateHandler
}

func NewHandlerManager(
	sessions services.SessionService,
	candidates services.CandidateService,
	exports services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler:   NewSessionHandler(sessions, logger),
		candidateHandler: NewCandidateHandler(candidates, exports, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Interviewee session routes
		session := v1.Group("/session")
		{
			session.GET("", hm.sessionHandler.GetSession)
			session.POST("/resume-upload", hm.sessionHandler.UploadResume)
			session.POST("/info", hm.sessionHandler.SubmitInfo)
			session.POST("/start", hm.sessionHandler.StartInterview)
			session.POST("/answer", hm.sessionHandler.SubmitAnswer)
			session.POST("/dont-know", hm.sessionHandler.DontKnow)
			session.POST("/exit", hm.sessionHandler.Exit)
			session.POST("/resume", hm.sessionHandler.ResumeSession)
		}

		// Interviewer dashboard routes
		candidates := v1.Group("/candidates")
		{
			candidates.GET("", hm.candidateHandler.ListCandidates)
			candidates.GET("/export", hm.candidateHandler.ExportCandidates)
			candidates.GET("/:id", hm.candidateHandler.GetCandidate)
		}
	}
}
