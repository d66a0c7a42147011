package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crisp-hire/interview-service/internal/cache"
	"github.com/crisp-hire/interview-service/internal/events"
	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
	"github.com/crisp-hire/interview-service/internal/utils"
)

// Fixed answer texts for the two non-typed submission paths. The scoring
// engine recognizes both as non-answers.
const (
	DontKnowAnswerText    = "I don't know the answer to this question."
	TimeExpiredAnswerText = "[Time expired - No answer provided]"
	NoAnswerText          = "[No answer provided]"
)

// SessionPhase is the stage the active session is in, derived from the
// stored session pointer rather than kept as ambient state.
type SessionPhase string

const (
	PhaseUpload              SessionPhase = "upload"
	PhaseInterviewNotStarted SessionPhase = "interview_not_started"
	PhaseInterviewInProgress SessionPhase = "interview_in_progress"
)

// SubmitInfoRequest carries the verified candidate fields. All three contact
// fields must be non-empty to proceed.
type SubmitInfoRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	ResumeText string `json:"resume_text"`
}

// SubmitAnswerRequest carries one typed answer. QuestionIndex, when set,
// must match the current question; a stale index means the answer was
// already recorded (timer fired first) and the submission is rejected
// instead of being applied to the next question.
type SubmitAnswerRequest struct {
	Text          string `json:"text"`
	QuestionIndex *int   `json:"question_index"`
}

// SubmitAnswerResult reports the evaluation of one answer and, after the
// last question, the final result.
type SubmitAnswerResult struct {
	Answer       models.Answer    `json:"answer"`
	Completed    bool             `json:"completed"`
	Final        *FinalResult     `json:"final,omitempty"`
	NextQuestion *models.Question `json:"next_question,omitempty"`
}

// SessionSnapshot is the presentation layer's view of the active session.
type SessionSnapshot struct {
	Phase           SessionPhase      `json:"phase"`
	Candidate       *models.Candidate `json:"candidate,omitempty"`
	Interview       *models.Interview `json:"interview,omitempty"`
	CurrentQuestion *models.Question  `json:"current_question,omitempty"`
	QuestionNumber  int               `json:"question_number,omitempty"` // 1-based
	TotalQuestions  int               `json:"total_questions,omitempty"`
	TimeRemaining   int               `json:"time_remaining,omitempty"` // Seconds
	HasUnfinished   bool              `json:"has_unfinished"`
}

// SessionService drives one candidate's progression through upload,
// verification, the question loop, and completion or pause. All durable
// state lives in the repositories and the session store; the only in-memory
// state is the per-question countdown.
type SessionService interface {
	UploadResume(ctx context.Context, data []byte, declaredMIME string) (*models.ResumeInfo, error)
	SubmitInfo(ctx context.Context, req *SubmitInfoRequest) (*models.Candidate, error)
	StartInterview(ctx context.Context) (*SessionSnapshot, error)
	SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (*SubmitAnswerResult, error)
	DontKnow(ctx context.Context) (*SubmitAnswerResult, error)
	Exit(ctx context.Context) error
	ResumeOrStartNew(ctx context.Context, resume bool) (*SessionSnapshot, error)
	Snapshot(ctx context.Context) (*SessionSnapshot, error)
	Shutdown()
}

type sessionService struct {
	repo      repositories.Repository
	sessions  cache.SessionStore
	bank      QuestionBankService
	scoring   ScoringService
	resumes   ResumeService
	publisher events.Publisher
	validator *utils.Validator
	logger    utils.Logger

	tick time.Duration

	mu        sync.Mutex
	timerGen  int
	remaining int
	stopCh    chan struct{}
}

// SessionServiceOption configures the session service.
type SessionServiceOption func(*sessionService)

// WithTickInterval overrides the one second countdown tick (tests only).
func WithTickInterval(d time.Duration) SessionServiceOption {
	return func(s *sessionService) { s.tick = d }
}

func NewSessionService(
	repo repositories.Repository,
	sessions cache.SessionStore,
	bank QuestionBankService,
	scoring ScoringService,
	resumes ResumeService,
	publisher events.Publisher,
	validator *utils.Validator,
	logger utils.Logger,
	opts ...SessionServiceOption,
) SessionService {
	s := &sessionService{
		repo:      repo,
		sessions:  sessions,
		bank:      bank,
		scoring:   scoring,
		resumes:   resumes,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		tick:      time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===== SETUP ACTIONS =====

func (s *sessionService) UploadResume(ctx context.Context, data []byte, declaredMIME string) (*models.ResumeInfo, error) {
	info, err := s.resumes.Parse(ctx, data, declaredMIME)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resume parsed",
		"is_pdf", info.IsPDF,
		"name_found", info.Name != "",
		"email_found", info.Email != "",
		"phone_found", info.Phone != "")

	return info, nil
}

func (s *sessionService) SubmitInfo(ctx context.Context, req *SubmitInfoRequest) (*models.Candidate, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCandidateIncomplete, err)
	}

	candidate := &models.Candidate{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		ResumeText: req.ResumeText,
		Status:     models.CandidateInProgress,
	}

	if err := s.repo.Candidate().Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	if err := s.sessions.Set(ctx, &cache.Session{CandidateID: candidate.ID}); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	s.logger.Info("Candidate created", "candidate_id", candidate.ID)
	s.publish(ctx, events.NewInterviewEvent(events.EventCandidateCreated, events.CandidateCreatedEvent{
		CandidateID: candidate.ID,
		Name:        candidate.Name,
		Email:       candidate.Email,
		CreatedAt:   candidate.CreatedAt,
	}))

	return candidate, nil
}

// ===== INTERVIEW LIFECYCLE =====

func (s *sessionService) StartInterview(ctx context.Context) (*SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, ErrNoActiveSession
	}
	if session.InterviewID != "" {
		return nil, ErrInterviewAlreadyStarted
	}

	questions := s.bank.Sequence()
	interview := &models.Interview{
		ID:          uuid.NewString(),
		CandidateID: session.CandidateID,
		Status:      models.InterviewInProgress,
		StartTime:   time.Now(),
	}
	if err := interview.SetQuestions(questions); err != nil {
		return nil, fmt.Errorf("failed to snapshot questions: %w", err)
	}
	if err := interview.SetAnswers([]models.Answer{}); err != nil {
		return nil, fmt.Errorf("failed to initialize answers: %w", err)
	}

	if err := s.repo.Interview().Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	session.InterviewID = interview.ID
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	s.startTimerLocked(questions[0].TimeLimit)

	s.logger.Info("Interview started",
		"interview_id", interview.ID,
		"candidate_id", interview.CandidateID,
		"question_count", len(questions))
	s.publish(ctx, events.NewInterviewEvent(events.EventInterviewStarted, events.InterviewStartedEvent{
		InterviewID:   interview.ID,
		CandidateID:   interview.CandidateID,
		QuestionCount: len(questions),
		StartedAt:     interview.StartTime,
	}))

	return s.snapshotLocked(ctx)
}

func (s *sessionService) SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := req.Text
	if text == "" {
		text = NoAnswerText
	}
	return s.submitLocked(ctx, text, req.QuestionIndex)
}

func (s *sessionService) DontKnow(ctx context.Context) (*SubmitAnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(ctx, DontKnowAnswerText, nil)
}

// submitLocked is the single submission path shared by typed answers, the
// don't-know shortcut, and timer expiry. Callers hold s.mu.
func (s *sessionService) submitLocked(ctx context.Context, answerText string, expectIndex *int) (*SubmitAnswerResult, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil || session.InterviewID == "" {
		return nil, ErrNoActiveSession
	}

	interview, err := s.repo.Interview().GetByID(ctx, session.InterviewID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	if interview.Status != models.InterviewInProgress {
		return nil, ErrInterviewNotActive
	}

	questions, err := interview.Questions()
	if err != nil {
		return nil, fmt.Errorf("corrupt question snapshot: %w", err)
	}
	idx := interview.CurrentQuestionIndex
	if idx >= len(questions) {
		return nil, ErrInterviewNotActive
	}
	if expectIndex != nil && *expectIndex != idx {
		return nil, ErrAnswerAlreadySubmitted
	}

	question := questions[idx]
	evaluation := s.scoring.EvaluateAnswer(question, answerText)

	timeSpent := question.TimeLimit - s.remaining
	if timeSpent < 0 {
		timeSpent = 0
	}

	answer := models.Answer{
		QuestionID:   question.ID,
		QuestionText: question.Text,
		AnswerText:   answerText,
		Score:        evaluation.Score,
		Feedback:     evaluation.Feedback,
		TimeSpent:    timeSpent,
	}
	if err := interview.AppendAnswer(answer); err != nil {
		return nil, fmt.Errorf("failed to append answer: %w", err)
	}

	result := &SubmitAnswerResult{Answer: answer}
	last := interview.CurrentQuestionIndex >= len(questions)

	if last {
		answers, err := interview.Answers()
		if err != nil {
			return nil, fmt.Errorf("corrupt answer snapshot: %w", err)
		}
		final, err := s.scoring.CalculateFinalScore(answers)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		interview.Status = models.InterviewCompleted
		interview.EndTime = &now
		interview.FinalScore = &final.TotalScore
		interview.Grade = &final.Grade
		interview.Summary = &final.Summary

		if err := s.persistCompletion(ctx, interview, now); err != nil {
			return nil, err
		}

		s.stopTimerLocked()
		if err := s.sessions.Clear(ctx); err != nil {
			s.logger.LogError(err, "Failed to clear session pointer after completion")
		}

		result.Completed = true
		result.Final = final

		s.logger.Info("Interview completed",
			"interview_id", interview.ID,
			"candidate_id", interview.CandidateID,
			"final_score", final.TotalScore,
			"grade", final.Grade)
		s.publish(ctx, events.NewInterviewEvent(events.EventInterviewCompleted, events.InterviewCompletedEvent{
			InterviewID: interview.ID,
			CandidateID: interview.CandidateID,
			FinalScore:  final.TotalScore,
			Grade:       final.Grade,
			CompletedAt: now,
		}))
	} else {
		if err := s.repo.Interview().Update(ctx, interview); err != nil {
			return nil, fmt.Errorf("failed to persist answer: %w", err)
		}

		next := questions[interview.CurrentQuestionIndex]
		result.NextQuestion = &next
		s.startTimerLocked(next.TimeLimit)
	}

	s.publish(ctx, events.NewInterviewEvent(events.EventAnswerSubmitted, events.AnswerSubmittedEvent{
		InterviewID:   interview.ID,
		CandidateID:   interview.CandidateID,
		QuestionID:    question.ID,
		QuestionIndex: idx,
		Score:         answer.Score,
		TimeSpent:     answer.TimeSpent,
	}))

	return result, nil
}

// persistCompletion writes the finished interview and the candidate's final
// status in one transaction, so the stored record never holds an interview
// result without the matching candidate status.
func (s *sessionService) persistCompletion(ctx context.Context, interview *models.Interview, completedAt time.Time) error {
	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Interview().Update(ctx, interview); err != nil {
			return fmt.Errorf("failed to persist interview: %w", err)
		}

		candidate, err := tx.Candidate().GetByID(ctx, interview.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		candidate.Status = models.CandidateCompleted
		candidate.CompletedAt = &completedAt
		if err := tx.Candidate().Update(ctx, candidate); err != nil {
			return fmt.Errorf("failed to persist candidate: %w", err)
		}
		return nil
	})
}

func (s *sessionService) Exit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx)
	if err != nil {
		return ErrNoActiveSession
	}
	if session.InterviewID == "" {
		return ErrSessionWrongPhase
	}

	interview, err := s.repo.Interview().GetByID(ctx, session.InterviewID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInterviewNotFound
		}
		return fmt.Errorf("failed to load interview: %w", err)
	}
	if interview.Status != models.InterviewInProgress {
		return ErrInterviewNotActive
	}

	now := time.Now()
	interview.Status = models.InterviewPaused
	interview.PausedAt = &now

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Interview().Update(ctx, interview); err != nil {
			return fmt.Errorf("failed to persist interview: %w", err)
		}
		candidate, err := tx.Candidate().GetByID(ctx, interview.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		candidate.Status = models.CandidatePaused
		return tx.Candidate().Update(ctx, candidate)
	})
	if err != nil {
		return err
	}

	s.stopTimerLocked()
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.LogError(err, "Failed to clear session pointer after pause")
	}

	answers, _ := interview.Answers()
	s.logger.Info("Interview paused",
		"interview_id", interview.ID,
		"candidate_id", interview.CandidateID,
		"question_index", interview.CurrentQuestionIndex)
	s.publish(ctx, events.NewInterviewEvent(events.EventInterviewPaused, events.InterviewPausedEvent{
		InterviewID:      interview.ID,
		CandidateID:      interview.CandidateID,
		QuestionIndex:    interview.CurrentQuestionIndex,
		AnswersSubmitted: len(answers),
		PausedAt:         now,
	}))

	return nil
}

func (s *sessionService) ResumeOrStartNew(ctx context.Context, resume bool) (*SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !resume {
		// Abandon: the unfinished record stays in the store, only the
		// pointer is dropped.
		s.stopTimerLocked()
		if err := s.sessions.Clear(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear session: %w", err)
		}
		return &SessionSnapshot{Phase: PhaseUpload}, nil
	}

	candidate, err := s.repo.Candidate().GetUnfinished(ctx)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNothingToResume
		}
		return nil, fmt.Errorf("failed to look up unfinished candidate: %w", err)
	}

	session := &cache.Session{CandidateID: candidate.ID}

	if candidate.Interview == nil {
		// Candidate verified their info but never started the questions.
		if err := s.sessions.Set(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to activate session: %w", err)
		}
		return s.snapshotLocked(ctx)
	}

	interview := candidate.Interview
	if interview.Status == models.InterviewCompleted {
		return nil, ErrNothingToResume
	}

	interview.Status = models.InterviewInProgress
	interview.PausedAt = nil
	candidate.Status = models.CandidateInProgress

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Interview().Update(ctx, interview); err != nil {
			return fmt.Errorf("failed to persist interview: %w", err)
		}
		return tx.Candidate().Update(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	session.InterviewID = interview.ID
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	questions, err := interview.Questions()
	if err != nil {
		return nil, fmt.Errorf("corrupt question snapshot: %w", err)
	}
	if interview.CurrentQuestionIndex < len(questions) {
		// The countdown restarts at the full limit for the current question.
		s.startTimerLocked(questions[interview.CurrentQuestionIndex].TimeLimit)
	}

	s.logger.Info("Interview resumed",
		"interview_id", interview.ID,
		"candidate_id", candidate.ID,
		"question_index", interview.CurrentQuestionIndex)
	s.publish(ctx, events.NewInterviewEvent(events.EventInterviewResumed, events.InterviewResumedEvent{
		InterviewID:   interview.ID,
		CandidateID:   candidate.ID,
		QuestionIndex: interview.CurrentQuestionIndex,
	}))

	return s.snapshotLocked(ctx)
}

func (s *sessionService) Snapshot(ctx context.Context) (*SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(ctx)
}

// snapshotLocked builds the session view. Callers hold s.mu.
func (s *sessionService) snapshotLocked(ctx context.Context) (*SessionSnapshot, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		hasUnfinished, err := repositories.AnyUnfinished(ctx, s.repo)
		if err != nil {
			return nil, fmt.Errorf("failed to check for unfinished sessions: %w", err)
		}
		return &SessionSnapshot{Phase: PhaseUpload, HasUnfinished: hasUnfinished}, nil
	}

	candidate, err := s.repo.Candidate().GetByID(ctx, session.CandidateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	snapshot := &SessionSnapshot{
		Phase:     PhaseInterviewNotStarted,
		Candidate: candidate,
	}
	if session.InterviewID == "" {
		return snapshot, nil
	}

	interview, err := s.repo.Interview().GetByID(ctx, session.InterviewID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	snapshot.Interview = interview

	questions, err := interview.Questions()
	if err != nil {
		return nil, fmt.Errorf("corrupt question snapshot: %w", err)
	}
	snapshot.TotalQuestions = len(questions)

	if interview.Status == models.InterviewInProgress && interview.CurrentQuestionIndex < len(questions) {
		snapshot.Phase = PhaseInterviewInProgress
		question := questions[interview.CurrentQuestionIndex]
		snapshot.CurrentQuestion = &question
		snapshot.QuestionNumber = interview.CurrentQuestionIndex + 1
		snapshot.TimeRemaining = s.remaining
	}

	return snapshot, nil
}

func (s *sessionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// ===== TIMER =====

// startTimerLocked begins the countdown for the current question. The
// generation counter ties each running timer to the question it was started
// for; a submission from any path bumps the generation, so a stale tick can
// never auto-submit against a later question.
func (s *sessionService) startTimerLocked(limit int) {
	s.stopTimerLocked()
	s.remaining = limit
	gen := s.timerGen
	stop := make(chan struct{})
	s.stopCh = stop
	go s.runTimer(gen, stop)
}

func (s *sessionService) stopTimerLocked() {
	s.timerGen++
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	s.remaining = 0
}

func (s *sessionService) runTimer(gen int, stop chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if gen != s.timerGen {
				s.mu.Unlock()
				return
			}
			s.remaining--
			if s.remaining > 0 {
				s.mu.Unlock()
				continue
			}

			// Time expired: auto-submit while still holding the lock so a
			// concurrent user submission cannot interleave.
			_, err := s.submitLocked(context.Background(), TimeExpiredAnswerText, nil)
			s.mu.Unlock()
			if err != nil {
				s.logger.LogError(err, "Timer auto-submit failed")
			}
			return
		}
	}
}

// publish sends a lifecycle event; event delivery is best-effort and never
// fails the user action.
func (s *sessionService) publish(ctx context.Context, event *events.InterviewEvent) {
	if err := s.publisher.PublishInterviewEvent(ctx, event); err != nil {
		s.logger.LogError(err, "Failed to publish interview event", "event_type", event.Type)
	}
}
