package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/dto"
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"github.com/farhanhakim/ai-interviewer/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionStore is the persistence contract the state machine drives. The
// gorm-backed repository satisfies it; tests use an in-memory fake.
type SessionStore interface {
	Create(session *model.InterviewSession) error
	Update(session *model.InterviewSession) error
	FindByID(id string) (*model.InterviewSession, error)
	FindByCandidate(candidateID string, offset, limit int) ([]model.InterviewSession, int64, error)
	Delete(id string) error
}

// Evaluator scores one answer. It never fails; degraded results carry a
// fallback status instead.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer, roleContext string) service.EvaluationResult
}

// GapAnalyzer runs the resume-vs-job-description comparison. Always returns
// a complete, possibly partially-fallback, result.
type GapAnalyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) model.SkillGapResult
}

// QuestionSource provides the ordered question list at session creation.
type QuestionSource interface {
	Generate(ctx context.Context, jobRole, domain, resumeText, jobDescription string, n int) []string
}

// InterviewUsecase owns the session lifecycle:
// not_started -> in_progress -> completed, with no way back out of
// completed. A session is owned by a single client flow; answers are
// recorded in strictly increasing index order.
type InterviewUsecase struct {
	store     SessionStore
	evaluator Evaluator
	analyzer  GapAnalyzer
	questions QuestionSource
	cfg       *config.InterviewConfig
	logger    *zap.Logger
}

func NewInterviewUsecase(
	store SessionStore,
	evaluator Evaluator,
	analyzer GapAnalyzer,
	questions QuestionSource,
	cfg *config.InterviewConfig,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		store:     store,
		evaluator: evaluator,
		analyzer:  analyzer,
		questions: questions,
		cfg:       cfg,
		logger:    logger,
	}
}

func (uc *InterviewUsecase) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionSnapshot, error) {
	questions := uc.questions.Generate(ctx, req.JobRole, req.Domain, req.ResumeText, req.JobDescription, req.NumQuestions)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	session := &model.InterviewSession{
		CandidateID:    req.CandidateID,
		JobRole:        req.JobRole,
		Domain:         req.Domain,
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
		Questions:      questions,
		Answers:        []model.Answer{},
		Status:         model.StatusNotStarted,
	}
	if err := uc.store.Create(session); err != nil {
		return nil, err
	}

	uc.logger.Info("interview session created",
		zap.String("session_id", session.ID.String()),
		zap.String("job_role", session.JobRole),
		zap.Int("questions", len(questions)),
	)
	return snapshotOf(session), nil
}

func (uc *InterviewUsecase) Start(ctx context.Context, id string) (*dto.SessionSnapshot, error) {
	session, err := uc.find(id)
	if err != nil {
		return nil, err
	}
	if session.Status != model.StatusNotStarted {
		return nil, ErrInvalidTransition
	}

	session.Status = model.StatusInProgress
	session.CurrentIndex = 0
	if err := uc.store.Update(session); err != nil {
		return nil, err
	}
	return snapshotOf(session), nil
}

// SubmitAnswer records one answer at the current question index. A stale
// submission (index other than the current one, e.g. a client retry after
// the first call already advanced the session) is ignored and the current
// state returned unchanged, keeping answer order aligned with submission
// order.
func (uc *InterviewUsecase) SubmitAnswer(ctx context.Context, id string, sub dto.AnswerSubmission) (*dto.SessionSnapshot, error) {
	return uc.record(ctx, id, sub.QuestionIndex, sub.Answer)
}

// SkipQuestion records an empty answer for the current question. No
// external evaluation call is made.
func (uc *InterviewUsecase) SkipQuestion(ctx context.Context, id string) (*dto.SessionSnapshot, error) {
	session, err := uc.find(id)
	if err != nil {
		return nil, err
	}
	return uc.record(ctx, id, session.CurrentIndex, "")
}

func (uc *InterviewUsecase) record(ctx context.Context, id string, questionIndex int, answerText string) (*dto.SessionSnapshot, error) {
	session, err := uc.find(id)
	if err != nil {
		return nil, err
	}
	// A duplicate client request arriving after the final answer already
	// completed the session is tolerated as a no-op; the skill-gap analysis
	// stays performed exactly once.
	if session.Status == model.StatusCompleted {
		return snapshotOf(session), nil
	}
	if session.Status != model.StatusInProgress {
		return nil, ErrInvalidTransition
	}

	if questionIndex != session.CurrentIndex {
		uc.logger.Debug("ignoring out-of-order submission",
			zap.String("session_id", id),
			zap.Int("submitted_index", questionIndex),
			zap.Int("current_index", session.CurrentIndex),
		)
		return snapshotOf(session), nil
	}
	// The cursor can sit at len(Questions) only for a session persisted with
	// no questions at all; there is nothing to answer.
	if session.CurrentIndex >= len(session.Questions) {
		return nil, ErrInvalidTransition
	}

	question := session.Questions[session.CurrentIndex]
	eval := uc.evaluator.Evaluate(ctx, question, answerText, session.JobRole)

	answer := model.Answer{
		QuestionIndex:     session.CurrentIndex,
		Question:          question,
		Answer:            answerText,
		Score:             eval.Score,
		Feedback:          eval.Feedback,
		Strengths:         eval.Strengths,
		Improvements:      eval.Improvements,
		TechnicalAccuracy: eval.TechnicalAccuracy,
		Communication:     eval.Communication,
		Completeness:      eval.Completeness,
		EvalStatus:        eval.Status,
	}
	session.Answers = append(session.Answers, answer)
	session.CurrentIndex++

	if session.CurrentIndex == len(session.Questions) {
		uc.complete(ctx, session)
	}

	if err := uc.store.Update(session); err != nil {
		return nil, err
	}
	return snapshotOf(session), nil
}

// complete finalizes the session: skill-gap analysis runs here exactly once
// per session, guarded by the in_progress -> completed transition. The guard
// is only persisted by the caller's Update; if that write fails the session
// stays in_progress in the store and a client retry re-runs the analysis.
func (uc *InterviewUsecase) complete(ctx context.Context, session *model.InterviewSession) {
	gap := uc.analyzer.Analyze(ctx, session.ResumeText, session.JobDescription)
	session.SkillGap = &gap

	aggregate := aggregateAnswers(session.Answers)
	session.OverallScore = aggregate.Overall
	session.TechnicalScore = aggregate.Technical
	session.CommScore = aggregate.Communication
	session.Recommendation = recommendationFor(aggregate.Overall, uc.cfg.ScoreBands)

	now := time.Now().UTC()
	session.Status = model.StatusCompleted
	session.CompletedAt = &now

	uc.logger.Info("interview session completed",
		zap.String("session_id", session.ID.String()),
		zap.Float64("overall_score", session.OverallScore),
	)
}

// Resume returns the state a reconnecting client needs to continue without
// re-asking answered questions. Repeated calls without submissions return
// identical snapshots.
func (uc *InterviewUsecase) Resume(ctx context.Context, id string) (*dto.SessionSnapshot, error) {
	session, err := uc.find(id)
	if err != nil {
		return nil, err
	}
	if session.Status == model.StatusCompleted {
		return nil, ErrAlreadyCompleted
	}
	return snapshotOf(session), nil
}

func (uc *InterviewUsecase) Get(ctx context.Context, id string) (*dto.SessionSnapshot, error) {
	session, err := uc.find(id)
	if err != nil {
		return nil, err
	}
	return snapshotOf(session), nil
}

func (uc *InterviewUsecase) GetReport(ctx context.Context, id string) (*dto.SessionReport, error) {
	session, err := uc.find(id)
	if err != nil {
		return nil, err
	}
	if session.Status != model.StatusCompleted {
		return nil, ErrNotReady
	}
	return reportOf(session), nil
}

func (uc *InterviewUsecase) List(ctx context.Context, candidateID string, offset, limit int) ([]dto.SessionListItem, int64, error) {
	sessions, total, err := uc.store.FindByCandidate(candidateID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.SessionListItem, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, dto.SessionListItem{
			ID:           s.ID,
			JobRole:      s.JobRole,
			Domain:       s.Domain,
			Status:       s.Status,
			OverallScore: s.OverallScore,
			CreatedAt:    s.CreatedAt,
		})
	}
	return items, total, nil
}

func (uc *InterviewUsecase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(id); err != nil {
		return err
	}
	return uc.store.Delete(id)
}

func (uc *InterviewUsecase) find(id string) (*model.InterviewSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrSessionNotFound
	}
	session, err := uc.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func snapshotOf(session *model.InterviewSession) *dto.SessionSnapshot {
	snapshot := &dto.SessionSnapshot{
		ID:             session.ID,
		Status:         session.Status,
		JobRole:        session.JobRole,
		Domain:         session.Domain,
		CurrentIndex:   session.CurrentIndex,
		TotalQuestions: len(session.Questions),
		Questions:      session.Questions,
		Answers:        session.Answers,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
	if session.Status == model.StatusInProgress && session.CurrentIndex < len(session.Questions) {
		snapshot.CurrentQuestion = session.Questions[session.CurrentIndex]
	}
	if n := len(session.Answers); n > 0 {
		latest := session.Answers[n-1]
		snapshot.LatestAnswer = &latest
	}
	return snapshot
}

func reportOf(session *model.InterviewSession) *dto.SessionReport {
	return &dto.SessionReport{
		ID:             session.ID,
		JobRole:        session.JobRole,
		Domain:         session.Domain,
		OverallScore:   session.OverallScore,
		TechnicalScore: session.TechnicalScore,
		CommScore:      session.CommScore,
		Recommendation: session.Recommendation,
		Answers:        session.Answers,
		SkillGap:       session.SkillGap,
		CompletedAt:    session.CompletedAt,
	}
}
