package dto

import (
	"time"

	"github.com/farhanhakim/ai-interviewer/internal/model"
	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	CandidateID    string `json:"candidate_id"`
	JobRole        string `json:"job_role"`
	Domain         string `json:"domain"`
	JobDescription string `json:"job_description"`
	ResumeText     string `json:"resume_text"`
	NumQuestions   int    `json:"num_questions"`
}

type AnswerSubmission struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// SessionSnapshot is the state view returned by every lifecycle operation.
type SessionSnapshot struct {
	ID              uuid.UUID      `json:"id"`
	Status          string         `json:"status"`
	JobRole         string         `json:"job_role"`
	Domain          string         `json:"domain"`
	CurrentIndex    int            `json:"current_question_index"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentQuestion string         `json:"current_question,omitempty"`
	Questions       []string       `json:"questions"`
	Answers         []model.Answer `json:"answers"`
	LatestAnswer    *model.Answer  `json:"latest_answer,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// SessionReport is the read-only aggregate available once a session
// completes.
type SessionReport struct {
	ID             uuid.UUID             `json:"id"`
	JobRole        string                `json:"job_role"`
	Domain         string                `json:"domain"`
	OverallScore   float64               `json:"overall_score"`
	TechnicalScore float64               `json:"technical_score"`
	CommScore      float64               `json:"communication_score"`
	Recommendation string                `json:"recommendation"`
	Answers        []model.Answer        `json:"answers"`
	SkillGap       *model.SkillGapResult `json:"skill_gap,omitempty"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
}

type SessionListItem struct {
	ID           uuid.UUID `json:"id"`
	JobRole      string    `json:"job_role"`
	Domain       string    `json:"domain"`
	Status       string    `json:"status"`
	OverallScore float64   `json:"overall_score"`
	CreatedAt    time.Time `json:"created_at"`
}
