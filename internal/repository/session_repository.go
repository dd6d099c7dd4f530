package repository

import (
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db}
}

func (r *SessionRepository) Create(session *model.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) Update(session *model.InterviewSession) error {
	return r.db.Save(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *SessionRepository) FindByCandidate(candidateID string, offset, limit int) ([]model.InterviewSession, int64, error) {
	var sessions []model.InterviewSession
	var total int64

	query := r.db.Model(&model.InterviewSession{}).Where("candidate_id = ?", candidateID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Delete(&model.InterviewSession{}, "id = ?", id).Error
}
