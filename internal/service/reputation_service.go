package service

import (
	"context"

	"gorm.io/gorm"

	"llmboard/internal/model"
	"llmboard/internal/repository/mysql"
)

type ReputationService struct {
	repo *mysql.ReputationRepository
}

// ReputationProfile 用户积分聚合
type ReputationProfile struct {
	UserID string                  `json:"user_id"`
	Points int64                   `json:"points"`
	Events []model.ReputationEvent `json:"events"`
}

func NewReputationService(db *gorm.DB) *ReputationService {
	return &ReputationService{
		repo: &mysql.ReputationRepository{DB: db},
	}
}

// Profile 积分 = 流水求和；取消点赞不回收积分，所以总分单调不减
func (s *ReputationService) Profile(ctx context.Context, userID string) (*ReputationProfile, error) {
	points, err := s.repo.SumPoints(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.ListEvents(ctx, userID, 50)
	if err != nil {
		return nil, err
	}
	return &ReputationProfile{UserID: userID, Points: points, Events: events}, nil
}
