package service

import (
	"context"

	"gorm.io/gorm"

	"llmboard/internal/identity"
	"llmboard/internal/model"
	"llmboard/internal/repository/mysql"
	"llmboard/internal/validator"
)

type NoteService struct {
	repo          *mysql.NoteRepository
	benchmarkRepo *mysql.BenchmarkRepository
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{
		repo:          &mysql.NoteRepository{DB: db},
		benchmarkRepo: &mysql.BenchmarkRepository{DB: db},
	}
}

// Create 发社区备注，匿名不允许；目标 benchmark 必须存在
func (s *NoteService) Create(ctx context.Context, ident identity.Identity, benchmarkID uint64, content string) (*model.CommunityNote, error) {
	if !ident.Authenticated {
		return nil, ErrAuthRequired
	}

	trimmed, err := validator.NoteContent(content)
	if err != nil {
		return nil, err
	}

	if _, err = s.benchmarkRepo.GetDetail(ctx, benchmarkID); err != nil {
		return nil, err
	}

	note := &model.CommunityNote{
		BenchmarkID: benchmarkID,
		UserID:      ident.UserID,
		Content:     trimmed,
	}
	if err = s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, benchmarkID uint64) ([]model.CommunityNote, error) {
	return s.repo.ListByBenchmark(ctx, benchmarkID)
}
