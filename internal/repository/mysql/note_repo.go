package mysql

import (
	"context"

	"gorm.io/gorm"

	"llmboard/internal/model"
)

type NoteRepository struct {
	DB *gorm.DB
}

func (r *NoteRepository) Create(ctx context.Context, note *model.CommunityNote) error {
	return r.DB.WithContext(ctx).Create(note).Error
}

// ListByBenchmark 备注按 (upvotes desc, created_at desc) 排序
func (r *NoteRepository) ListByBenchmark(ctx context.Context, benchmarkID uint64) ([]model.CommunityNote, error) {
	var list []model.CommunityNote
	err := r.DB.WithContext(ctx).
		Where("benchmark_id = ?", benchmarkID).
		Order("upvotes DESC, created_at DESC").
		Find(&list).Error
	return list, err
}
