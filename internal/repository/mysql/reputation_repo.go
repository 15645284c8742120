package mysql

import (
	"context"

	"gorm.io/gorm"

	"llmboard/internal/model"
)

type ReputationRepository struct {
	DB *gorm.DB
}

type ReputationOutboxRepository struct {
	DB *gorm.DB
}

// SumPoints 用户积分 = 流水求和，没有流水记 0
func (r *ReputationRepository) SumPoints(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.ReputationEvent{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

// ListEvents 用户积分流水，新的在前
func (r *ReputationRepository) ListEvents(ctx context.Context, userID string, limit int) ([]model.ReputationEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []model.ReputationEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// List 取待投递的外发事件
func (r *ReputationOutboxRepository) List(ctx context.Context, batchSize int) ([]model.ReputationOutbox, error) {
	var list []model.ReputationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败记一次重试
func (r *ReputationOutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ReputationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功标记
func (r *ReputationOutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ReputationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
