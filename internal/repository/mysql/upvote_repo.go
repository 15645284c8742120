package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"llmboard/internal/apperr"
	"llmboard/internal/model"
)

type UpvoteRepository struct {
	DB *gorm.DB
}

// Toggle 点赞开关，台账增删、计数增减、积分流水必须在同一事务里完成
// 返回 voted=true 表示本次变为已赞，false 表示本次取消
func (r *UpvoteRepository) Toggle(ctx context.Context, userID string, benchmarkID uint64) (bool, error) {
	var voted bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Benchmark
		if err := tx.First(&b, benchmarkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		var row model.BenchmarkUpvote
		err := tx.Where("user_id = ? AND benchmark_id = ?", userID, benchmarkID).
			First(&row).Error
		if err == nil {
			// 已赞 -> 取消：删台账、计数-1（防负数），不回收已发积分
			res := tx.Where("user_id = ? AND benchmark_id = ?", userID, benchmarkID).
				Delete(&model.BenchmarkUpvote{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// 并发下被别的请求先删了，按冲突处理让调用方重读
				return apperr.ErrConflict
			}
			if err = tx.Model(&model.Benchmark{}).
				Where("id = ?", benchmarkID).
				UpdateColumn("upvotes", gorm.Expr("CASE WHEN upvotes > 0 THEN upvotes - 1 ELSE 0 END")).
				Error; err != nil {
				return err
			}
			voted = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 未赞 -> 点赞：插台账（唯一索引兜底）、计数+1、给作者记 +2 积分
		if err = tx.Create(&model.BenchmarkUpvote{UserID: userID, BenchmarkID: benchmarkID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.ErrConflict
			}
			return err
		}
		if err = tx.Model(&model.Benchmark{}).
			Where("id = ?", benchmarkID).
			UpdateColumn("upvotes", gorm.Expr("upvotes + 1")).
			Error; err != nil {
			return err
		}

		event := &model.ReputationEvent{
			UserID:      b.UserID,
			EventType:   model.EventUpvoteReceived,
			Points:      2,
			ReferenceID: &b.ID,
		}
		if err = tx.Create(event).Error; err != nil {
			return err
		}
		if err = insertReputationOutbox(tx, event); err != nil {
			return err
		}
		voted = true
		return nil
	})
	return voted, err
}

func (r *UpvoteRepository) IsVoted(ctx context.Context, userID string, benchmarkID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.BenchmarkUpvote{}).
		Where("user_id = ? AND benchmark_id = ?", userID, benchmarkID).
		Count(&count).Error
	return count > 0, err
}

func (r *UpvoteRepository) GetUpvoteCount(ctx context.Context, benchmarkID uint64) (int64, error) {
	var b model.Benchmark
	err := r.DB.WithContext(ctx).Select("id", "upvotes").First(&b, benchmarkID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.ErrNotFound
		}
		return 0, err
	}
	return b.Upvotes, nil
}

// LedgerCount 台账真实行数，对账用
func (r *UpvoteRepository) LedgerCount(ctx context.Context, benchmarkID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.BenchmarkUpvote{}).
		Where("benchmark_id = ?", benchmarkID).
		Count(&count).Error
	return count, err
}

// 写积分事件外发表，和业务写同事务
func insertReputationOutbox(tx *gorm.DB, event *model.ReputationEvent) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"user_id":    event.UserID,
		"event_type": event.EventType,
		"points":     event.Points,
	})
	ob := &model.ReputationOutbox{
		EventType: event.EventType,
		UserID:    event.UserID,
		Points:    event.Points,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}
