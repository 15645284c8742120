package model

import "time"

// BenchmarkUpvote 点赞台账，(user_id, benchmark_id) 唯一，存在即表示当前在赞
type BenchmarkUpvote struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:uk_user_benchmark" json:"user_id"`
	BenchmarkID uint64    `gorm:"not null;index;uniqueIndex:uk_user_benchmark" json:"benchmark_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (BenchmarkUpvote) TableName() string {
	return "benchmark_upvotes"
}
