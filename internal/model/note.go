package model

import "time"

// CommunityNote 附在某条 benchmark 下的社区备注，按 (upvotes desc, created_at desc) 排序
// upvotes/pinned 由站外渠道维护，这里只读
type CommunityNote struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	BenchmarkID uint64    `gorm:"not null;index" json:"benchmark_id"`
	UserID      string    `gorm:"size:64;not null" json:"user_id"`
	Content     string    `gorm:"size:280;not null" json:"content"`
	Upvotes     int64     `gorm:"not null;default:0" json:"upvotes"`
	Pinned      bool      `gorm:"not null;default:false" json:"pinned"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommunityNote) TableName() string { return "community_notes" }
