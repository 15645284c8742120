package model

import "time"

const (
	EventUpvoteReceived = "upvote_received"
)

// ReputationEvent 积分流水，只追加不更新；用户积分 = 流水 points 求和
type ReputationEvent struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;not null;index" json:"user_id"`
	EventType   string    `gorm:"size:32;not null" json:"event_type"`
	Points      int       `gorm:"not null" json:"points"`
	ReferenceID *uint64   `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReputationOutbox 积分事件外发表
type ReputationOutbox struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EventType string    `gorm:"size:32;not null" json:"event_type"`
	UserID    string    `gorm:"size:64;not null" json:"user_id"`
	Points    int       `gorm:"not null" json:"points"`
	Payload   string    `gorm:"type:json;not null" json:"payload"`
	Status    int8      `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'" json:"status"`
	Retry     int       `gorm:"not null;default:0" json:"retry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReputationOutbox) TableName() string { return "reputation_outbox" }
