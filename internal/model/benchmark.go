package model

import "time"

// Benchmark审核状态
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusFlagged  = "flagged"
)

// 提交来源
const (
	ImportSourceManual     = "manual"
	ImportSourceLlamaBench = "llama-bench"
)

type Benchmark struct {
	ID                    uint64   `gorm:"primaryKey" json:"id"`
	UserID                string   `gorm:"size:64;not null;index" json:"user_id"`
	HardwareID            uint64   `gorm:"not null;index:idx_triple,priority:1" json:"hardware_id"`
	ModelID               uint64   `gorm:"not null;index:idx_triple,priority:2" json:"model_id"`
	Quantization          string   `gorm:"size:32;not null;index:idx_triple,priority:3" json:"quantization"`
	Engine                string   `gorm:"size:64;not null;index" json:"engine"`
	EngineVersion         string   `gorm:"size:64" json:"engine_version,omitempty"`
	EngineParams          string   `gorm:"type:json" json:"engine_params,omitempty"`
	TokensPerSecond       float64  `gorm:"not null" json:"tokens_per_second"`
	PromptTokensPerSecond *float64 `json:"prompt_tokens_per_second,omitempty"`
	TimeToFirstTokenMs    *float64 `json:"time_to_first_token_ms,omitempty"`
	ContextSize           *int     `json:"context_size,omitempty"`
	ParallelRequests      int      `gorm:"not null;default:1" json:"parallel_requests"`
	SystemRamGb           *int     `json:"system_ram_gb,omitempty"`
	OS                    string   `gorm:"size:64;index" json:"os,omitempty"`
	DriverVersion         string   `gorm:"size:64" json:"driver_version,omitempty"`
	Status                string   `gorm:"size:16;not null;default:pending;index" json:"status"`
	// 冗余计数，真实来源是 benchmark_upvotes 台账，写路径必须同事务维护
	Upvotes      int64     `gorm:"not null;default:0" json:"upvotes"`
	SourceURL    string    `gorm:"size:2000" json:"source_url,omitempty"`
	Notes        string    `gorm:"size:2000" json:"notes,omitempty"`
	ImportSource string    `gorm:"size:32;not null;default:manual" json:"import_source"`
	CreatedAt    time.Time `json:"created_at"`
}
