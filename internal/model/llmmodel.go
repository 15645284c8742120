package model

import "time"

// LlmModel 被测模型条目，hf_* 字段来自外部模型仓库的定期回填
type LlmModel struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	Family        string    `gorm:"size:64;not null" json:"family"`
	ParamsBillion float64   `gorm:"not null" json:"params_billion"`
	ContextLength *int      `json:"context_length,omitempty"`
	HfID          string    `gorm:"size:128;index" json:"hf_id,omitempty"`
	HfDownloads   int       `gorm:"not null;default:0" json:"hf_downloads"`
	HfLikes       int       `gorm:"not null;default:0" json:"hf_likes"`
	HfPipelineTag string    `gorm:"size:64" json:"hf_pipeline_tag,omitempty"`
	HfTags        string    `gorm:"type:json" json:"hf_tags,omitempty"`
	Status        string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (LlmModel) TableName() string { return "llm_models" }
