package model

import "time"

// 硬件/模型审核状态
const (
	CatalogPending  = "pending"
	CatalogApproved = "approved"
)

type Hardware struct {
	ID                  uint64    `gorm:"primaryKey" json:"id"`
	Type                string    `gorm:"size:32;not null" json:"type"`
	ArchitectureType    string    `gorm:"size:32;not null" json:"architecture_type"`
	Brand               string    `gorm:"size:64;not null" json:"brand"`
	Name                string    `gorm:"size:128;not null" json:"name"`
	VramGb              *int      `json:"vram_gb,omitempty"`
	RamGb               *int      `json:"ram_gb,omitempty"`
	MemoryBandwidthGbps *float64  `json:"memory_bandwidth_gbps,omitempty"`
	TdpWatts            *int      `json:"tdp_watts,omitempty"`
	ReleaseYear         *int      `json:"release_year,omitempty"`
	Status              string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

func (Hardware) TableName() string { return "hardware" }
