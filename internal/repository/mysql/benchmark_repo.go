package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"llmboard/internal/apperr"
	"llmboard/internal/model"
)

// 排序策略
const (
	SortTpsDesc     = "tps_desc"
	SortDateDesc    = "date_desc"
	SortUpvotesDesc = "upvotes_desc"
)

type BenchmarkRepository struct {
	DB *gorm.DB
}

// ListFilters 可选过滤条件，全部精确匹配、全部取交集
type ListFilters struct {
	HardwareID uint64
	ModelID    uint64
	Engine     string
	OS         string
	Sort       string
	Limit      int
}

// LeaderboardRow 每个硬件取最高吞吐的一条
type LeaderboardRow struct {
	HardwareID          uint64  `json:"hardware_id"`
	Brand               string  `json:"brand"`
	Name                string  `json:"name"`
	VramGb              *int    `json:"vram_gb,omitempty"`
	BestTokensPerSecond float64 `json:"best_tokens_per_second"`
}

// BenchmarkDetail 详情页聚合：benchmark 加上硬件/模型记录
type BenchmarkDetail struct {
	Benchmark model.Benchmark `json:"benchmark"`
	Hardware  *model.Hardware `json:"hardware,omitempty"`
	Model     *model.LlmModel `json:"model,omitempty"`
}

func (r *BenchmarkRepository) Create(ctx context.Context, b *model.Benchmark) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *BenchmarkRepository) CreateBatch(ctx context.Context, bs []model.Benchmark) (int, error) {
	if len(bs) == 0 {
		return 0, nil
	}
	if err := r.DB.WithContext(ctx).Create(&bs).Error; err != nil {
		return 0, err
	}
	return len(bs), nil
}

// VerifiedSamples 读取同配置三元组下全部已核验记录的吞吐样本
func (r *BenchmarkRepository) VerifiedSamples(ctx context.Context, hardwareID, modelID uint64, quantization string) ([]float64, error) {
	var samples []float64
	err := r.DB.WithContext(ctx).Model(&model.Benchmark{}).
		Where("status = ? AND hardware_id = ? AND model_id = ? AND quantization = ?",
			model.StatusVerified, hardwareID, modelID, quantization).
		Pluck("tokens_per_second", &samples).Error
	return samples, err
}

// List 已核验记录的过滤排序查询
func (r *BenchmarkRepository) List(ctx context.Context, f ListFilters) ([]model.Benchmark, error) {
	q := r.DB.WithContext(ctx).Model(&model.Benchmark{}).
		Where("status = ?", model.StatusVerified)
	if f.HardwareID > 0 {
		q = q.Where("hardware_id = ?", f.HardwareID)
	}
	if f.ModelID > 0 {
		q = q.Where("model_id = ?", f.ModelID)
	}
	if f.Engine != "" {
		q = q.Where("engine = ?", f.Engine)
	}
	if f.OS != "" {
		q = q.Where("os = ?", f.OS)
	}

	switch f.Sort {
	case SortDateDesc:
		q = q.Order("created_at DESC")
	case SortUpvotesDesc:
		q = q.Order("upvotes DESC")
	default:
		q = q.Order("tokens_per_second DESC")
	}

	var list []model.Benchmark
	err := q.Limit(f.Limit).Find(&list).Error
	return list, err
}

// Leaderboard 按硬件分组取最佳已核验成绩，降序，最多 50 行
func (r *BenchmarkRepository) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT h.id AS hardware_id,
		       h.brand AS brand,
		       h.name AS name,
		       h.vram_gb AS vram_gb,
		       MAX(b.tokens_per_second) AS best_tokens_per_second
		FROM benchmarks b
		JOIN hardware h ON h.id = b.hardware_id
		WHERE b.status = ?
		GROUP BY h.id, h.brand, h.name, h.vram_gb
		ORDER BY best_tokens_per_second DESC
		LIMIT 50`, model.StatusVerified).
		Scan(&rows).Error
	return rows, err
}

// GetDetail 按 id 取单条并连取硬件/模型；benchmark 不存在返回 ErrNotFound
// 硬件/模型缺失不算错（导入来源挂的是占位外键）
func (r *BenchmarkRepository) GetDetail(ctx context.Context, id uint64) (*BenchmarkDetail, error) {
	var b model.Benchmark
	if err := r.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	detail := &BenchmarkDetail{Benchmark: b}

	var hw model.Hardware
	if err := r.DB.WithContext(ctx).First(&hw, b.HardwareID).Error; err == nil {
		detail.Hardware = &hw
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var m model.LlmModel
	if err := r.DB.WithContext(ctx).First(&m, b.ModelID).Error; err == nil {
		detail.Model = &m
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return detail, nil
}
