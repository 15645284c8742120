package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"llmboard/internal/pkg"
	"llmboard/internal/repository/mysql"
)

// RegistryService 外部模型仓库元数据回填，由外部调度器定时触发
// 单个模型拉取失败只跳过，不影响其它模型，也不把错误抛给调用方
type RegistryService struct {
	catalog *mysql.CatalogRepository
	hf      *pkg.HFClient
}

func NewRegistryService(db *gorm.DB, hf *pkg.HFClient) *RegistryService {
	return &RegistryService{
		catalog: &mysql.CatalogRepository{DB: db},
		hf:      hf,
	}
}

// SyncAll 回填所有挂了 hf_id 的模型，返回更新条数
func (s *RegistryService) SyncAll(ctx context.Context) (int, error) {
	models, err := s.catalog.ModelsWithHfID(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, m := range models {
		// 每个模型单独限时，坏一个不拖垮整批
		reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		meta, err := s.hf.Model(reqCtx, m.HfID)
		cancel()
		if err != nil {
			log.Printf("hf sync skip model=%d hf_id=%s: %v", m.ID, m.HfID, err)
			continue
		}

		tagsJSON, _ := json.Marshal(meta.Tags)
		if err = s.catalog.UpdateHfMetadata(ctx, m.ID, meta.Downloads, meta.Likes, meta.PipelineTag, string(tagsJSON)); err != nil {
			log.Printf("hf sync update err model=%d: %v", m.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}
