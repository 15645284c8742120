package mysql

import (
	"context"

	"gorm.io/gorm"

	"llmboard/internal/model"
)

// CatalogRepository 硬件/模型目录的读路径和外部元数据回填
type CatalogRepository struct {
	DB *gorm.DB
}

func (r *CatalogRepository) ListApprovedHardware(ctx context.Context) ([]model.Hardware, error) {
	var list []model.Hardware
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.CatalogApproved).
		Order("brand ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *CatalogRepository) ListApprovedModels(ctx context.Context) ([]model.LlmModel, error) {
	var list []model.LlmModel
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.CatalogApproved).
		Order("family ASC, name ASC").
		Find(&list).Error
	return list, err
}

// ModelsWithHfID 有外部仓库 id 的模型，定时回填用
func (r *CatalogRepository) ModelsWithHfID(ctx context.Context) ([]model.LlmModel, error) {
	var list []model.LlmModel
	err := r.DB.WithContext(ctx).
		Select("id", "hf_id").
		Where("hf_id <> ''").
		Find(&list).Error
	return list, err
}

// UpdateHfMetadata 回填外部仓库元数据
func (r *CatalogRepository) UpdateHfMetadata(ctx context.Context, id uint64, downloads, likes int, pipelineTag, tagsJSON string) error {
	return r.DB.WithContext(ctx).Model(&model.LlmModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"hf_downloads":    downloads,
			"hf_likes":        likes,
			"hf_pipeline_tag": pipelineTag,
			"hf_tags":         tagsJSON,
		}).Error
}
