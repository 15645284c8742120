package service

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"llmboard/internal/identity"
	"llmboard/internal/model"
	"llmboard/internal/repository/mysql"
	"llmboard/internal/validator"
)

type BenchmarkService struct {
	repo *mysql.BenchmarkRepository
}

func NewBenchmarkService(db *gorm.DB) *BenchmarkService {
	return &BenchmarkService{
		repo: &mysql.BenchmarkRepository{DB: db},
	}
}

// Submit 手动提交：校验 -> 按同配置已核验样本做异常判定 -> 落库
// 判定读到的基线允许短暂过期（并发提交各自对旧基线比较，可接受）
func (s *BenchmarkService) Submit(ctx context.Context, ident identity.Identity, in *validator.BenchmarkSubmit) (*model.Benchmark, error) {
	if err := validator.CheckSubmit(in); err != nil {
		return nil, err
	}

	samples, err := s.repo.VerifiedSamples(ctx, in.HardwareID, in.ModelID, in.Quantization)
	if err != nil {
		return nil, err
	}
	status := classifySubmission(in.TokensPerSecond, samples)

	var engineParams string
	if len(in.EngineParams) > 0 {
		raw, err := json.Marshal(in.EngineParams)
		if err != nil {
			return nil, err
		}
		engineParams = string(raw)
	}

	parallel := 1
	if in.ParallelRequests != nil {
		parallel = *in.ParallelRequests
	}

	b := &model.Benchmark{
		UserID:                ident.UserID,
		HardwareID:            in.HardwareID,
		ModelID:               in.ModelID,
		Quantization:          in.Quantization,
		Engine:                in.Engine,
		EngineVersion:         in.EngineVersion,
		EngineParams:          engineParams,
		TokensPerSecond:       in.TokensPerSecond,
		PromptTokensPerSecond: in.PromptTokensPerSecond,
		TimeToFirstTokenMs:    in.TimeToFirstTokenMs,
		ContextSize:           in.ContextSize,
		ParallelRequests:      parallel,
		SystemRamGb:           in.SystemRamGb,
		OS:                    in.OS,
		DriverVersion:         in.DriverVersion,
		Status:                status,
		SourceURL:             in.SourceURL,
		Notes:                 in.Notes,
		ImportSource:          model.ImportSourceManual,
	}
	if err = s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Import llama-bench 批量导入：逐条校验，废条直接丢，全废才整体失败
// 不做异常判定，硬件/模型挂占位外键，全部 pending 等人工处理
func (s *BenchmarkService) Import(ctx context.Context, ident identity.Identity, raw []json.RawMessage) (int, error) {
	entries, err := validator.ParseImportBatch(raw)
	if err != nil {
		return 0, err
	}

	rows := make([]model.Benchmark, 0, len(entries))
	for _, e := range entries {
		var ptps *float64
		if e.TPpMs != nil {
			// 导入格式给的是每个 prompt token 的毫秒数，取倒数换算成 tok/s
			v := 1000 / *e.TPpMs
			ptps = &v
		}
		rows = append(rows, model.Benchmark{
			UserID:                ident.UserID,
			HardwareID:            0,
			ModelID:               0,
			Quantization:          "unknown",
			Engine:                "llama-bench",
			TokensPerSecond:       e.AvgTs,
			PromptTokensPerSecond: ptps,
			ParallelRequests:      1,
			Status:                model.StatusPending,
			ImportSource:          model.ImportSourceLlamaBench,
		})
	}
	return s.repo.CreateBatch(ctx, rows)
}

// List 已核验记录查询，limit 缺省20、封顶100
func (s *BenchmarkService) List(ctx context.Context, f mysql.ListFilters) ([]model.Benchmark, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return s.repo.List(ctx, f)
}

func (s *BenchmarkService) Leaderboard(ctx context.Context) ([]mysql.LeaderboardRow, error) {
	return s.repo.Leaderboard(ctx)
}

func (s *BenchmarkService) Detail(ctx context.Context, id uint64) (*mysql.BenchmarkDetail, error) {
	return s.repo.GetDetail(ctx, id)
}
