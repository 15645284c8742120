package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"llmboard/internal/apperr"
)

// BenchmarkSubmit 手动提交请求体
// 上限只为挡掉明显损坏或恶意的输入，不代表真实硬件极限
type BenchmarkSubmit struct {
	HardwareID            uint64         `json:"hardware_id" validate:"required"`
	ModelID               uint64         `json:"model_id" validate:"required"`
	Quantization          string         `json:"quantization" validate:"required,max=32"`
	Engine                string         `json:"engine" validate:"required,max=64"`
	EngineVersion         string         `json:"engine_version" validate:"omitempty,max=64"`
	EngineParams          map[string]any `json:"engine_params" validate:"omitempty"`
	TokensPerSecond       float64        `json:"tokens_per_second" validate:"required,gt=0,lte=100000"`
	PromptTokensPerSecond *float64       `json:"prompt_tokens_per_second" validate:"omitempty,gt=0,lte=100000"`
	TimeToFirstTokenMs    *float64       `json:"time_to_first_token_ms" validate:"omitempty,gt=0,lte=600000"`
	ParallelRequests      *int           `json:"parallel_requests" validate:"omitempty,gt=0,lte=1024"`
	ContextSize           *int           `json:"context_size" validate:"omitempty,gt=0,lte=1048576"`
	SystemRamGb           *int           `json:"system_ram_gb" validate:"omitempty,gt=0,lte=2048"`
	OS                    string         `json:"os" validate:"required,max=64"`
	DriverVersion         string         `json:"driver_version" validate:"omitempty,max=64"`
	Notes                 string         `json:"notes" validate:"omitempty,max=2000"`
	SourceURL             string         `json:"source_url" validate:"omitempty,url,max=2000"`
}

// LlamaBenchEntry llama-bench 导出格式的单条记录，只有 avg_ts 必填
type LlamaBenchEntry struct {
	Model      string   `json:"model" validate:"omitempty"`
	NGpuLayers *int     `json:"n_gpu_layers" validate:"omitempty,gte=0"`
	NThreads   *int     `json:"n_threads" validate:"omitempty,gt=0"`
	NPrompt    *int     `json:"n_prompt" validate:"omitempty,gt=0"`
	NGen       *int     `json:"n_gen" validate:"omitempty,gt=0"`
	Test       string   `json:"test" validate:"omitempty"`
	AvgTs      float64  `json:"avg_ts" validate:"required,gt=0"`
	TPpMs      *float64 `json:"t_pp_ms" validate:"omitempty,gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误里用 json 字段名，方便调用方对照请求体
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CheckSubmit 校验手动提交，失败时返回逐字段明细
func CheckSubmit(in *BenchmarkSubmit) error {
	if err := validate.Struct(in); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ParseImportBatch 逐条解析并校验 llama-bench 数组
// 失败的条目直接丢弃；全部失败或数组为空时整个请求失败
func ParseImportBatch(raw []json.RawMessage) ([]LlamaBenchEntry, error) {
	if len(raw) == 0 {
		return nil, apperr.NewValidation("body", "expected a non-empty array of llama-bench objects")
	}
	accepted := make([]LlamaBenchEntry, 0, len(raw))
	for _, item := range raw {
		var entry LlamaBenchEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		if err := validate.Struct(&entry); err != nil {
			continue
		}
		accepted = append(accepted, entry)
	}
	if len(accepted) == 0 {
		return nil, apperr.NewValidation("body", "no valid llama-bench entries found")
	}
	return accepted, nil
}

// NoteContent 社区备注正文校验，返回去空白后的内容
func NoteContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > 280 {
		return "", apperr.NewValidation("content", "must be between 1 and 280 characters")
	}
	return trimmed, nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.NewValidation("body", err.Error())
	}
	out := &apperr.ValidationError{}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, apperr.FieldViolation{
			Field:  fe.Field(),
			Reason: reasonFor(fe),
		})
	}
	return out
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " long"
	case "url":
		return "must be a valid url"
	default:
		return "invalid value"
	}
}
