package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"llmboard/internal/apperr"
)

const hfBaseURL = "https://huggingface.co/api"

// HFModelMeta 外部模型仓库返回的元数据，只做补充展示，拿不到就算了
type HFModelMeta struct {
	ID          string   `json:"id"`
	Downloads   int      `json:"downloads"`
	Likes       int      `json:"likes"`
	PipelineTag string   `json:"pipeline_tag"`
	Tags        []string `json:"tags"`
}

type HFClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHFClient(token string) *HFClient {
	return &HFClient{
		baseURL: hfBaseURL,
		token:   token,
		// 有界超时，失败降级而不是挂住调用方
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// NewHFClientWithBase 测试用，可指向本地假服务
func NewHFClientWithBase(baseURL, token string) *HFClient {
	c := NewHFClient(token)
	c.baseURL = baseURL
	return c
}

// Model 拉取单个模型的元数据；任何失败都返回 ErrUpstreamUnavailable
func (c *HFClient) Model(ctx context.Context, hfID string) (*HFModelMeta, error) {
	url := fmt.Sprintf("%s/models/%s", c.baseURL, hfID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.ErrUpstreamUnavailable
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.ErrUpstreamUnavailable
	}

	var meta HFModelMeta
	if err = json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, apperr.ErrUpstreamUnavailable
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	return &meta, nil
}
