package pkg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"llmboard/internal/apperr"
)

func TestHFClientModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/meta-llama/Llama-3-8B" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"meta-llama/Llama-3-8B","downloads":123,"likes":7,"pipeline_tag":"text-generation","tags":["llama"]}`))
	}))
	defer srv.Close()

	c := NewHFClientWithBase(srv.URL, "tok")
	meta, err := c.Model(context.Background(), "meta-llama/Llama-3-8B")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if meta.Downloads != 123 || meta.Likes != 7 || meta.PipelineTag != "text-generation" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestHFClientDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHFClientWithBase(srv.URL, "")
	if _, err := c.Model(context.Background(), "whatever"); !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}

	// 连不上也一样降级
	srv.Close()
	if _, err := c.Model(context.Background(), "whatever"); !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Fatalf("err after close = %v, want ErrUpstreamUnavailable", err)
	}
}
