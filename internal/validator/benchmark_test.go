package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"llmboard/internal/apperr"
)

func validSubmit() *BenchmarkSubmit {
	return &BenchmarkSubmit{
		HardwareID:      1,
		ModelID:         2,
		Quantization:    "Q4_K_M",
		Engine:          "llama.cpp",
		TokensPerSecond: 42.5,
		OS:              "linux",
	}
}

func TestCheckSubmitOK(t *testing.T) {
	if err := CheckSubmit(validSubmit()); err != nil {
		t.Fatalf("valid submit rejected: %v", err)
	}
}

func TestCheckSubmitRejectsNonPositiveTps(t *testing.T) {
	for _, tps := range []float64{0, -1, -42.5} {
		in := validSubmit()
		in.TokensPerSecond = tps
		err := CheckSubmit(in)
		if err == nil {
			t.Fatalf("tps=%v accepted, want rejection", tps)
		}
		ve, ok := apperr.AsValidation(err)
		if !ok {
			t.Fatalf("err type %T, want ValidationError", err)
		}
		found := false
		for _, v := range ve.Violations {
			if v.Field == "tokens_per_second" {
				found = true
			}
		}
		if !found {
			t.Fatalf("no violation for tokens_per_second in %v", ve.Violations)
		}
	}
}

func TestCheckSubmitBounds(t *testing.T) {
	tooBigCtx := 1048577
	tooBigPar := 1025
	tooBigRam := 2049

	cases := []struct {
		name   string
		mutate func(*BenchmarkSubmit)
	}{
		{"tps ceiling", func(in *BenchmarkSubmit) { in.TokensPerSecond = 100001 }},
		{"context size", func(in *BenchmarkSubmit) { in.ContextSize = &tooBigCtx }},
		{"parallel requests", func(in *BenchmarkSubmit) { in.ParallelRequests = &tooBigPar }},
		{"system ram", func(in *BenchmarkSubmit) { in.SystemRamGb = &tooBigRam }},
		{"missing engine", func(in *BenchmarkSubmit) { in.Engine = "" }},
		{"missing quantization", func(in *BenchmarkSubmit) { in.Quantization = "" }},
		{"missing hardware", func(in *BenchmarkSubmit) { in.HardwareID = 0 }},
		{"notes too long", func(in *BenchmarkSubmit) { in.Notes = strings.Repeat("x", 2001) }},
		{"bad source url", func(in *BenchmarkSubmit) { in.SourceURL = "not a url" }},
	}
	for _, tc := range cases {
		in := validSubmit()
		tc.mutate(in)
		if err := CheckSubmit(in); err == nil {
			t.Errorf("%s: accepted, want rejection", tc.name)
		}
	}
}

func TestParseImportBatchPartialDrop(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"avg_ts": 42}`),
		json.RawMessage(`{"avg_ts": -1}`),
	}
	entries, err := ParseImportBatch(raw)
	if err != nil {
		t.Fatalf("batch rejected: %v", err)
	}
	if len(entries) != 1 || entries[0].AvgTs != 42 {
		t.Fatalf("entries = %+v, want exactly the avg_ts=42 row", entries)
	}
}

func TestParseImportBatchAllInvalid(t *testing.T) {
	raw := []json.RawMessage{json.RawMessage(`{"avg_ts": -1}`)}
	if _, err := ParseImportBatch(raw); err == nil {
		t.Fatal("all-invalid batch accepted, want rejection")
	}
	if _, err := ParseImportBatch(nil); err == nil {
		t.Fatal("empty batch accepted, want rejection")
	}
}

func TestParseImportBatchDropsMalformedElements(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"avg_ts": "not a number"}`),
		json.RawMessage(`{"avg_ts": 10, "t_pp_ms": 4}`),
	}
	entries, err := ParseImportBatch(raw)
	if err != nil {
		t.Fatalf("batch rejected: %v", err)
	}
	if len(entries) != 1 || entries[0].TPpMs == nil || *entries[0].TPpMs != 4 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestNoteContent(t *testing.T) {
	if _, err := NoteContent("   "); err == nil {
		t.Fatal("blank note accepted")
	}
	if _, err := NoteContent(strings.Repeat("a", 281)); err == nil {
		t.Fatal("overlong note accepted")
	}
	got, err := NoteContent("  fine note  ")
	if err != nil || got != "fine note" {
		t.Fatalf("got %q err %v", got, err)
	}
	// 长度按字符数不是字节数
	if _, err = NoteContent(strings.Repeat("测", 280)); err != nil {
		t.Fatalf("280-rune note rejected: %v", err)
	}
}
