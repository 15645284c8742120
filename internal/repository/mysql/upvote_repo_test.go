package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"llmboard/internal/apperr"
	"llmboard/internal/model"
)

func TestToggleVoteAndUnvote(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Benchmark{
		UserID:          "owner-1",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q4_K_M",
		Engine:          "llama.cpp",
		TokensPerSecond: 50,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	repo := &UpvoteRepository{DB: db}

	// 第一次：变为已赞，计数=1，台账=1
	voted, err := repo.Toggle(ctx, "user-a", b.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !voted {
		t.Fatal("first toggle should vote")
	}
	assertCounterMatchesLedger(t, repo, ctx, b.ID, 1)

	// 第二次：取消，回到初始状态
	voted, err = repo.Toggle(ctx, "user-a", b.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if voted {
		t.Fatal("second toggle should unvote")
	}
	assertCounterMatchesLedger(t, repo, ctx, b.ID, 0)
}

func TestToggleGrantsOwnerPoints(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Benchmark{
		UserID:          "owner-2",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q8_0",
		Engine:          "vllm",
		TokensPerSecond: 80,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	upvotes := &UpvoteRepository{DB: db}
	rep := &ReputationRepository{DB: db}

	if _, err := upvotes.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	points, err := rep.SumPoints(ctx, "owner-2")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if points != 2 {
		t.Fatalf("owner points = %d, want 2", points)
	}

	// 取消点赞不回收积分
	if _, err = upvotes.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("untoggle: %v", err)
	}
	points, err = rep.SumPoints(ctx, "owner-2")
	if err != nil {
		t.Fatalf("sum after unvote: %v", err)
	}
	if points != 2 {
		t.Fatalf("owner points after unvote = %d, want 2", points)
	}

	// 赞/取消/再赞会再发一次积分（已知的刷分口子，按设计保留）
	if _, err = upvotes.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("revote: %v", err)
	}
	points, _ = rep.SumPoints(ctx, "owner-2")
	if points != 4 {
		t.Fatalf("owner points after revote = %d, want 4", points)
	}
}

func TestToggleWritesOutbox(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Benchmark{
		UserID:          "owner-3",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q4_0",
		Engine:          "llama.cpp",
		TokensPerSecond: 40,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	upvotes := &UpvoteRepository{DB: db}
	outbox := &ReputationOutboxRepository{DB: db}

	if _, err := upvotes.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	rows, err := outbox.List(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("outbox rows = %d, want 1", len(rows))
	}
	if rows[0].EventType != model.EventUpvoteReceived || rows[0].UserID != "owner-3" {
		t.Fatalf("unexpected outbox row: %+v", rows[0])
	}

	if err = outbox.SuccessUpdate(ctx, rows[0].ID); err != nil {
		t.Fatalf("success update: %v", err)
	}
	rows, _ = outbox.List(ctx, 10)
	if len(rows) != 0 {
		t.Fatalf("outbox still has %d pending rows after success", len(rows))
	}
}

func TestDuplicateLedgerRowRejected(t *testing.T) {
	db := newTestDB(t)

	b := &model.Benchmark{
		UserID:          "owner-5",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q4_K_M",
		Engine:          "llama.cpp",
		TokensPerSecond: 55,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	// 唯一索引 + 驱动错误翻译是防重复的最后防线，直接插两行验证
	if err := db.Create(&model.BenchmarkUpvote{UserID: "user-a", BenchmarkID: b.ID}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := db.Create(&model.BenchmarkUpvote{UserID: "user-a", BenchmarkID: b.ID}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert err = %v, want ErrDuplicatedKey", err)
	}
}

func TestToggleConflictOnRacingVote(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Benchmark{
		UserID:          "owner-6",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q8_0",
		Engine:          "vllm",
		TokensPerSecond: 70,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	// 台账查空之后、插入之前，另一请求先把同一行插进去
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("race:vote", func(tx *gorm.DB) {
		if raced {
			return
		}
		if _, ok := tx.Statement.Dest.(*model.BenchmarkUpvote); !ok {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).
			Create(&model.BenchmarkUpvote{UserID: "user-a", BenchmarkID: b.ID})
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	repo := &UpvoteRepository{DB: db}
	_, err = repo.Toggle(ctx, "user-a", b.ID)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("racing vote err = %v, want ErrConflict", err)
	}
	if !raced {
		t.Fatal("race was never staged")
	}
	// 事务整体回滚，作者不会因冲突请求拿到积分
	rep := &ReputationRepository{DB: db}
	points, err := rep.SumPoints(ctx, "owner-6")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if points != 0 {
		t.Fatalf("owner points after conflict = %d, want 0", points)
	}
}

func TestToggleConflictOnRacingUnvote(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Benchmark{
		UserID:          "owner-7",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q6_K",
		Engine:          "llama.cpp",
		TokensPerSecond: 65,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	repo := &UpvoteRepository{DB: db}
	if _, err := repo.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// 台账查到之后、删除之前，另一请求先把行删掉，DELETE 影响 0 行
	raced := false
	err := db.Callback().Delete().Before("gorm:delete").Register("race:unvote", func(tx *gorm.DB) {
		if raced {
			return
		}
		if _, ok := tx.Statement.Dest.(*model.BenchmarkUpvote); !ok {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).
			Where("user_id = ? AND benchmark_id = ?", "user-a", b.ID).
			Delete(&model.BenchmarkUpvote{})
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = repo.Toggle(ctx, "user-a", b.ID)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("racing unvote err = %v, want ErrConflict", err)
	}
	if !raced {
		t.Fatal("race was never staged")
	}
}

func TestToggleMissingBenchmark(t *testing.T) {
	db := newTestDB(t)
	repo := &UpvoteRepository{DB: db}

	_, err := repo.Toggle(context.Background(), "user-a", 12345)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTwoUsersVoteIndependently(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Benchmark{
		UserID:          "owner-4",
		HardwareID:      1,
		ModelID:         1,
		Quantization:    "Q6_K",
		Engine:          "llama.cpp",
		TokensPerSecond: 60,
		Status:          model.StatusVerified,
	}
	mustCreate(t, db, b)

	repo := &UpvoteRepository{DB: db}
	if _, err := repo.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("user-a toggle: %v", err)
	}
	if _, err := repo.Toggle(ctx, "user-b", b.ID); err != nil {
		t.Fatalf("user-b toggle: %v", err)
	}
	assertCounterMatchesLedger(t, repo, ctx, b.ID, 2)

	if _, err := repo.Toggle(ctx, "user-a", b.ID); err != nil {
		t.Fatalf("user-a untoggle: %v", err)
	}
	assertCounterMatchesLedger(t, repo, ctx, b.ID, 1)

	voted, err := repo.IsVoted(ctx, "user-b", b.ID)
	if err != nil || !voted {
		t.Fatalf("user-b should still be voted, voted=%v err=%v", voted, err)
	}
}

func assertCounterMatchesLedger(t *testing.T, repo *UpvoteRepository, ctx context.Context, benchmarkID uint64, want int64) {
	t.Helper()
	cnt, err := repo.GetUpvoteCount(ctx, benchmarkID)
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	ledger, err := repo.LedgerCount(ctx, benchmarkID)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if cnt != want || ledger != want {
		t.Fatalf("counter=%d ledger=%d, want both %d", cnt, ledger, want)
	}
}
