package services

import (
	"testing"
)

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},   // level 1 -> 2 costs 100
		{381, 2},   // level 2 -> 3 costs floor(100 * 2^1.5) = 282
		{382, 3},   // 100 + 282
		{1000, 4},  // 100 + 282 + 519 = 901 spent, 99 into level 4
		{-50, 1},   // never below the floor
	}

	for _, tt := range tests {
		if got := LevelForExperience(tt.xp); got != tt.want {
			t.Errorf("LevelForExperience(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelProgress(t *testing.T) {
	into, next := LevelProgress(150)
	if into != 50 {
		t.Fatalf("expected 50 xp into level 2, got %d", into)
	}
	if next != 282 {
		t.Fatalf("expected next level cost 282, got %d", next)
	}
}

func TestApplyDeltaRaisesLevel(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 0, 0, 1)

	agg := &ProgressionAggregator{}
	if err := agg.ApplyDelta(db, user.ID, Reward{XP: 150, Gold: 30}); err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}

	reloaded := getTestUser(t, db, user.ID)
	if reloaded.Experience != 150 || reloaded.Gold != 30 {
		t.Fatalf("expected 150/30, got %d/%d", reloaded.Experience, reloaded.Gold)
	}
	if reloaded.Level != 2 {
		t.Fatalf("expected level 2, got %d", reloaded.Level)
	}
}

func TestReverseDeltaClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 10, 5, 1)

	agg := &ProgressionAggregator{}
	if err := agg.ReverseDelta(db, user.ID, Reward{XP: 50, Gold: 50}); err != nil {
		t.Fatalf("ReverseDelta returned error: %v", err)
	}

	reloaded := getTestUser(t, db, user.ID)
	if reloaded.Experience != 0 || reloaded.Gold != 0 {
		t.Fatalf("expected clamp to 0/0, got %d/%d", reloaded.Experience, reloaded.Gold)
	}
}

func TestReverseDeltaKeepsLevel(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 150, 0, 2)

	agg := &ProgressionAggregator{}
	if err := agg.ReverseDelta(db, user.ID, Reward{XP: 150}); err != nil {
		t.Fatalf("ReverseDelta returned error: %v", err)
	}

	reloaded := getTestUser(t, db, user.ID)
	if reloaded.Experience != 0 {
		t.Fatalf("expected experience 0, got %d", reloaded.Experience)
	}
	if reloaded.Level != 2 {
		t.Fatalf("level must never decrease, got %d", reloaded.Level)
	}
}

func TestDeltasOnMissingUserAreNoops(t *testing.T) {
	db := newTestDB(t)

	agg := &ProgressionAggregator{}
	if err := agg.ApplyDelta(db, 999, Reward{XP: 50, Gold: 25}); err != nil {
		t.Fatalf("ApplyDelta on missing user returned error: %v", err)
	}
	if err := agg.ReverseDelta(db, 999, Reward{XP: 50, Gold: 25}); err != nil {
		t.Fatalf("ReverseDelta on missing user returned error: %v", err)
	}
}
