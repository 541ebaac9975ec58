package services

import (
	"questlog/models"
	"testing"
)

func TestApplyEffectCategoryBoost(t *testing.T) {
	effect := &models.FateEffect{
		Type:         models.FateCategoryBoost,
		Category:     "might",
		XPMultiplier: multiplier(2),
	}

	got := ApplyEffect(Reward{XP: 50, Gold: 25}, "might", effect)
	if got.XP != 100 || got.Gold != 25 {
		t.Fatalf("expected {100 25}, got %+v", got)
	}
}

func TestApplyEffectFloorsDownward(t *testing.T) {
	effect := &models.FateEffect{
		Type:         models.FateXPBoost,
		XPMultiplier: multiplier(1.5),
	}

	// 25 * 1.5 = 37.5, always floored
	got := ApplyEffect(Reward{XP: 25, Gold: 10}, "general", effect)
	if got.XP != 37 {
		t.Fatalf("expected floored XP 37, got %d", got.XP)
	}
	if got.Gold != 10 {
		t.Fatalf("expected Gold unchanged at 10, got %d", got.Gold)
	}
}

func TestApplyEffectTypes(t *testing.T) {
	base := Reward{XP: 40, Gold: 20}

	tests := []struct {
		name     string
		category string
		effect   models.FateEffect
		want     Reward
	}{
		{
			name:   "xp boost applies to any category",
			effect: models.FateEffect{Type: models.FateXPBoost, XPMultiplier: multiplier(2)},
			want:   Reward{XP: 80, Gold: 20},
		},
		{
			name:   "gold boost applies to any category",
			effect: models.FateEffect{Type: models.FateGoldBoost, GoldMultiplier: multiplier(2)},
			want:   Reward{XP: 40, Gold: 40},
		},
		{
			name:   "mixed applies both multipliers",
			effect: models.FateEffect{Type: models.FateMixed, XPMultiplier: multiplier(1.25), GoldMultiplier: multiplier(1.25)},
			want:   Reward{XP: 50, Gold: 25},
		},
		{
			name:     "category boost with non-matching category is inert",
			category: "wisdom",
			effect:   models.FateEffect{Type: models.FateCategoryBoost, Category: "might", XPMultiplier: multiplier(2)},
			want:     base,
		},
		{
			name:   "unknown effect type is inert",
			effect: models.FateEffect{Type: "cursed", XPMultiplier: multiplier(3)},
			want:   base,
		},
		{
			name:   "boost without multipliers leaves amounts alone",
			effect: models.FateEffect{Type: models.FateXPBoost},
			want:   base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category := tt.category
			if category == "" {
				category = "general"
			}
			got := ApplyEffect(base, category, &tt.effect)
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestActiveEffectToday(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 0, 0, 1)
	setFateBlob(t, db, user.ID, "2026-03-14", models.FateEffect{
		Type:         models.FateXPBoost,
		XPMultiplier: multiplier(2),
	})

	svc := NewFateService(db)
	svc.Now = fixedClock

	effect, err := svc.ActiveEffect(user.ID)
	if err != nil {
		t.Fatalf("ActiveEffect returned error: %v", err)
	}
	if effect == nil {
		t.Fatal("expected an active effect, got nil")
	}
	if effect.Type != models.FateXPBoost {
		t.Fatalf("expected xp_boost, got %q", effect.Type)
	}
}

func TestStaleFateIgnored(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 0, 0, 1)
	setFateBlob(t, db, user.ID, "2026-03-13", models.FateEffect{
		Type:         models.FateCategoryBoost,
		Category:     "might",
		XPMultiplier: multiplier(2),
	})

	svc := NewFateService(db)
	svc.Now = fixedClock

	got, err := svc.ApplyToReward(Reward{XP: 50, Gold: 25}, "might", user.ID)
	if err != nil {
		t.Fatalf("ApplyToReward returned error: %v", err)
	}
	if got.XP != 50 || got.Gold != 25 {
		t.Fatalf("stale fate must leave base unchanged, got %+v", got)
	}
}

func TestActiveEffectMissingUser(t *testing.T) {
	db := newTestDB(t)

	svc := NewFateService(db)
	svc.Now = fixedClock

	effect, err := svc.ActiveEffect(999)
	if err != nil {
		t.Fatalf("ActiveEffect returned error: %v", err)
	}
	if effect != nil {
		t.Fatalf("expected nil effect for missing user, got %+v", effect)
	}
}

func TestActiveEffectGarbageBlob(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 0, 0, 1)
	if err := db.Model(user).Update("daily_fate", "{not json").Error; err != nil {
		t.Fatalf("failed to store blob: %v", err)
	}

	svc := NewFateService(db)
	svc.Now = fixedClock

	effect, err := svc.ActiveEffect(user.ID)
	if err != nil {
		t.Fatalf("ActiveEffect returned error: %v", err)
	}
	if effect != nil {
		t.Fatalf("expected garbage blob to be treated as absent, got %+v", effect)
	}
}

func TestRollDailyOncePerDay(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 0, 0, 1)

	svc := NewFateService(db)
	svc.Now = fixedClock

	first, rolled, err := svc.RollDaily(user.ID)
	if err != nil {
		t.Fatalf("RollDaily returned error: %v", err)
	}
	if !rolled {
		t.Fatal("expected first call to roll")
	}
	if first.Date != "2026-03-14" {
		t.Fatalf("expected date 2026-03-14, got %q", first.Date)
	}

	second, rolled, err := svc.RollDaily(user.ID)
	if err != nil {
		t.Fatalf("RollDaily returned error: %v", err)
	}
	if rolled {
		t.Fatal("expected second call on the same day to be a no-op")
	}
	if second.Effect.Type != first.Effect.Type {
		t.Fatalf("second roll changed the effect: %q -> %q", first.Effect.Type, second.Effect.Type)
	}
}

func TestRollDailyReplacesStaleFate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hero", 0, 0, 1)
	setFateBlob(t, db, user.ID, "2026-03-13", models.FateEffect{Type: models.FateMixed})

	svc := NewFateService(db)
	svc.Now = fixedClock

	fate, rolled, err := svc.RollDaily(user.ID)
	if err != nil {
		t.Fatalf("RollDaily returned error: %v", err)
	}
	if !rolled {
		t.Fatal("expected a fresh roll over a stale blob")
	}
	if fate.Date != "2026-03-14" {
		t.Fatalf("expected date 2026-03-14, got %q", fate.Date)
	}
}
