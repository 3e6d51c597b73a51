package match

import (
	"context"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

func TestScoreIdenticalTitleSameCategory(t *testing.T) {
	found := &model.Item{Title: "Blue Backpack", Description: "", Category: "others"}
	lost := &model.Item{Title: "Blue Backpack", Description: "", Category: "others"}

	got := Score(found, lost)
	if got != 120 {
		t.Errorf("expected score 120 (title 100 + bonus 20), got %d", got)
	}
}

func TestScoreIdenticalTitleDifferentCategory(t *testing.T) {
	found := &model.Item{Title: "Casio Watch", Category: "electronics"}
	lost := &model.Item{Title: "Casio Watch", Category: "others"}

	got := Score(found, lost)
	if got != 100 {
		t.Errorf("expected score 100 without category bonus, got %d", got)
	}
}

func TestScoreCaseInsensitiveTitles(t *testing.T) {
	found := &model.Item{Title: "BLUE BACKPACK", Category: "others"}
	lost := &model.Item{Title: "blue backpack", Category: "others"}

	if got := Score(found, lost); got != 120 {
		t.Errorf("expected 120 for case-differing identical titles, got %d", got)
	}
}

func TestScoreDissimilarPair(t *testing.T) {
	found := &model.Item{Title: "Red Pen", Category: "stationery"}
	lost := &model.Item{Title: "Laptop Charger", Category: "electronics"}

	got := Score(found, lost)
	if got >= Threshold {
		t.Errorf("expected score below %d for dissimilar pair, got %d", Threshold, got)
	}
}

func TestScoreUsesBetterOfTitleAndDescription(t *testing.T) {
	found := &model.Item{
		Title:       "Item found near gate",
		Description: "black leather wallet with a broken zip",
		Category:    "wallets",
	}
	lost := &model.Item{
		Title:       "Wallet",
		Description: "black leather wallet with a broken zip",
		Category:    "wallets",
	}

	got := Score(found, lost)
	if got != 120 {
		t.Errorf("expected description match to carry the score to 120, got %d", got)
	}
}

func TestScoreEmptyDescriptionsCarryNoSignal(t *testing.T) {
	found := &model.Item{Title: "Tennis Racket", Description: "", Category: "others"}
	lost := &model.Item{Title: "Chemistry Notes", Description: "", Category: "others"}

	got := Score(found, lost)
	if got >= Threshold {
		t.Errorf("expected empty descriptions not to force a match, got %d", got)
	}
}

func TestRunCreatesNotification(t *testing.T) {
	dbc := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := store.CreateUser(ctx, dbc, "Loser", "R1", "loser@campus.edu", "hash", model.RoleUser)
	finder, _ := store.CreateUser(ctx, dbc, "Finder", "R2", "finder@campus.edu", "hash", model.RoleUser)

	lost, _ := store.CreateItem(ctx, dbc, owner.ID, "Blue Backpack", "", model.KindLost, "others", "library", "9876543210")
	found, _ := store.CreateItem(ctx, dbc, finder.ID, "Blue Backpack", "", model.KindFound, "others", "library", "9123456780")

	created, err := Run(ctx, dbc, found)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created != 1 {
		t.Errorf("expected 1 notification, got %d", created)
	}

	count, _ := store.CountPair(ctx, dbc, lost.ID, found.ID)
	if count != 1 {
		t.Errorf("expected 1 row for the pair, got %d", count)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dbc := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := store.CreateUser(ctx, dbc, "Loser", "R1", "loser@campus.edu", "hash", model.RoleUser)
	finder, _ := store.CreateUser(ctx, dbc, "Finder", "R2", "finder@campus.edu", "hash", model.RoleUser)

	lost, _ := store.CreateItem(ctx, dbc, owner.ID, "Water Bottle", "", model.KindLost, "others", "sports", "9876543210")
	found, _ := store.CreateItem(ctx, dbc, finder.ID, "Water Bottle", "", model.KindFound, "others", "sports", "9123456780")

	if _, err := Run(ctx, dbc, found); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	created, err := Run(ctx, dbc, found)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if created != 0 {
		t.Errorf("expected 0 new notifications on re-run, got %d", created)
	}

	count, _ := store.CountPair(ctx, dbc, lost.ID, found.ID)
	if count != 1 {
		t.Errorf("expected row count to stay at 1, got %d", count)
	}
}

func TestRunSkipsLostItems(t *testing.T) {
	dbc := db.NewTestDB(t)
	ctx := context.Background()

	finder, _ := store.CreateUser(ctx, dbc, "Finder", "R2", "finder@campus.edu", "hash", model.RoleUser)
	owner, _ := store.CreateUser(ctx, dbc, "Loser", "R1", "loser@campus.edu", "hash", model.RoleUser)

	// A found item already exists; posting a matching lost item afterwards
	// must not retroactively match.
	store.CreateItem(ctx, dbc, finder.ID, "Calculator", "", model.KindFound, "electronics", "academic", "9123456780")
	lost, _ := store.CreateItem(ctx, dbc, owner.ID, "Calculator", "", model.KindLost, "electronics", "academic", "9876543210")

	created, err := Run(ctx, dbc, lost)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created != 0 {
		t.Errorf("expected no notifications for a LOST item, got %d", created)
	}

	notifications, _ := store.ListPendingForUser(ctx, dbc, owner.ID)
	if len(notifications) != 0 {
		t.Errorf("expected no pending notifications, got %d", len(notifications))
	}
}

func TestRunMatchesMultipleLostItems(t *testing.T) {
	dbc := db.NewTestDB(t)
	ctx := context.Background()

	ownerA, _ := store.CreateUser(ctx, dbc, "A", "R1", "a@campus.edu", "hash", model.RoleUser)
	ownerB, _ := store.CreateUser(ctx, dbc, "B", "R2", "b@campus.edu", "hash", model.RoleUser)
	finder, _ := store.CreateUser(ctx, dbc, "Finder", "R3", "f@campus.edu", "hash", model.RoleUser)

	store.CreateItem(ctx, dbc, ownerA.ID, "Black Umbrella", "", model.KindLost, "others", "hostel", "9876543210")
	store.CreateItem(ctx, dbc, ownerB.ID, "Black Umbrella", "", model.KindLost, "others", "library", "9876543211")
	found, _ := store.CreateItem(ctx, dbc, finder.ID, "Black Umbrella", "", model.KindFound, "others", "academic", "9123456780")

	created, err := Run(ctx, dbc, found)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created != 2 {
		t.Errorf("expected notifications for both lost items, got %d", created)
	}
}

func TestRunIgnoresDissimilarCandidates(t *testing.T) {
	dbc := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := store.CreateUser(ctx, dbc, "Loser", "R1", "loser@campus.edu", "hash", model.RoleUser)
	finder, _ := store.CreateUser(ctx, dbc, "Finder", "R2", "finder@campus.edu", "hash", model.RoleUser)

	store.CreateItem(ctx, dbc, owner.ID, "Laptop Charger", "dell 65w adapter", model.KindLost, "electronics", "hostel", "9876543210")
	found, _ := store.CreateItem(ctx, dbc, finder.ID, "Red Pen", "", model.KindFound, "stationery", "academic", "9123456780")

	created, err := Run(ctx, dbc, found)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created != 0 {
		t.Errorf("expected no notifications for dissimilar items, got %d", created)
	}
}
