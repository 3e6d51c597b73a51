package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
)

func testUser(t *testing.T, database *sql.DB, name, roll, email string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, name, roll, email, "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Alice", "21CS100", "alice@campus.edu")

	item, err := CreateItem(ctx, database, user.ID, "Blue Backpack", "with laptop inside", model.KindLost, "others", "library", "9876543210")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Title != "Blue Backpack" {
		t.Errorf("expected title 'Blue Backpack', got %q", item.Title)
	}
	if item.Kind != model.KindLost {
		t.Errorf("expected kind LOST, got %q", item.Kind)
	}
	if item.PosterName != "Alice" {
		t.Errorf("expected joined poster name, got %q", item.PosterName)
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.Description != "with laptop inside" {
		t.Errorf("expected item with description, got %+v", got)
	}
}

func TestCreateItemDefaultsCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Alice", "21CS100", "alice@campus.edu")

	item, err := CreateItem(ctx, database, user.ID, "Mystery Object", "", model.KindFound, "", "hostel", "9876543210")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Category != model.CategoryOthers {
		t.Errorf("expected default category %q, got %q", model.CategoryOthers, item.Category)
	}
}

func TestGetMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 12345)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Error("expected nil for missing item")
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "Alice", "21CS100", "alice@campus.edu")
	bob := testUser(t, database, "Bob", "21CS101", "bob@campus.edu")

	CreateItem(ctx, database, alice.ID, "Blue Backpack", "nike bag", model.KindLost, "others", "library", "9876543210")
	CreateItem(ctx, database, bob.ID, "Casio Calculator", "fx-991", model.KindFound, "electronics", "academic", "9876543211")
	CreateItem(ctx, database, bob.ID, "Black Pen", "", model.KindFound, "stationery", "library", "9876543212")

	all, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}

	found, _ := ListItems(ctx, database, ItemFilter{Kind: model.KindFound})
	if len(found) != 2 {
		t.Errorf("expected 2 found items, got %d", len(found))
	}

	electronics, _ := ListItems(ctx, database, ItemFilter{Category: "electronics"})
	if len(electronics) != 1 || electronics[0].Title != "Casio Calculator" {
		t.Errorf("expected the calculator, got %v", electronics)
	}

	library, _ := ListItems(ctx, database, ItemFilter{Location: "library"})
	if len(library) != 2 {
		t.Errorf("expected 2 library items, got %d", len(library))
	}

	keyword, _ := ListItems(ctx, database, ItemFilter{Keyword: "backpack"})
	if len(keyword) != 1 {
		t.Errorf("expected 1 keyword match on title, got %d", len(keyword))
	}

	keywordDesc, _ := ListItems(ctx, database, ItemFilter{Keyword: "fx-991"})
	if len(keywordDesc) != 1 {
		t.Errorf("expected 1 keyword match on description, got %d", len(keywordDesc))
	}

	mine, _ := ListItems(ctx, database, ItemFilter{UserID: bob.ID})
	if len(mine) != 2 {
		t.Errorf("expected 2 items for bob, got %d", len(mine))
	}
}

func TestListItemsKeywordIsLiteral(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Alice", "21CS100", "alice@campus.edu")

	CreateItem(ctx, database, user.ID, "100% Cotton Scarf", "", model.KindLost, "clothing", "hostel", "9876543210")
	CreateItem(ctx, database, user.ID, "Blue Backpack", "", model.KindLost, "others", "library", "9876543210")
	CreateItem(ctx, database, user.ID, "fx_991 Calculator", "", model.KindFound, "electronics", "academic", "9876543210")

	// LIKE wildcards in the keyword must not match everything.
	percent, err := ListItems(ctx, database, ItemFilter{Keyword: "100%"})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(percent) != 1 || percent[0].Title != "100% Cotton Scarf" {
		t.Errorf("expected only the literal %% match, got %v", percent)
	}

	underscore, _ := ListItems(ctx, database, ItemFilter{Keyword: "fx_991"})
	if len(underscore) != 1 || underscore[0].Title != "fx_991 Calculator" {
		t.Errorf("expected only the literal _ match, got %v", underscore)
	}

	none, _ := ListItems(ctx, database, ItemFilter{Keyword: "%backpack%pen%"})
	if len(none) != 0 {
		t.Errorf("expected no matches for wildcard-laden keyword, got %d", len(none))
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Alice", "21CS100", "alice@campus.edu")

	first, _ := CreateItem(ctx, database, user.ID, "First", "", model.KindLost, "others", "hostel", "9876543210")
	second, _ := CreateItem(ctx, database, user.ID, "Second", "", model.KindLost, "others", "hostel", "9876543210")

	items, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("expected newest first, got ids %d, %d", items[0].ID, items[1].ID)
	}
}

func TestItemPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Alice", "21CS100", "alice@campus.edu")
	item, _ := CreateItem(ctx, database, user.ID, "Photo Item", "", model.KindFound, "others", "hostel", "9876543210")

	photoData := []byte("fake photo data")
	if err := SetItemPhoto(ctx, database, item.ID, photoData, "image/jpeg"); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := GetItemPhoto(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if string(data) != "fake photo data" {
		t.Errorf("expected photo data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}
