package match

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// CategoryBonus is added to a pair's score when both items share a category.
const CategoryBonus = 20

// Threshold is the minimum total score for a pair to produce a notification.
const Threshold = 70

// Score computes the composite similarity of a found item against a lost
// item: the better of the title and description partial ratios, plus the
// category bonus. Scores are not clamped and may exceed 100.
func Score(found, lost *model.Item) int {
	titleScore := PartialRatio(strings.ToLower(found.Title), strings.ToLower(lost.Title))
	descScore := PartialRatio(strings.ToLower(found.Description), strings.ToLower(lost.Description))

	total := max(titleScore, descScore)
	if found.Category == lost.Category {
		total += CategoryBonus
	}
	return total
}

// Run evaluates a newly created found item against every open lost item and
// records a notification for each pair that crosses the threshold. It is
// invoked synchronously on found-item creation and never for lost items:
// a lost item posted after a matching found item is not retroactively matched.
//
// Each candidate is independent: a persistence failure for one pair is logged
// and does not stop evaluation of the rest. Re-running against the same
// candidates creates no duplicate notifications. Returns the number of
// notifications created.
func Run(ctx context.Context, db *sql.DB, found *model.Item) (int, error) {
	if found.Kind != model.KindFound {
		return 0, nil
	}

	lostItems, err := store.ListItems(ctx, db, store.ItemFilter{Kind: model.KindLost})
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range lostItems {
		lost := &lostItems[i]
		if Score(found, lost) < Threshold {
			continue
		}

		ok, err := store.CreateNotification(ctx, db, lost.ID, found.ID)
		if err != nil {
			slog.Error("recording match failed",
				"lost_item", lost.ID, "found_item", found.ID, "error", err)
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}
