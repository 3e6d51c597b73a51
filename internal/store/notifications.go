package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusfind/campusfind/internal/model"
)

// ClaimResult carries the finder details released by a successful claim.
type ClaimResult struct {
	FinderName    string `json:"finder_name"`
	FinderContact string `json:"finder_contact"`
}

// CreateNotification records a match between a lost and a found item.
// Creation is idempotent per (lost, found) pair: re-inserting an existing
// pair is a no-op, reported by the returned flag.
func CreateNotification(ctx context.Context, db *sql.DB, lostItemID, foundItemID int64) (created bool, err error) {
	result, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO match_notifications (lost_item_id, found_item_id) VALUES (?, ?)`,
		lostItemID, foundItemID,
	)
	if err != nil {
		return false, fmt.Errorf("creating notification: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking notification insert: %w", err)
	}
	return n > 0, nil
}

// GetNotification returns a notification by ID, or nil if it does not exist.
func GetNotification(ctx context.Context, db *sql.DB, id int64) (*model.MatchNotification, error) {
	n := &model.MatchNotification{}
	err := db.QueryRowContext(ctx,
		`SELECT id, lost_item_id, found_item_id, notified, created_at
		 FROM match_notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.LostItemID, &n.FoundItemID, &n.Notified, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}
	return n, nil
}

// ListPendingForUser returns unseen notifications whose lost item belongs to
// the given user, newest first.
func ListPendingForUser(ctx context.Context, db *sql.DB, userID int64) ([]model.MatchNotification, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT n.id, n.lost_item_id, n.found_item_id, n.notified, n.created_at,
		        l.title AS lost_title, f.title AS found_title, f.location AS found_location
		 FROM match_notifications n
		 JOIN items l ON l.id = n.lost_item_id
		 JOIN items f ON f.id = n.found_item_id
		 WHERE l.user_id = ? AND n.notified = 0
		 ORDER BY n.created_at DESC, n.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.MatchNotification
	for rows.Next() {
		var n model.MatchNotification
		if err := rows.Scan(&n.ID, &n.LostItemID, &n.FoundItemID, &n.Notified, &n.CreatedAt,
			&n.LostTitle, &n.FoundTitle, &n.FoundLocation); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountPair returns how many notification rows exist for a (lost, found) pair.
func CountPair(ctx context.Context, db *sql.DB, lostItemID, foundItemID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM match_notifications WHERE lost_item_id = ? AND found_item_id = ?`,
		lostItemID, foundItemID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting notification pair: %w", err)
	}
	return count, nil
}

// ClaimNotification resolves a match on behalf of the lost item's owner.
// It returns the finder's name and contact info, then permanently deletes the
// lost item, the found item, and the notification in a single transaction.
// A nonexistent notification and one owned by someone else both return
// ErrNotFound. The conditional delete on the notification row makes the claim
// exactly-once under concurrent attempts.
func ClaimNotification(ctx context.Context, db *sql.DB, notificationID, userID int64) (*ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var lostItemID, foundItemID int64
	var result ClaimResult
	err = tx.QueryRowContext(ctx,
		`SELECT n.lost_item_id, n.found_item_id, fu.name, f.contact_info
		 FROM match_notifications n
		 JOIN items l ON l.id = n.lost_item_id
		 JOIN items f ON f.id = n.found_item_id
		 JOIN users fu ON fu.id = f.user_id
		 WHERE n.id = ? AND l.user_id = ?`,
		notificationID, userID,
	).Scan(&lostItemID, &foundItemID, &result.FinderName, &result.FinderContact)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up notification: %w", err)
	}

	// The notification delete is the exactly-once guard: a concurrent claim
	// that lost the race affects zero rows.
	res, err := tx.ExecContext(ctx,
		`DELETE FROM match_notifications WHERE id = ?`, notificationID,
	)
	if err != nil {
		return nil, fmt.Errorf("deleting notification: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking notification delete: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}

	// Deleting the items also cascade-removes any other pending notifications
	// that referenced either of them.
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, lostItemID); err != nil {
		return nil, fmt.Errorf("deleting lost item: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, foundItemID); err != nil {
		return nil, fmt.Errorf("deleting found item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}

	return &result, nil
}
