package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusfind/campusfind/internal/model"
)

// escapeLike escapes LIKE metacharacters so a keyword matches literally.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

// ItemFilter narrows down an item listing. Zero values mean no filtering.
type ItemFilter struct {
	Kind     string
	Category string
	Location string
	Keyword  string
	UserID   int64
}

// CreateItem creates a new item listing.
func CreateItem(ctx context.Context, db *sql.DB, userID int64, title, description, kind, category, location, contactInfo string) (*model.Item, error) {
	if category == "" {
		category = model.CategoryOthers
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (user_id, title, description, kind, category, location, contact_info)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, title, description, kind, category, location, contactInfo,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT i.id, i.user_id, i.title, i.description, i.kind, i.category, i.location,
		        i.contact_info, i.photo_mime, i.created_at, u.name AS poster_name
		 FROM items i
		 JOIN users u ON u.id = i.user_id
		 WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.UserID, &item.Title, &description, &item.Kind, &item.Category,
		&item.Location, &item.ContactInfo, &photoMime, &item.CreatedAt, &item.PosterName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.PhotoMime = photoMime.String
	return item, nil
}

// ListItems returns items newest-first, narrowed by the filter.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.Item, error) {
	query := `SELECT i.id, i.user_id, i.title, i.description, i.kind, i.category, i.location,
	                 i.contact_info, i.photo_mime, i.created_at, u.name AS poster_name
	          FROM items i
	          JOIN users u ON u.id = i.user_id
	          WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND i.kind = ?`
		args = append(args, filter.Kind)
	}
	if filter.Category != "" {
		query += ` AND i.category = ?`
		args = append(args, filter.Category)
	}
	if filter.Location != "" {
		query += ` AND i.location = ?`
		args = append(args, filter.Location)
	}
	if filter.Keyword != "" {
		query += ` AND (i.title LIKE '%' || ? || '%' ESCAPE '\' OR i.description LIKE '%' || ? || '%' ESCAPE '\')`
		keyword := escapeLike(filter.Keyword)
		args = append(args, keyword, keyword)
	}
	if filter.UserID > 0 {
		query += ` AND i.user_id = ?`
		args = append(args, filter.UserID)
	}

	query += ` ORDER BY i.created_at DESC, i.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, photoMime sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &description, &item.Kind,
			&item.Category, &item.Location, &item.ContactInfo, &photoMime, &item.CreatedAt,
			&item.PosterName); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.PhotoMime = photoMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemPhoto sets an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ? WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}
