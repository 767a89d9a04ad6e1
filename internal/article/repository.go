// Package article manages blog articles and their persistence.
package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Author is the subset of the user record embedded in an article.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Article represents a published blog article. The author is set at creation
// and never changes.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when an article does not exist.
var ErrNotFound = errors.New("article not found")

// ErrNotOwner is returned when the caller is not the article's author.
var ErrNotOwner = errors.New("caller is not the article owner")

// Repository handles all article database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `a.id, a.title, a.body, a.created_at, a.updated_at, u.id, u.username`

// Create inserts a new article owned by authorID and returns the created record.
func (r *Repository) Create(ctx context.Context, authorID int64, title, body string) (*Article, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO articles (user_id, title, body)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		authorID, title, body,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches an article with its author. The read is unconditional:
// ownership plays no role in viewing an article.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Article, error) {
	a := &Article{}
	err := r.db.QueryRow(ctx,
		`SELECT `+selectColumns+`
		 FROM articles a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.id = $1`,
		id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt, &a.UpdatedAt, &a.Author.ID, &a.Author.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article by id: %w", err)
	}
	return a, nil
}

// List returns all articles, newest first.
func (r *Repository) List(ctx context.Context) ([]*Article, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+selectColumns+`
		 FROM articles a
		 JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC, a.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []*Article{}
	for rows.Next() {
		a := &Article{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt, &a.UpdatedAt, &a.Author.ID, &a.Author.Username); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// UpdateIfOwned updates title and body of the article only if it is owned by
// ownerID, and reports how many rows matched. Filtering on both id and owner
// in a single statement keeps the authorization check and the write atomic;
// zero rows means the article is absent or owned by someone else, and the
// store deliberately does not say which.
func (r *Repository) UpdateIfOwned(ctx context.Context, id, ownerID int64, title, body string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE articles
		 SET title = $3, body = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		id, ownerID, title, body,
	)
	if err != nil {
		return 0, fmt.Errorf("update article: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteIfOwned deletes the article only if it is owned by ownerID, and
// reports how many rows matched. Same atomicity contract as UpdateIfOwned.
func (r *Repository) DeleteIfOwned(ctx context.Context, id, ownerID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM articles
		 WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete article: %w", err)
	}
	return tag.RowsAffected(), nil
}
