package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blog-system/blog-api/internal/core/domain"
	"github.com/blog-system/blog-api/internal/core/ports"
)

const postColumns = "id, title, content, author, created_at"

type PostRepository struct {
	pool *pgxpool.Pool
}

var _ ports.PostRepository = (*PostRepository)(nil)

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

type postRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	CreatedAt time.Time `db:"created_at"`
}

func (r postRow) toDomain() *domain.Post {
	return &domain.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
	}
}

func (r *PostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	return r.query(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at DESC, id DESC")
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, _ := r.pool.Query(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNoRecord
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return row.toDomain(), nil
}

// Save inserts a new post or updates title, content and author of an existing one.
func (r *PostRepository) Save(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows pgx.Rows
	if p.ID == 0 {
		rows, _ = r.pool.Query(ctx,
			"INSERT INTO posts (title, content, author, created_at) VALUES ($1, $2, $3, $4) RETURNING "+postColumns,
			p.Title, p.Content, p.Author, p.CreatedAt)
	} else {
		rows, _ = r.pool.Query(ctx,
			"UPDATE posts SET title = $2, content = $3, author = $4 WHERE id = $1 RETURNING "+postColumns,
			p.ID, p.Title, p.Content, p.Author)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNoRecord
		}
		return nil, fmt.Errorf("save post: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PostRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNoRecord
	}
	return nil
}

func (r *PostRepository) FindByTitleContaining(ctx context.Context, keyword string) ([]*domain.Post, error) {
	return r.query(ctx,
		"SELECT "+postColumns+` FROM posts WHERE title LIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`,
		likeEscaper.Replace(keyword))
}

func (r *PostRepository) FindByAuthor(ctx context.Context, author string) ([]*domain.Post, error) {
	return r.query(ctx, "SELECT "+postColumns+" FROM posts WHERE author = $1 ORDER BY id", author)
}

func (r *PostRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, _ := r.pool.Query(ctx, sql, args...)
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}

	posts := make([]*domain.Post, len(found))
	for i, row := range found {
		posts[i] = row.toDomain()
	}
	return posts, nil
}

// likeEscaper makes LIKE wildcards in a keyword match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
