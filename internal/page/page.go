package page

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/patrickmn/go-cache"
	"github.com/vidgate/vidgate/internal/database"
)

var (
	ErrNotFound  = errors.New("page not found")
	ErrSlugTaken = errors.New("slug already exists")
)

type Page struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Video1URL   string    `json:"video1Url"`
	Video2URL   string    `json:"video2Url"`
	TiktokLink  string    `json:"tiktokLink"`
	ShopeeLink  string    `json:"shopeeLink"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Changes holds a partial update; nil fields are left untouched.
type Changes struct {
	Slug        *string
	Title       *string
	Description *string
	Video1URL   *string
	Video2URL   *string
	TiktokLink  *string
	ShopeeLink  *string
	IsActive    *bool
}

const pageColumns = `id, slug, title, description, video1_url, video2_url, tiktok_link, shopee_link, is_active, created_at, updated_at`

const latestCacheKey = "latest"

// LatestSlug addresses the most recently created active page. It cannot be
// used as a real page slug.
const LatestSlug = "latest"

type Repository struct {
	db    database.DBTX
	cache *cache.Cache
}

// NewRepository caches visitor-facing lookups for ttl. Admin reads always hit
// the database.
func NewRepository(db database.DBTX, ttl time.Duration) *Repository {
	return &Repository{
		db:    db,
		cache: cache.New(ttl, 2*ttl),
	}
}

func scanPage(row pgx.Row) (*Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.Video1URL, &p.Video2URL,
		&p.TiktokLink, &p.ShopeeLink, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(ctx context.Context) ([]Page, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := []Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return pages, nil
}

// FindActive returns the active page for slug, or the most recently created
// active page when slug is empty or LatestSlug.
func (r *Repository) FindActive(ctx context.Context, slug string) (*Page, error) {
	if slug == LatestSlug {
		slug = ""
	}
	key := latestCacheKey
	if slug != "" {
		key = "slug:" + slug
	}
	if cached, ok := r.cache.Get(key); ok {
		p := cached.(Page)
		return &p, nil
	}

	var p *Page
	var err error
	if slug == "" {
		p, err = scanPage(r.db.QueryRow(ctx,
			`SELECT `+pageColumns+` FROM pages WHERE is_active ORDER BY created_at DESC LIMIT 1`))
	} else {
		p, err = scanPage(r.db.QueryRow(ctx,
			`SELECT `+pageColumns+` FROM pages WHERE slug = $1 AND is_active`, slug))
	}
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, *p, cache.DefaultExpiration)
	return p, nil
}

func (r *Repository) Create(ctx context.Context, p Page) (*Page, error) {
	created, err := scanPage(r.db.QueryRow(ctx,
		`INSERT INTO pages (slug, title, description, video1_url, video2_url, tiktok_link, shopee_link, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+pageColumns,
		p.Slug, p.Title, p.Description, p.Video1URL, p.Video2URL, p.TiktokLink, p.ShopeeLink, p.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create page: %w", err)
	}
	r.cache.Flush()
	return created, nil
}

func (r *Repository) Update(ctx context.Context, id string, c Changes) (*Page, error) {
	updated, err := scanPage(r.db.QueryRow(ctx,
		`UPDATE pages SET
		   slug = COALESCE($2, slug),
		   title = COALESCE($3, title),
		   description = COALESCE($4, description),
		   video1_url = COALESCE($5, video1_url),
		   video2_url = COALESCE($6, video2_url),
		   tiktok_link = COALESCE($7, tiktok_link),
		   shopee_link = COALESCE($8, shopee_link),
		   is_active = COALESCE($9, is_active),
		   updated_at = now()
		 WHERE id = $1 RETURNING `+pageColumns,
		id, c.Slug, c.Title, c.Description, c.Video1URL, c.Video2URL, c.TiktokLink, c.ShopeeLink, c.IsActive,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update page: %w", err)
	}
	r.cache.Flush()
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.cache.Flush()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
