package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

var pageRowColumns = []string{
	"id", "slug", "title", "description", "video1_url", "video2_url",
	"tiktok_link", "shopee_link", "is_active", "created_at", "updated_at",
}

var testTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create pgxmock pool: %v", err)
	}
	t.Cleanup(func() { mock.Close() })
	return NewRepository(mock, time.Minute), mock
}

func pageRows(pages ...Page) *pgxmock.Rows {
	rows := pgxmock.NewRows(pageRowColumns)
	for _, p := range pages {
		rows.AddRow(p.ID, p.Slug, p.Title, p.Description, p.Video1URL, p.Video2URL,
			p.TiktokLink, p.ShopeeLink, p.IsActive, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func samplePage(id, slug string) Page {
	return Page{
		ID:          id,
		Slug:        slug,
		Title:       "Trang " + slug,
		Description: "Nội dung",
		Video1URL:   "https://cdn.example.com/v1.mp4",
		Video2URL:   "https://cdn.example.com/v2.mp4",
		TiktokLink:  "https://vt.tiktok.com/" + slug,
		ShopeeLink:  "https://s.shopee.vn/" + slug,
		IsActive:    true,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM pages ORDER BY created_at ASC`).
		WillReturnRows(pageRows(samplePage("p-1", "1"), samplePage("p-2", "2")))

	pages, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 || pages[0].Slug != "1" || pages[1].Slug != "2" {
		t.Errorf("unexpected pages: %+v", pages)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_FindActiveCachesBySlug(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM pages WHERE slug = \$1 AND is_active`).
		WithArgs("1").
		WillReturnRows(pageRows(samplePage("p-1", "1")))

	for i := 0; i < 3; i++ {
		p, err := repo.FindActive(context.Background(), "1")
		if err != nil {
			t.Fatalf("lookup %d: unexpected error: %v", i, err)
		}
		if p.ID != "p-1" {
			t.Fatalf("lookup %d: unexpected page %+v", i, p)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected a single query, got: %v", err)
	}
}

func TestRepository_FindActiveLatestWhenUnscoped(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM pages WHERE is_active ORDER BY created_at DESC LIMIT 1`).
		WillReturnRows(pageRows(samplePage("p-9", "9")))

	p, err := repo.FindActive(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slug != "9" {
		t.Errorf("expected latest page, got %+v", p)
	}
}

func TestRepository_FindActiveLatestAlias(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM pages WHERE is_active ORDER BY created_at DESC LIMIT 1`).
		WillReturnRows(pageRows(samplePage("p-9", "9")))

	p, err := repo.FindActive(context.Background(), LatestSlug)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slug != "9" {
		t.Errorf("expected latest page, got %+v", p)
	}

	// Shares the cache entry with the unscoped lookup.
	if _, err := repo.FindActive(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_FindActiveNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM pages WHERE slug = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindActive(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_CreateDuplicateSlug(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`INSERT INTO pages`).
		WithArgs("1", "t", "d", "https://a", "https://b", "https://c", "https://d", true).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), Page{
		Slug: "1", Title: "t", Description: "d",
		Video1URL: "https://a", Video2URL: "https://b", TiktokLink: "https://c", ShopeeLink: "https://d",
		IsActive: true,
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
}

func TestRepository_WritesInvalidateCache(t *testing.T) {
	repo, mock := newTestRepo(t)

	original := samplePage("p-1", "1")
	renamed := original
	renamed.TiktokLink = "https://vt.tiktok.com/new"

	mock.ExpectQuery(`SELECT .+ FROM pages WHERE slug = \$1`).
		WithArgs("1").
		WillReturnRows(pageRows(original))
	mock.ExpectQuery(`UPDATE pages SET`).
		WithArgs("p-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pageRows(renamed))
	mock.ExpectQuery(`SELECT .+ FROM pages WHERE slug = \$1`).
		WithArgs("1").
		WillReturnRows(pageRows(renamed))

	ctx := context.Background()
	if _, err := repo.FindActive(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Update(ctx, "p-1", Changes{TiktokLink: &renamed.TiktokLink}); err != nil {
		t.Fatal(err)
	}
	p, err := repo.FindActive(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if p.TiktokLink != "https://vt.tiktok.com/new" {
		t.Errorf("expected fresh page after update, got %s", p.TiktokLink)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_DeleteMissing(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`DELETE FROM pages WHERE id = \$1`).
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
