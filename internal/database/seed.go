package database

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	SamplePages   bool
}

type samplePage struct {
	slug, title, description, video1URL, video2URL, tiktokLink, shopeeLink string
}

var samplePages = []samplePage{
	{
		slug:        "1",
		title:       "Trang 1 - Video Hot",
		description: "Nội dung trang 1. Cập nhật từ admin panel.",
		video1URL:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		video2URL:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
		tiktokLink:  "https://www.tiktok.com/@tiktok",
		shopeeLink:  "https://shopee.vn",
	},
	{
		slug:        "2",
		title:       "Trang 2 - Trending",
		description: "Nội dung trang 2. Cập nhật từ admin panel.",
		video1URL:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
		video2URL:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
		tiktokLink:  "https://www.tiktok.com/@tiktok",
		shopeeLink:  "https://shopee.vn",
	},
}

// Seed creates the admin account when it does not exist yet and, if asked,
// inserts sample pages into an empty pages table. It never overwrites.
func Seed(ctx context.Context, db DBTX, cfg SeedConfig) error {
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		tag, err := db.Exec(ctx,
			`INSERT INTO admins (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
			cfg.AdminUsername, string(hashed),
		)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if tag.RowsAffected() > 0 {
			slog.Info("seed: admin account created", "username", cfg.AdminUsername)
		}
	}

	if !cfg.SamplePages {
		return nil
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM pages`).Scan(&count); err != nil {
		return fmt.Errorf("count pages: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range samplePages {
		if _, err := db.Exec(ctx,
			`INSERT INTO pages (slug, title, description, video1_url, video2_url, tiktok_link, shopee_link)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.slug, p.title, p.description, p.video1URL, p.video2URL, p.tiktokLink, p.shopeeLink,
		); err != nil {
			return fmt.Errorf("seed page %s: %w", p.slug, err)
		}
	}
	slog.Info("seed: sample pages created", "count", len(samplePages))
	return nil
}
