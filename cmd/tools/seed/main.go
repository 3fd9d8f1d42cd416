package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/raushan22882917/f-7556/internal/config"
	"github.com/raushan22882917/f-7556/internal/db"
)

type fixtures struct {
	Hackathons []struct {
		Title                string    `yaml:"title"`
		Description          string    `yaml:"description"`
		StartDate            time.Time `yaml:"start_date"`
		EndDate              time.Time `yaml:"end_date"`
		BannerImageURL       string    `yaml:"banner_image_url"`
		OrganizationImageURL string    `yaml:"organization_image_url"`
		PrizeMoney           float64   `yaml:"prize_money"`
		Offerings            []string  `yaml:"offerings"`
	} `yaml:"hackathons"`
	Users []struct {
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Participants []struct {
		Hackathon      string `yaml:"hackathon"` // slug
		User           string `yaml:"user"`      // email
		Score          int    `yaml:"score"`
		TimeSpent      int    `yaml:"time_spent"`
		SolvedProblems int    `yaml:"solved_problems"`
	} `yaml:"participants"`
}

func main() {
	path := flag.String("fixtures", "cmd/tools/seed/fixtures.yaml", "path to the fixtures file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Failed to read fixtures: %v", err)
	}

	var fx fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		log.Fatalf("Failed to parse fixtures: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	for _, h := range fx.Hackathons {
		_, err := pool.Exec(ctx, `
			INSERT INTO hackathons (title, slug, description, start_date, end_date,
				banner_image_url, organization_image_url, prize_money, offerings)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)
			ON CONFLICT (slug) DO NOTHING
		`, h.Title, slug.Make(h.Title), h.Description, h.StartDate, h.EndDate,
			h.BannerImageURL, h.OrganizationImageURL, h.PrizeMoney, h.Offerings)
		if err != nil {
			log.Fatalf("Failed to insert hackathon %q: %v", h.Title, err)
		}
	}
	log.Printf("Seeded %d hackathons", len(fx.Hackathons))

	for _, u := range fx.Users {
		password := u.Password
		if password == "" {
			password = "changeme"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.Email, err)
		}

		_, err = pool.Exec(ctx, `
			WITH ins AS (
				INSERT INTO users (email, password_hash)
				VALUES ($1, $2)
				ON CONFLICT (email) DO NOTHING
				RETURNING id
			), uid AS (
				SELECT id FROM ins
				UNION ALL
				SELECT id FROM users WHERE email = $1
			)
			INSERT INTO profiles (user_id, name)
			SELECT id, NULLIF($3, '') FROM uid LIMIT 1
			ON CONFLICT (user_id) DO NOTHING
		`, u.Email, string(hash), u.Name)
		if err != nil {
			log.Fatalf("Failed to insert user %s: %v", u.Email, err)
		}
	}
	log.Printf("Seeded %d users", len(fx.Users))

	for _, p := range fx.Participants {
		_, err := pool.Exec(ctx, `
			INSERT INTO hackathon_participants (hackathon_id, user_id, score, time_spent, solved_problems)
			SELECT h.id, u.id, $3, $4, $5
			FROM hackathons h, users u
			WHERE h.slug = $1 AND u.email = $2
			ON CONFLICT (hackathon_id, user_id) DO UPDATE
			SET score = EXCLUDED.score,
			    time_spent = EXCLUDED.time_spent,
			    solved_problems = EXCLUDED.solved_problems
		`, p.Hackathon, p.User, p.Score, p.TimeSpent, p.SolvedProblems)
		if err != nil {
			log.Fatalf("Failed to insert participant %s/%s: %v", p.Hackathon, p.User, err)
		}
	}
	log.Printf("Seeded %d participant records", len(fx.Participants))
}
