package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm/clause"

	"github.com/johnquangdev/team-assistant/internal/adapter/repository"
	"github.com/johnquangdev/team-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/team-assistant/internal/infrastructure/seed"
	"github.com/johnquangdev/team-assistant/pkg/config"
	pkgjwt "github.com/johnquangdev/team-assistant/pkg/jwt"
)

const (
	teamDirectoryPath = "data/team_directory.json"
	transcriptsDir    = "data/transcripts"
)

func main() {
	log.Println("🚀 Seeding bootstrap corpora...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	ctx := context.Background()

	// Team directory
	members, err := seed.LoadTeamDirectory(teamDirectoryPath)
	if err != nil {
		log.Fatalf("Failed to load team directory: %v", err)
	}

	created := 0
	for _, member := range members {
		// Re-running the seed must not duplicate members; name is the identity
		result := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(member)
		if result.Error != nil {
			log.Printf("❌ Failed to seed %s: %v", member.Name, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			created++
		}
	}
	log.Printf("✅ Team directory seeded (%d new of %d members)", created, len(members))

	// Meeting history corpus
	records, err := seed.LoadTranscripts(transcriptsDir)
	if err != nil {
		log.Fatalf("Failed to load transcripts: %v", err)
	}

	meetingRepo := repository.NewMeetingRepository(db)
	archived := 0
	for _, record := range records {
		if err := meetingRepo.Append(ctx, record); err != nil {
			log.Printf("❌ Failed to seed meeting %s: %v", record.MeetingID, err)
			continue
		}
		archived++
	}
	log.Printf("✅ Meeting history seeded (%d of %d transcripts)", archived, len(records))

	// A service token so the seeded API is immediately usable
	if !cfg.Auth.Disabled && cfg.Auth.JWTSecret != "" {
		manager := pkgjwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
		token, err := manager.Generate("seed-admin")
		if err != nil {
			log.Fatalf("Failed to generate service token: %v", err)
		}
		fmt.Printf("\n🔑 Service token (expiry %v):\n%s\n\n", cfg.Auth.TokenExpiry, token)
		log.Println("💡 Use it as: Authorization: Bearer <token>")
	}

	log.Println("💡 Restart the API server to rebuild both retrieval indices")
}
