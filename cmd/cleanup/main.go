package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/database"
	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/repository"
)

var (
	dryRun        = flag.Bool("dry-run", true, "Dry run mode, don't actually delete rows")
	retentionDays = flag.Int("retention-days", 0, "Days to keep read notifications (0 = use config)")
)

func main() {
	flag.Parse()

	log.Println("Starting notification cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	days := *retentionDays
	if days <= 0 {
		days = cfg.Cleanup.NotificationRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	log.Printf("Purging read notifications created before %s (%d days)", cutoff.Format("2006-01-02"), days)

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *dryRun {
		var count int64
		err := db.Model(&model.Notification{}).
			Where("`read` = ? AND created_at < ?", true, cutoff).
			Count(&count).Error
		if err != nil {
			log.Fatalf("Failed to count notifications: %v", err)
		}
		log.Printf("Would delete %d notifications", count)
		log.Println("DRY RUN MODE - no rows were deleted")
		log.Println("Run with -dry-run=false to actually delete")
		return
	}

	deleted, err := repository.NewNotificationRepository(db).DeleteReadBefore(cutoff)
	if err != nil {
		log.Fatalf("Failed to delete notifications: %v", err)
	}

	log.Printf("Deleted %d notifications", deleted)
	log.Println("Cleanup completed")
}
