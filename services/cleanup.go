// services/cleanup.go - Background Cleanup Jobs
package services

import (
	"log"
	"os"
	"questlog/database"
	"questlog/models"
	"strconv"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// CleanupService runs the nightly maintenance jobs: clearing stale daily
// fate blobs and deleting abandoned guest accounts.
type CleanupService struct {
	scheduler gocron.Scheduler
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService() {
	cleanupService = &CleanupService{}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start schedules the cleanup jobs.
func (s *CleanupService) Start() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Failed to create cleanup scheduler: %v", err)
		return
	}
	s.scheduler = sched

	// Just past UTC midnight, when yesterday's fates expire
	_, _ = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 10, 0))),
		gocron.NewTask(func() {
			if err := s.CleanupStaleFates(); err != nil {
				log.Printf("[Cleanup] Stale fate cleanup failed: %v", err)
			}
			if err := s.CleanupGuestAccounts(); err != nil {
				log.Printf("[Cleanup] Guest cleanup failed: %v", err)
			}
		}),
	)

	sched.Start()
	log.Println("🧹 Cleanup scheduler started")
}

// Stop shuts the scheduler down.
func (s *CleanupService) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

// CleanupStaleFates clears daily_fate blobs dated before today. Expired
// blobs are already ignored on read; this keeps the column from rotting.
func (s *CleanupService) CleanupStaleFates() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	today := time.Now().UTC().Format("2006-01-02")
	res := db.Model(&models.User{}).
		Where("daily_fate != '' AND daily_fate NOT LIKE ?", `{"date":"`+today+`%`).
		Update("daily_fate", "")
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("✅ Cleared %d stale fate blobs", res.RowsAffected)
	}
	return nil
}

// CleanupGuestAccounts deletes guest users idle longer than
// GUEST_RETENTION_DAYS (default 30), completions included.
func (s *CleanupService) CleanupGuestAccounts() error {
	if v := os.Getenv("GUEST_CLEANUP_ENABLED"); v == "false" || v == "0" {
		return nil
	}

	db := database.GetDB()
	if db == nil {
		return nil
	}

	retentionDays := 30
	if v := os.Getenv("GUEST_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retentionDays = n
		}
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	var stale []models.User
	if err := db.Where("is_guest = ? AND last_login < ?", true, cutoff).Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	if err := db.Where("user_id IN ?", ids).Delete(&models.QuestCompletion{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&stale).Error; err != nil {
		return err
	}

	log.Printf("✅ Cleaned up %d stale guest accounts", len(stale))
	return nil
}
