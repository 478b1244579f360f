package services

import (
	"context"
	"log"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled maintenance jobs:
// expired session purge and the nightly absence sweep.
type CronService struct {
	cron              *cron.Cron
	db                *gorm.DB
	sessionRepo       repositories.SessionRepository
	attendanceService *AttendanceService
}

// NewCronService creates a new cron service
func NewCronService(
	db *gorm.DB,
	sessionRepo repositories.SessionRepository,
	attendanceService *AttendanceService,
) *CronService {
	return &CronService{
		cron:              cron.New(),
		db:                db,
		sessionRepo:       sessionRepo,
		attendanceService: attendanceService,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	// Hourly expired session purge
	if _, err := s.cron.AddFunc("0 * * * *", s.purgeExpiredSessions); err != nil {
		return err
	}

	// Nightly absence sweep for the previous day
	if _, err := s.cron.AddFunc("15 0 * * *", s.sweepAbsences); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron scheduler stopped")
}

func (s *CronService) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("🛑 Session purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Purged %d expired sessions", deleted)
	}
}

func (s *CronService) sweepAbsences() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var companyIDs []uint
	if err := s.db.WithContext(ctx).
		Model(&models.Company{}).
		Pluck("id", &companyIDs).Error; err != nil {
		log.Printf("🛑 Absence sweep failed to list companies: %v", err)
		return
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	for _, companyID := range companyIDs {
		marked, err := s.attendanceService.MarkAbsentees(ctx, companyID, yesterday)
		if err != nil {
			log.Printf("🛑 Absence sweep failed for company %d: %v", companyID, err)
			continue
		}
		if marked > 0 {
			log.Printf("✅ Marked %d absentees for company %d", marked, companyID)
		}
	}
}
