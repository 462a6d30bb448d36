package workers

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofrs/flock"

	"github.com/fabiodalez-dev/photoCMS-sub001/config"
	"github.com/fabiodalez-dev/photoCMS-sub001/database"
)

const maintenanceCheckInterval = time.Hour

// MaintenanceScheduler backfills incomplete derivative matrices and missing
// blur placeholders at most once per UTC day. A file lock keeps concurrent
// processes sharing the same storage from duplicating the work.
type MaintenanceScheduler struct {
	db        *sql.DB
	marker    *database.SettingsStore
	generator *DerivativeGenerator
	settings  config.ImageSettings
	lockPath  string
}

func NewMaintenanceScheduler(
	db *sql.DB,
	marker *database.SettingsStore,
	generator *DerivativeGenerator,
	settings config.ImageSettings,
	lockPath string,
) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		db:        db,
		marker:    marker,
		generator: generator,
		settings:  settings,
		lockPath:  lockPath,
	}
}

// Start runs the scheduler in a background goroutine. It checks once
// immediately and then hourly until stop is closed.
func (s *MaintenanceScheduler) Start(stop <-chan struct{}) {
	go func() {
		log.Println("maintenance: scheduler started")
		if err := s.RunIfDue(); err != nil {
			log.Printf("maintenance: run failed: %v", err)
		}

		ticker := time.NewTicker(maintenanceCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.RunIfDue(); err != nil {
					log.Printf("maintenance: run failed: %v", err)
				}
			case <-stop:
				log.Println("maintenance: scheduler stopped")
				return
			}
		}
	}()
}

// RunIfDue performs a maintenance pass unless today's run already happened
// and nothing is missing. Quiet days mark the marker without taking the
// lock, so they cost two queries.
func (s *MaintenanceScheduler) RunIfDue() error {
	today := time.Now().UTC().Format("2006-01-02")

	incomplete, blurMissing, err := s.outstandingWork()
	if err != nil {
		return err
	}
	if len(incomplete) == 0 && len(blurMissing) == 0 {
		last, markerErr := s.marker.LastMaintenanceRun()
		if markerErr != nil {
			return markerErr
		}
		if last == today {
			return nil
		}
		return s.marker.SetLastMaintenanceRun(today)
	}

	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !locked {
		log.Println("maintenance: another process holds the lock, skipping")
		return nil
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			log.Printf("maintenance: failed to release lock: %v", unlockErr)
		}
	}()

	// the winner of the lock race may already have done the work
	incomplete, blurMissing, err = s.outstandingWork()
	if err != nil {
		return err
	}
	if len(incomplete) == 0 && len(blurMissing) == 0 {
		return s.marker.SetLastMaintenanceRun(today)
	}

	log.Printf("maintenance: backfilling %d incomplete matrices, %d missing blurs", len(incomplete), len(blurMissing))

	failures := 0
	for _, assetID := range incomplete {
		stats, genErr := s.generator.GenerateForAsset(assetID, true)
		if genErr != nil {
			log.Printf("maintenance: backfill failed for asset %s: %v", assetID, genErr)
			failures++
			continue
		}
		failures += stats.Failed
		log.Printf("maintenance: asset %s %s", assetID, stats)
	}

	for _, assetID := range blurMissing {
		if blurErr := s.generator.GenerateBlurVariant(assetID); blurErr != nil {
			log.Printf("maintenance: %v", blurErr)
			failures++
		}
	}

	// leave the marker untouched on partial failure so the next check
	// retries the remaining cells instead of waiting for tomorrow
	if failures > 0 {
		log.Printf("maintenance: finished with %d failures, will retry", failures)
		return nil
	}

	log.Println("maintenance: pass complete")
	return s.marker.SetLastMaintenanceRun(today)
}

func (s *MaintenanceScheduler) outstandingWork() (incomplete, blurMissing []string, err error) {
	formats := s.settings.EnabledFormats()
	breakpoints := make([]string, 0, len(s.settings.Breakpoints))
	for name := range s.settings.Breakpoints {
		breakpoints = append(breakpoints, name)
	}
	expected := len(formats) * len(breakpoints)

	incomplete, err = database.AssetsWithIncompleteVariants(s.db, formats, breakpoints, expected)
	if err != nil {
		return nil, nil, err
	}
	blurMissing, err = database.SensitiveAssetsMissingBlur(s.db)
	if err != nil {
		return nil, nil, err
	}
	return incomplete, blurMissing, nil
}
