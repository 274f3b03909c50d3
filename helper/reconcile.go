package helper

import (
	"log"

	"seminar_manager/database"
	"seminar_manager/model"

	"github.com/robfig/cron/v3"
)

var reconcileScheduler *cron.Cron

// StartReconcileScheduler repairs drift between seminars.registered_count and
// the actual registration rows once an hour. The counter is a denormalized
// convenience; the registration table is the source of truth.
func StartReconcileScheduler() {
	reconcileScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := reconcileScheduler.AddFunc("0 * * * *", ReconcileRegisteredCounts)
	if err != nil {
		log.Printf("failed to start reconcile scheduler: %v", err)
		return
	}

	reconcileScheduler.Start()
	log.Println("Registered-count reconcile scheduler started (hourly)")
}

func StopReconcileScheduler() {
	if reconcileScheduler != nil {
		reconcileScheduler.Stop()
	}
}

func ReconcileRegisteredCounts() {
	if database.DB == nil {
		return
	}

	result := database.DB.Model(&model.Seminar{}).
		Where("registered_count <> (?)",
			database.DB.Model(&model.Registration{}).
				Select("count(*)").
				Where("registrations.seminar_id = seminars.id")).
		Update("registered_count",
			database.DB.Model(&model.Registration{}).
				Select("count(*)").
				Where("registrations.seminar_id = seminars.id"))

	if result.Error != nil {
		log.Printf("registered-count reconcile failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Reconciled registered_count on %d seminars", result.RowsAffected)
	}
}
