package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/repository"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/service"
)

// reminderLeads are the hours-before-start marks at which a reminder goes
// out. The 2h reminder is flagged urgent by the notification layer.
var reminderLeads = []int{24, 2}

// ReminderWorker periodically scans for appointments entering a reminder
// window and dispatches reminder emails. A redis SETNX claim per
// appointment and lead keeps the send at-most-once across instances.
type ReminderWorker struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	notifier        service.NotificationService
	redisClient     *redis.Client
	interval        time.Duration
	window          time.Duration
}

func NewReminderWorker(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	notifier service.NotificationService,
	redisClient *redis.Client,
	interval time.Duration,
	window time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		redisClient:     redisClient,
		interval:        interval,
		window:          window,
	}
}

// Run blocks until ctx is cancelled, scanning once per interval. The first
// scan happens immediately.
func (w *ReminderWorker) Run(ctx context.Context) {
	w.log.Infof("Reminder worker started (interval %s, window %s)", w.interval, w.window)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single scan over all reminder leads.
func (w *ReminderWorker) RunOnce(ctx context.Context) {
	now := time.Now()
	for _, hours := range reminderLeads {
		if err := w.scanLead(ctx, now, hours); err != nil {
			w.log.Warnf("Failed to process %dh reminders: %+v", hours, err)
		}
	}
}

func (w *ReminderWorker) scanLead(ctx context.Context, now time.Time, hours int) error {
	from := now.Add(time.Duration(hours) * time.Hour)
	to := from.Add(w.window)

	appointments, err := w.appointmentRepo.FindStartingBetween(w.db.WithContext(ctx), from, to)
	if err != nil {
		return fmt.Errorf("error scanning appointments: %w", err)
	}
	if len(appointments) == 0 {
		return nil
	}

	due := make([]entity.Appointment, 0, len(appointments))
	for i := range appointments {
		claimed, err := w.claim(ctx, appointments[i].ID, hours)
		if err != nil {
			w.log.Warnf("Failed to claim reminder %s/%dh: %+v", appointments[i].ID, hours, err)
			continue
		}
		if claimed {
			due = append(due, appointments[i])
		}
	}
	if len(due) == 0 {
		return nil
	}

	result := w.notifier.SendBatchReminders(ctx, due, hours)
	w.log.Infof("Reminder batch (%dh): %d sent, %d failed", hours, result.Successful, result.Failed)

	// Release claims for failed sends so the next tick retries them while
	// they are still inside the window.
	for _, entry := range result.Errors {
		id, _, found := strings.Cut(entry, ": ")
		if found {
			w.release(ctx, id, hours)
		}
	}
	return nil
}

// claim marks the reminder as taken. Without redis every appointment is
// claimed, which is correct for a single worker instance.
func (w *ReminderWorker) claim(ctx context.Context, appointmentID string, hours int) (bool, error) {
	if w.redisClient == nil {
		return true, nil
	}
	key := reminderKey(appointmentID, hours)
	ttl := time.Duration(hours)*time.Hour + w.window
	return w.redisClient.SetNX(ctx, key, time.Now().Format(time.RFC3339), ttl).Result()
}

func (w *ReminderWorker) release(ctx context.Context, appointmentID string, hours int) {
	if w.redisClient == nil {
		return
	}
	if err := w.redisClient.Del(ctx, reminderKey(appointmentID, hours)).Err(); err != nil {
		w.log.Warnf("Failed to release reminder claim %s/%dh: %+v", appointmentID, hours, err)
	}
}

func reminderKey(appointmentID string, hours int) string {
	return fmt.Sprintf("reminder:%s:%d", appointmentID, hours)
}
