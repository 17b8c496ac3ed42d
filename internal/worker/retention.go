package worker

import (
	"context"
	"time"

	"github.com/hostelmate/marketplace-api/internal/service/request"
	"github.com/hostelmate/marketplace-api/pkg/logger"
)

// NotificationRetentionWorker periodically drops old entries from the
// service-side notification feed. The feed is already capped by count on
// insert; this worker bounds it by age as well.
type NotificationRetentionWorker struct {
	service  *request.Service
	daysOld  int
	interval time.Duration
	logger   *logger.Logger
}

func NewNotificationRetentionWorker(service *request.Service, daysOld int, interval time.Duration, log *logger.Logger) *NotificationRetentionWorker {
	return &NotificationRetentionWorker{
		service:  service,
		daysOld:  daysOld,
		interval: interval,
		logger:   log,
	}
}

func (w *NotificationRetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := w.service.ClearOldNotifications(ctx, w.daysOld)
			if removed > 0 {
				w.logger.Info("cleared old notifications",
					"removed", removed, "days_old", w.daysOld)
			}
		}
	}
}
