package payments

import (
	"context"
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/app/contracts"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// leaderLockKey keeps the expiry sweep to a single instance at a time.
const leaderLockKey = "payment-expiry:leader"

// ExpiryWorker periodically expires overdue pending payments and order
// payments.
type ExpiryWorker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	payments contracts.PaymentUsecase
	orders   contracts.OrderUsecase
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewExpiryWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	paymentUsecase contracts.PaymentUsecase,
	orderUsecase contracts.OrderUsecase,
) *ExpiryWorker {
	return &ExpiryWorker{
		log:      log,
		cfg:      cfg,
		locker:   lockerSvc,
		payments: paymentUsecase,
		orders:   orderUsecase,
	}
}

// Start schedules the periodic sweep.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Worker.ExpirySchedule
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("payments.worker: invalid cron spec; falling back to @every 5m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 5m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight sweeps and waits for running jobs to finish.
func (w *ExpiryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *ExpiryWorker) runOnce(ctx context.Context) {
	ttl := w.cfg.Worker.LockTTL
	acquired, token, err := w.locker.TryLock(ctx, leaderLockKey, ttl)
	if err != nil {
		w.log.Warn("payments.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("payments.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, leaderLockKey, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, leaderLockKey, token, ttl); err != nil {
					w.log.Warn("payments.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	batchSize := w.cfg.Worker.ExpiryBatchSize

	expired, err := w.payments.ExpireOverduePayments(ctx, batchSize)
	if err != nil {
		w.log.Warn("payments.worker: booking payment sweep failed", zap.Error(err))
	} else if expired > 0 {
		w.log.Info("payments.worker: expired overdue booking payments", zap.Int("count", expired))
	}

	expiredOrders, err := w.orders.ExpireOverdueOrders(ctx, batchSize)
	if err != nil {
		w.log.Warn("payments.worker: order payment sweep failed", zap.Error(err))
	} else if expiredOrders > 0 {
		w.log.Info("payments.worker: expired overdue order payments", zap.Int("count", expiredOrders))
	}
}
