package jobs

import (
	"context"
	"time"

	"go-storefront/internal/config"
	"go-storefront/internal/features/cart"
	"go-storefront/internal/warehouse"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

// Scheduler owns the background cron jobs: purging stale carts and mirroring
// orders into the warehouse.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	carts    cart.CartService
	exporter *warehouse.Exporter
	logger   *zap.Logger
}

func NewScheduler(cfg *config.Config, carts cart.CartService, exporter *warehouse.Exporter, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		carts:    carts,
		exporter: exporter,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CartPurgeSpec, s.purgeCarts); err != nil {
		return err
	}

	if s.exporter.Enabled() {
		if _, err := s.cron.AddFunc(s.cfg.WarehouseSpec, s.exportOrders); err != nil {
			return err
		}
	} else {
		s.logger.Info("warehouse export disabled, no DSN configured")
	}

	s.cron.Start()
	s.logger.Info("job scheduler started",
		zap.String("cart_purge", s.cfg.CartPurgeSpec),
		zap.String("warehouse_export", s.cfg.WarehouseSpec))
	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purgeCarts() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.carts.PurgeStale(ctx, s.cfg.CartTTL)
	if err != nil {
		s.logger.Error("cart purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("purged stale carts", zap.Int64("count", removed))
	}
}

func (s *Scheduler) exportOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	// Export a window slightly wider than a day so a slow run cannot leave
	// gaps between consecutive exports.
	if _, err := s.exporter.ExportRecent(ctx, 26*time.Hour); err != nil {
		s.logger.Error("warehouse export failed", zap.Error(err))
	}
}
