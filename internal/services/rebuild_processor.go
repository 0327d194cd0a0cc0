package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finhub/internal/amqp"
	applog "finhub/internal/log"
	"finhub/internal/reports"
	"finhub/internal/storage"
)

// RebuildProcessorConfig holds configuration for the rebuild processor
type RebuildProcessorConfig struct {
	// Interval is how often a scheduled rebuild runs (default: 15m)
	Interval time.Duration

	// ArchiveOnMonthChange archives processed files into snapshots/ when a
	// rebuild first runs in a new month
	ArchiveOnMonthChange bool
}

// DefaultRebuildProcessorConfig returns sensible defaults
func DefaultRebuildProcessorConfig() RebuildProcessorConfig {
	return RebuildProcessorConfig{
		Interval:             15 * time.Minute,
		ArchiveOnMonthChange: true,
	}
}

// RebuildProcessor regenerates dashboard data and reports, on a schedule and
// on demand. It caches the latest result for the API server.
type RebuildProcessor struct {
	analysis *AnalysisService
	store    *storage.Store
	config   RebuildProcessorConfig
	logger   *applog.Logger

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Latest result
	dataMu    sync.RWMutex
	latest    *DashboardData
	lastMonth string
}

// NewRebuildProcessor creates a new rebuild processor
func NewRebuildProcessor(analysis *AnalysisService, store *storage.Store, config RebuildProcessorConfig, logger *applog.Logger) *RebuildProcessor {
	return &RebuildProcessor{
		analysis: analysis,
		store:    store,
		config:   config,
		logger:   logger.WithComponent(applog.ComponentWorker),
	}
}

// Start begins the scheduled rebuild loop. Returns an error if already running.
func (p *RebuildProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("rebuild processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	p.logger.InfoContext(ctx, "rebuild processor started",
		"interval", p.config.Interval)

	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *RebuildProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		p.logger.InfoContext(ctx, "rebuild processor stopped gracefully")
	case <-ctx.Done():
		p.logger.WarnContext(ctx, "rebuild processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running
func (p *RebuildProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// runLoop is the scheduled rebuild loop
func (p *RebuildProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	// Rebuild immediately on startup
	if err := p.Rebuild(ctx, "startup"); err != nil {
		p.logger.ErrorContext(ctx, "startup rebuild failed", applog.FieldError, err)
	}

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Rebuild(ctx, "scheduled"); err != nil {
				p.logger.ErrorContext(ctx, "scheduled rebuild failed", applog.FieldError, err)
			}
		}
	}
}

// HandleRebuildMessage adapts Rebuild to the AMQP consumer handler shape.
func (p *RebuildProcessor) HandleRebuildMessage(msg *amqp.RebuildRequest) error {
	return p.Rebuild(context.Background(), msg.Reason)
}

// Rebuild runs a full analysis pass, persists the dashboard and reports, and
// caches the result.
func (p *RebuildProcessor) Rebuild(ctx context.Context, reason string) error {
	started := time.Now()
	asOf := time.Now()

	data, err := p.analysis.Analyze(ctx, asOf)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if err := p.store.SaveDashboardData(ctx, data); err != nil {
		return err
	}

	if err := p.saveReports(ctx, data); err != nil {
		return err
	}

	month := asOf.Format("2006-01")
	p.dataMu.Lock()
	monthChanged := p.lastMonth != "" && p.lastMonth != month
	p.latest = data
	p.lastMonth = month
	p.dataMu.Unlock()

	if monthChanged && p.config.ArchiveOnMonthChange {
		if err := p.store.ArchiveMonthly(ctx, month); err != nil {
			p.logger.ErrorContext(ctx, "monthly archive failed",
				applog.FieldMonth, month, applog.FieldError, err)
		}
	}

	p.logger.InfoContext(ctx, "dashboard rebuilt",
		applog.FieldReason, reason,
		applog.FieldOperation, applog.OpRebuild,
		applog.FieldDuration, time.Since(started).Milliseconds())

	return nil
}

func (p *RebuildProcessor) saveReports(ctx context.Context, data *DashboardData) error {
	named := []struct {
		name    string
		content []byte
	}{
		{"health_report.md", reports.RenderHealthReport(data.HealthScore, data.EmergencyFund, data.Generated)},
		{"budget_report.md", reports.RenderBudgetReport(data.BudgetVsActual, data.Generated)},
		{"payoff_report.md", reports.RenderPayoffReport(data.Payoff, data.Generated)},
	}
	for _, r := range named {
		if err := p.store.SaveReport(ctx, r.name, r.content); err != nil {
			return err
		}
	}
	return nil
}

// Latest returns the most recent rebuild result, or nil before the first one.
func (p *RebuildProcessor) Latest() *DashboardData {
	p.dataMu.RLock()
	defer p.dataMu.RUnlock()
	return p.latest
}

// Dashboard returns the cached dashboard, rebuilding first when none exists
// yet. It satisfies the API server's data source.
func (p *RebuildProcessor) Dashboard(ctx context.Context) (*DashboardData, error) {
	if d := p.Latest(); d != nil {
		return d, nil
	}
	if err := p.Rebuild(ctx, "on-demand"); err != nil {
		return nil, err
	}
	return p.Latest(), nil
}
