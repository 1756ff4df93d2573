package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/metrics"
	"github.com/allisson/vmadmin/internal/webhook/domain"
	"github.com/allisson/vmadmin/internal/webhook/service"
)

// DispatcherConfig sizes the delivery worker pool.
type DispatcherConfig struct {
	Workers   int
	QueueSize int
}

type job struct {
	eventType string
	eventData map[string]any
}

type dispatcher struct {
	configUseCase ConfigUseCase
	products      ActiveProductLister
	sender        service.Sender
	renderer      service.BodyRenderer
	metrics       metrics.DeliveryMetrics
	logger        *slog.Logger
	workers       int
	queue         chan job
	now           func() time.Time
}

func (d *dispatcher) Notify(ctx context.Context, eventType string, eventData map[string]any) {
	select {
	case d.queue <- job{eventType: eventType, eventData: eventData}:
	default:
		d.metrics.RecordDelivery(ctx, eventType, metrics.OutcomeDropped)
		d.logger.Warn("webhook queue is full, dropping event", slog.String("event", eventType))
	}
}

func (d *dispatcher) PublishProductEvent(
	ctx context.Context,
	product *catalogDomain.Product,
	action catalogDomain.Action,
) {
	d.Notify(ctx, domain.EventForAction(action), service.FormatProductEvent(product, action))
}

func (d *dispatcher) Deliver(ctx context.Context, eventType string, eventData map[string]any) error {
	cfg, configured, err := d.configUseCase.Load(ctx)
	if err != nil {
		d.metrics.RecordDelivery(ctx, eventType, metrics.OutcomeFailed)
		return err
	}
	if !configured {
		d.metrics.RecordDelivery(ctx, eventType, metrics.OutcomeNotConfigured)
		d.logger.Info("webhook not configured, skipping notification", slog.String("event", eventType))
		return domain.ErrNotConfigured
	}

	products, err := d.products.ListActive(ctx)
	if err != nil {
		d.logger.Error("failed to list active products for webhook",
			slog.String("event", eventType),
			slog.Any("error", err))
		products = nil
	}

	envelope := domain.NewEnvelope(eventType, eventData, service.ProductSnapshots(products), d.now())
	body := d.renderer.Render(cfg.BodyTemplate, envelope)

	status, err := d.sender.Send(ctx, cfg, body)
	if err != nil {
		d.metrics.RecordDelivery(ctx, eventType, metrics.OutcomeFailed)
		d.logger.Error("webhook delivery failed",
			slog.String("event", eventType),
			slog.String("method", cfg.Method),
			slog.Any("error", err))
		return err
	}

	d.metrics.RecordDelivery(ctx, eventType, metrics.OutcomeDelivered)
	level := slog.LevelInfo
	if status >= http.StatusBadRequest {
		level = slog.LevelWarn
	}
	d.logger.Log(ctx, level, "webhook delivered",
		slog.String("event", eventType),
		slog.Int("status_code", status))
	return nil
}

func (d *dispatcher) SendTest(ctx context.Context) error {
	return d.Deliver(ctx, domain.EventWebhookTest, map[string]any{
		"message": "Test webhook from vending machine admin",
		"test":    true,
	})
}

// Run starts the workers and blocks until ctx is done. Events still queued at shutdown
// are discarded.
func (d *dispatcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			d.work(gctx)
			return nil
		})
	}
	return g.Wait()
}

func (d *dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.queue:
			// Deliveries outlive the request that queued them.
			err := d.Deliver(ctx, j.eventType, j.eventData)
			if err != nil && !apperrors.Is(err, domain.ErrNotConfigured) && !apperrors.Is(err, domain.ErrDelivery) {
				d.logger.Error("webhook notification failed",
					slog.String("event", j.eventType),
					slog.Any("error", err))
			}
		}
	}
}

// NewDispatcher creates a Dispatcher. Call Run to start delivering queued events.
func NewDispatcher(
	configUseCase ConfigUseCase,
	products ActiveProductLister,
	sender service.Sender,
	renderer service.BodyRenderer,
	deliveryMetrics metrics.DeliveryMetrics,
	cfg DispatcherConfig,
	logger *slog.Logger,
) Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if deliveryMetrics == nil {
		deliveryMetrics = metrics.NewNoOpDeliveryMetrics()
	}
	return &dispatcher{
		configUseCase: configUseCase,
		products:      products,
		sender:        sender,
		renderer:      renderer,
		metrics:       deliveryMetrics,
		logger:        logger,
		workers:       cfg.Workers,
		queue:         make(chan job, cfg.QueueSize),
		now:           time.Now,
	}
}
