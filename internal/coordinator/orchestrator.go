package coordinator

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/telemetry"
)

const tracerName = "github.com/jcmexdev/storefront-lookup/coordinator"

// Step represents a single unit of work in a lookup. Steps run in order and
// each one may rely on what the previous steps stored in Progress.
type Step interface {
	Name() string
	Execute(ctx context.Context, p *Progress) error
}

// Progress is the state a lookup accumulates while its steps run.
type Progress struct {
	Phone           string
	CustomerID      entity.ID
	Orders          []entity.Order
	Categories      []string
	Recommendations []entity.Recommendation
}

// Result is the outcome of a successful lookup.
type Result struct {
	LookupID            string
	CustomerID          entity.ID
	Orders              []entity.Order
	PurchasedCategories []string
	Recommendations     []entity.Recommendation
}

// Orchestrator sequences the customer search and the order fetch against a
// single Forwarders target.
type Orchestrator struct {
	forwarders Forwarders
	tracer     trace.Tracer
}

func NewOrchestrator(forwarders Forwarders) *Orchestrator {
	return &Orchestrator{
		forwarders: forwarders,
		tracer:     otel.Tracer(tracerName),
	}
}

// Lookup resolves the first customer matching phone and returns their orders
// with the placeholder recommendations. The first failing step aborts the
// lookup and its error is returned unchanged.
func (o *Orchestrator) Lookup(ctx context.Context, phone string) (*Result, error) {
	lookupID := uuid.NewString()

	ctx, span := o.tracer.Start(ctx, "order.lookup", trace.WithAttributes(attribute.String("lookup.id", lookupID)))
	defer span.End()

	progress := &Progress{Phone: NormalizePhone(phone)}
	steps := []Step{
		NewFindCustomerStep(o.forwarders),
		NewFetchOrdersStep(o.forwarders),
		RecommendStep{},
	}

	for _, step := range steps {
		slog.DebugContext(ctx, "executing lookup step", "lookup_id", lookupID, "step", step.Name())
		if err := step.Execute(ctx, progress); err != nil {
			slog.WarnContext(ctx, "lookup step failed", "lookup_id", lookupID, "step", step.Name(), "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, step.Name())
			telemetry.ObserveLookup("failure")
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.String("customer.id", progress.CustomerID.String()),
		attribute.Int("orders.count", len(progress.Orders)),
	)
	telemetry.ObserveLookup("success")

	return &Result{
		LookupID:            lookupID,
		CustomerID:          progress.CustomerID,
		Orders:              progress.Orders,
		PurchasedCategories: progress.Categories,
		Recommendations:     progress.Recommendations,
	}, nil
}
