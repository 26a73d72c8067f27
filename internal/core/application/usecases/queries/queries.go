// Package queries contains read operations for retrieving warehouse state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built from a consistent snapshot: every handler loads
// its data inside one transaction and derives values through the domain.
package queries

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"warehouse/internal/core/ports"
)

const tracerName = "warehouse/queries"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// readSnapshot runs fn inside a transaction of a fresh unit of work.
// Reads never write, so the transaction is always rolled back.
func readSnapshot(ctx context.Context, factory ports.UnitOfWorkFactory, fn func(ports.UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
