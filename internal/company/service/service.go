// Package service implements the company access-control use cases on top of
// the store and notify collaborators. Every write use case runs its
// read-check-write sequence inside a single store transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/store"
)

var tracer = otel.Tracer("github.com/LofoWalker/upkeep/internal/company/service")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on the span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// isRejection reports whether err is a business rule rejection rather than
// an infrastructure failure.
func isRejection(err error) bool {
	for _, kind := range []error{
		domain.ErrNotFound,
		domain.ErrUnauthorized,
		domain.ErrConflict,
		domain.ErrExpired,
		domain.ErrInvalidState,
		domain.ErrLastOwner,
		domain.ErrValidation,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// logFailure logs rejections at warn and everything else at error.
func logFailure(log *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.Any("error", err))

	if isRejection(err) {
		log.Warn(msg, args...)
		return
	}
	log.Error(msg, args...)
}

// actorMembership resolves the acting customer's membership in companyID.
// A missing membership yields domain.ErrNotAMember.
func actorMembership(
	ctx context.Context,
	memberships store.Memberships,
	actorID domain.CustomerID,
	companyID domain.CompanyID,
) (*domain.Membership, error) {
	m, err := memberships.FindByCustomerAndCompany(ctx, actorID, companyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotAMember
	}
	if err != nil {
		return nil, fmt.Errorf("find actor membership: %w", err)
	}
	return m, nil
}
