// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/forumhub/forumhub/internal/observability"
	"github.com/forumhub/forumhub/pkg/errutil"
)

var tracer = otel.Tracer("forumhub/usecase")

// Payload is a decoded request body.
type Payload = map[string]any

// Option configures a use case during construction.
type Option func(*base)

// WithLogger sets the logger used for rule failures and successes.
// A nil logger is rejected by the constructor.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

type base struct {
	logger *slog.Logger
}

func newBase(opts []Option) (base, error) {
	b := base{logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	if b.logger == nil {
		return base{}, oops.Errorf("logger is required")
	}
	return b, nil
}

// start opens a span for operation. The returned func must be deferred with
// the operation's final error.
func (b base) start(ctx context.Context, operation string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "usecase."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, func(err error) {
		observability.RecordAuthOperation(operation, err)
		switch {
		case err == nil:
			b.logger.DebugContext(ctx, operation+" succeeded")
		case errutil.IsClientError(err):
			b.logger.WarnContext(ctx, operation+" rejected",
				"code", errutil.CodeOf(err),
				"kind", errutil.KindOf(err),
			)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

type fieldProblem int

const (
	fieldOK fieldProblem = iota
	fieldMissing
	fieldWrongType
)

// readStrings checks that every key is present, then that every value is a
// string. All presence checks run before any type check.
func readStrings(payload Payload, keys ...string) ([]string, string, fieldProblem) {
	for _, key := range keys {
		if v, ok := payload[key]; !ok || v == nil {
			return nil, key, fieldMissing
		}
	}
	values := make([]string, len(keys))
	for i, key := range keys {
		s, ok := payload[key].(string)
		if !ok {
			return nil, key, fieldWrongType
		}
		values[i] = s
	}
	return values, "", fieldOK
}

func validationError(code, key, msg string) error {
	return oops.In(errutil.KindValidation).
		Code(code).
		With("property", key).
		Errorf("%s", msg)
}
