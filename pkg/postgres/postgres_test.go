package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(t *testing.T) (*queryTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return newQueryTracer(provider.Tracer("test")), recorder
}

func TestQueryTracer_RecordsStatement(t *testing.T) {
	qt, recorder := newRecordingTracer(t)

	ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
		SQL: "\n\t\tselect id, status\n\t\tFROM assignments WHERE id = $1 FOR UPDATE",
	})
	qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "postgres SELECT", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "postgresql", attrs["db.system"])
	assert.Equal(t, "select id, status FROM assignments WHERE id = $1 FOR UPDATE", attrs["db.statement"])
}

func TestQueryTracer_MarksFailedQuery(t *testing.T) {
	qt, recorder := newRecordingTracer(t)

	ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "UPDATE reporters SET verified_reports = 1"})
	qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("lock timeout")})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "postgres UPDATE", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "lock timeout", spans[0].Status().Description)
}

func TestOperationNameAndTruncate(t *testing.T) {
	assert.Equal(t, "QUERY", operationName("   "))
	assert.Equal(t, "WITH", operationName("with x as (select 1) select * from x"))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, strings.Repeat("a", 5), truncate("aaaaa", 10))
}
