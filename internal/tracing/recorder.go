package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// Recorder turns engine transactions into spans.
type Recorder struct {
	tracer           trace.Tracer
	includeSelection bool
}

// NewRecorder records document transactions, plus selection-only ones when
// includeSelection is set.
func NewRecorder(tracer trace.Tracer, includeSelection bool) *Recorder {
	return &Recorder{tracer: tracer, includeSelection: includeSelection}
}

// Record emits a span for tx. It reports whether one was emitted.
func (r *Recorder) Record(ctx context.Context, tx editor.Transaction) bool {
	if r == nil || r.tracer == nil {
		return false
	}
	if !tx.DocChanged && !r.includeSelection {
		return false
	}
	_, span := r.tracer.Start(ctx, SpanTransaction)
	span.SetAttributes(
		attribute.Int64(AttrRevision, int64(tx.Revision)), // #nosec G115 -- revisions stay far below MaxInt64
		attribute.Bool(AttrDocChanged, tx.DocChanged),
		attribute.StringSlice(AttrSteps, tx.Steps),
	)
	span.SetAttributes(selectionAttrs(tx.Selection)...)
	span.End()
	return true
}

// Saver persists documents.
type Saver interface {
	Save(ctx context.Context, doc richtext.Document) (sqlite.SaveResult, error)
}

type tracedSaver struct {
	Saver
	tracer trace.Tracer
}

// WrapSaver returns s wrapped so every Save emits a span.
func WrapSaver(s Saver, tracer trace.Tracer) Saver {
	if s == nil || tracer == nil {
		return s
	}
	return &tracedSaver{Saver: s, tracer: tracer}
}

func (s *tracedSaver) Save(ctx context.Context, doc richtext.Document) (sqlite.SaveResult, error) {
	ctx, span := s.tracer.Start(ctx, SpanSave, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	res, err := s.Saver.Save(ctx, doc)
	span.SetAttributes(attribute.String(AttrDocID, res.ID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(
		attribute.Int64(AttrRevision, res.Revision),
		attribute.Int(AttrInserted, res.Inserted),
		attribute.Int(AttrDeleted, res.Deleted),
	)
	span.SetStatus(codes.Ok, "")
	return res, nil
}
