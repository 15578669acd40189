package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/testutil"
)

func newRecorderProvider(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func attrValue(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestWrapEditor_NilPassThrough(t *testing.T) {
	require.Nil(t, WrapEditor(context.Background(), nil, nil))

	eng := testutil.NewDoc("T").Para("x").Engine()
	defer eng.Close()
	require.Same(t, eng, WrapEditor(context.Background(), eng, nil))
}

func TestWrapEditor_OneSpanPerRun(t *testing.T) {
	sr, tp := newRecorderProvider(t)
	eng := testutil.NewDoc("T").Para("hello world").Engine()
	defer eng.Close()
	eng.SetSelection(editor.Range(editor.Pos{Col: 0}, editor.Pos{Col: 5}))

	ed := WrapEditor(context.Background(), eng, tp.Tracer("test"))
	require.True(t, ed.Chain().Focus().ToggleMark(editor.MarkBold).Run())
	require.True(t, ed.IsActive(string(editor.MarkBold)), "wrapped handle forwards queries")

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	require.Equal(t, SpanChainRun, span.Name())
	require.Equal(t, codes.Ok, span.Status().Code)

	cmds, ok := attrValue(span, AttrChainCommands)
	require.True(t, ok)
	require.Equal(t, []string{"focus", "toggleMark(bold)"}, cmds.AsStringSlice())

	applied, _ := attrValue(span, AttrChainApplied)
	require.True(t, applied.AsBool())
	rev, _ := attrValue(span, AttrRevision)
	require.Equal(t, int64(eng.Revision()), rev.AsInt64())
	kind, _ := attrValue(span, AttrSelectionKind)
	require.Equal(t, "text", kind.AsString())
	from, _ := attrValue(span, AttrSelectionFrom)
	require.Equal(t, "0:0", from.AsString())
	require.Len(t, span.Events(), 2)
}

func TestWrapEditor_FailedRunStillTraced(t *testing.T) {
	sr, tp := newRecorderProvider(t)
	eng := testutil.NewDoc("T").Para("hello").Engine()
	defer eng.Close()
	eng.SetEditable(false)

	ed := WrapEditor(context.Background(), eng, tp.Tracer("test"))
	require.False(t, ed.Chain().ToggleMark(editor.MarkItalic).Run())

	spans := sr.Ended()
	require.Len(t, spans, 1)
	applied, _ := attrValue(spans[0], AttrChainApplied)
	require.False(t, applied.AsBool())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestWrapEditor_Unwrap(t *testing.T) {
	_, tp := newRecorderProvider(t)
	eng := testutil.NewDoc("T").Engine()
	defer eng.Close()

	ed := WrapEditor(context.Background(), eng, tp.Tracer("test"))
	w, ok := ed.(*Editor)
	require.True(t, ok)
	require.Same(t, eng, w.Unwrap())
}

func TestRecorder_SkipsSelectionOnlyByDefault(t *testing.T) {
	sr, tp := newRecorderProvider(t)
	r := NewRecorder(tp.Tracer("test"), false)

	require.False(t, r.Record(context.Background(), editor.Transaction{Revision: 3, Steps: []string{"select"}}))
	require.True(t, r.Record(context.Background(), editor.Transaction{Revision: 4, DocChanged: true, Steps: []string{"insertText"}}))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, SpanTransaction, spans[0].Name())
	steps, _ := attrValue(spans[0], AttrSteps)
	require.Equal(t, []string{"insertText"}, steps.AsStringSlice())
}

func TestRecorder_IncludeSelection(t *testing.T) {
	sr, tp := newRecorderProvider(t)
	r := NewRecorder(tp.Tracer("test"), true)

	require.True(t, r.Record(context.Background(), editor.Transaction{Revision: 1, Steps: []string{"select"}}))
	require.Len(t, sr.Ended(), 1)

	var nilRecorder *Recorder
	require.False(t, nilRecorder.Record(context.Background(), editor.Transaction{DocChanged: true}))
}

type fakeSaver struct {
	res sqlite.SaveResult
	err error
}

func (f fakeSaver) Save(context.Context, richtext.Document) (sqlite.SaveResult, error) {
	return f.res, f.err
}

func TestWrapSaver(t *testing.T) {
	sr, tp := newRecorderProvider(t)

	ok := WrapSaver(fakeSaver{res: sqlite.SaveResult{ID: "d1", Revision: 7, Inserted: 3}}, tp.Tracer("test"))
	res, err := ok.Save(context.Background(), richtext.Document{Title: "x"})
	require.NoError(t, err)
	require.Equal(t, int64(7), res.Revision)

	bad := WrapSaver(fakeSaver{err: errors.New("disk full")}, tp.Tracer("test"))
	_, err = bad.Save(context.Background(), richtext.Document{Title: "x"})
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, SpanSave, spans[0].Name())
	rev, _ := attrValue(spans[0], AttrRevision)
	require.Equal(t, int64(7), rev.AsInt64())
	require.Equal(t, codes.Error, spans[1].Status().Code)

	require.Nil(t, WrapSaver(nil, tp.Tracer("test")))
}
