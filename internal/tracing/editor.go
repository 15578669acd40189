package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/inkwell/internal/editor"
)

// Editor decorates an editor handle so that every chain Run emits one span
// listing the queued commands.
type Editor struct {
	editor.Editor
	ctx    context.Context
	tracer trace.Tracer
}

// WrapEditor returns ed wrapped for tracing, or ed itself when ed or tracer
// is nil.
func WrapEditor(ctx context.Context, ed editor.Editor, tracer trace.Tracer) editor.Editor {
	if ed == nil || tracer == nil {
		return ed
	}
	return &Editor{Editor: ed, ctx: ctx, tracer: tracer}
}

// Unwrap returns the decorated handle.
func (e *Editor) Unwrap() editor.Editor {
	return e.Editor
}

// Chain implements editor.Editor.
func (e *Editor) Chain() editor.Chain {
	return &chain{inner: e.Editor.Chain(), ed: e}
}

type chain struct {
	inner    editor.Chain
	ed       *Editor
	commands []string
}

func (c *chain) queue(name string, next editor.Chain) editor.Chain {
	c.commands = append(c.commands, name)
	c.inner = next
	return c
}

func (c *chain) Focus() editor.Chain { return c.queue("focus", c.inner.Focus()) }

func (c *chain) ToggleMark(m editor.MarkType) editor.Chain {
	return c.queue(fmt.Sprintf("toggleMark(%s)", m), c.inner.ToggleMark(m))
}

func (c *chain) SetColor(color string) editor.Chain {
	return c.queue(fmt.Sprintf("setColor(%s)", color), c.inner.SetColor(color))
}

func (c *chain) UnsetColor() editor.Chain { return c.queue("unsetColor", c.inner.UnsetColor()) }

func (c *chain) SetHighlight(color string) editor.Chain {
	return c.queue(fmt.Sprintf("setHighlight(%s)", color), c.inner.SetHighlight(color))
}

func (c *chain) UnsetHighlight() editor.Chain {
	return c.queue("unsetHighlight", c.inner.UnsetHighlight())
}

func (c *chain) ExtendMarkRange(m editor.MarkType) editor.Chain {
	return c.queue(fmt.Sprintf("extendMarkRange(%s)", m), c.inner.ExtendMarkRange(m))
}

func (c *chain) SetLink(href string) editor.Chain {
	return c.queue(fmt.Sprintf("setLink(%s)", href), c.inner.SetLink(href))
}

func (c *chain) UnsetLink() editor.Chain { return c.queue("unsetLink", c.inner.UnsetLink()) }

// Run applies the chain inside a span.
func (c *chain) Run() bool {
	_, span := c.ed.tracer.Start(c.ed.ctx, SpanChainRun, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	for _, cmd := range c.commands {
		span.AddEvent(EventCommandQueued, trace.WithAttributes(attribute.String("command", cmd)))
	}
	span.SetAttributes(
		attribute.StringSlice(AttrChainCommands, c.commands),
		attribute.Int(AttrChainLength, len(c.commands)),
	)
	span.SetAttributes(selectionAttrs(c.ed.Selection())...)

	ok := c.inner.Run()

	span.SetAttributes(
		attribute.Bool(AttrChainApplied, ok),
		attribute.Int64(AttrRevision, int64(c.ed.Revision())), // #nosec G115 -- revisions stay far below MaxInt64
	)
	if ok {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Unset, "chain not applied")
	}
	return ok
}

func selectionAttrs(sel editor.Selection) []attribute.KeyValue {
	from, to := sel.From(), sel.To()
	return []attribute.KeyValue{
		attribute.String(AttrSelectionKind, sel.Kind.String()),
		attribute.String(AttrSelectionFrom, fmt.Sprintf("%d:%d", from.Block, from.Col)),
		attribute.String(AttrSelectionTo, fmt.Sprintf("%d:%d", to.Block, to.Col)),
	}
}
