package toolbar

import (
	"github.com/zjrosen/inkwell/internal/editor"
)

// fakeEditor records every chain it hands out.
type fakeEditor struct {
	editable bool
	active   map[string]bool
	attrs    map[string]string
	sel      editor.Selection
	rev      uint64
	result   bool
	chains   []*fakeChain
}

func newFakeEditor() *fakeEditor {
	return &fakeEditor{
		editable: true,
		active:   map[string]bool{},
		attrs:    map[string]string{},
		sel:      editor.Range(editor.Pos{Col: 0}, editor.Pos{Col: 5}),
		result:   true,
	}
}

func (f *fakeEditor) IsEditable() bool          { return f.editable }
func (f *fakeEditor) IsActive(name string) bool { return f.active[name] }
func (f *fakeEditor) MarkAttr(mark editor.MarkType, attr string) string {
	return f.attrs[string(mark)+"."+attr]
}
func (f *fakeEditor) Selection() editor.Selection { return f.sel }
func (f *fakeEditor) Revision() uint64            { return f.rev }

func (f *fakeEditor) Chain() editor.Chain {
	c := &fakeChain{ed: f}
	f.chains = append(f.chains, c)
	return c
}

type fakeChain struct {
	ed    *fakeEditor
	calls []string
	runs  int
}

func (c *fakeChain) add(call string) editor.Chain {
	c.calls = append(c.calls, call)
	return c
}

func (c *fakeChain) Focus() editor.Chain { return c.add("focus") }
func (c *fakeChain) ToggleMark(mark editor.MarkType) editor.Chain {
	return c.add("toggle:" + string(mark))
}
func (c *fakeChain) SetColor(color string) editor.Chain     { return c.add("setColor:" + color) }
func (c *fakeChain) UnsetColor() editor.Chain               { return c.add("unsetColor") }
func (c *fakeChain) SetHighlight(color string) editor.Chain { return c.add("setHighlight:" + color) }
func (c *fakeChain) UnsetHighlight() editor.Chain           { return c.add("unsetHighlight") }
func (c *fakeChain) ExtendMarkRange(mark editor.MarkType) editor.Chain {
	return c.add("extend:" + string(mark))
}
func (c *fakeChain) SetLink(href string) editor.Chain { return c.add("setLink:" + href) }
func (c *fakeChain) UnsetLink() editor.Chain          { return c.add("unsetLink") }

func (c *fakeChain) Run() bool {
	c.runs++
	c.ed.rev++
	return c.ed.result
}
