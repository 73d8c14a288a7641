package compose

import (
	"fmt"

	"github.com/gogpu/compose/surface"
)

// Container is a widget holding an ordered list of children.
type Container interface {
	Widget

	// Children returns the children in insertion order.
	Children() []Widget

	add(w Widget)
}

// Builder is the construction scope of one build. While a container is
// open, every widget constructed with the builder is appended to it as its
// last child.
//
// A Builder belongs to a single build and must not be shared between
// goroutines; create one per build with Engine.NewBuilder or NewBuilder.
type Builder struct {
	cfg   Config
	stack []Container
}

// NewBuilder returns a builder using the defaults of DefaultConfig.
func NewBuilder() *Builder {
	return newBuilder(DefaultConfig())
}

func newBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Open makes c the innermost open container.
func (b *Builder) Open(c Container) {
	b.stack = append(b.stack, c)
}

// Close ends the scope of c. Closing anything but the innermost open
// container returns a *ScopeError wrapping ErrStackImbalance; the scopes
// above c are discarded so the builder stays usable for error reporting.
func (b *Builder) Close(c Container) error {
	n := len(b.stack)
	if n > 0 && b.stack[n-1] == c {
		b.stack = b.stack[:n-1]
		return nil
	}

	err := &ScopeError{Want: PathOf(c)}
	if n > 0 {
		err.Got = PathOf(b.stack[n-1])
	}
	for i := n - 1; i >= 0; i-- {
		if b.stack[i] == c {
			b.stack = b.stack[:i]
			break
		}
	}
	return err
}

// Within opens c, runs fn and closes c on every exit path, including
// errors and panics.
func (b *Builder) Within(c Container, fn func() error) (err error) {
	b.Open(c)
	defer func() {
		if cerr := b.Close(c); err == nil {
			err = cerr
		}
	}()
	return fn()
}

// Depth returns the number of open containers.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Current returns the innermost open container, or nil.
func (b *Builder) Current() Container {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// Shadow returns a copy of the configured default shadow.
func (b *Builder) Shadow() *surface.Shadow {
	sh := b.cfg.Shadow
	return &sh
}

// attach applies the configured defaults to a new widget and appends it
// to the innermost open container. A nil builder leaves w detached.
func (b *Builder) attach(w Widget) {
	if b == nil {
		return
	}
	p := w.base()
	p.paddingX, p.paddingY = b.cfg.Padding, b.cfg.Padding
	p.marginX, p.marginY = b.cfg.Margin, b.cfg.Margin
	if c := b.Current(); c != nil {
		c.add(w)
	}
}

// separator returns the default separator for new containers.
func (b *Builder) separator() int {
	if b == nil {
		return 0
	}
	return b.cfg.Separator
}

// adopt appends child to list and links it to parent. A child that already
// has a parent, or whose adoption would create a cycle, is not added; the
// error is recorded on parent and reported when its tree is rendered.
func adopt(parent Container, list *[]Widget, child Widget) {
	if child == nil {
		return
	}
	p := child.base()
	pp := parent.base()
	fail := func(err error) {
		if pp.err == nil {
			pp.err = err
		}
	}
	if p.parent != nil {
		fail(fmt.Errorf("%w: %s is already a child of %s", ErrInvalidConfiguration, p.kind, PathOf(p.parent)))
		return
	}
	for cur := Widget(parent); cur != nil; cur = cur.base().parent {
		if cur == child {
			fail(fmt.Errorf("%w: adding %s creates a cycle", ErrInvalidConfiguration, p.kind))
			return
		}
	}
	p.parent = parent
	p.index = len(*list)
	*list = append(*list, child)
}
