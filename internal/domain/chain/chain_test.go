package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueHandler is a comparable handler implemented on a value type
type valueHandler struct {
	name string
}

func (h valueHandler) Identity() string        { return h.name }
func (h valueHandler) Test(int) bool           { return true }
func (h valueHandler) Act(int) Outcome[string] { return Resolved(h.name) }

// sliceHandler cannot be compared for identity
type sliceHandler struct {
	names []string
}

func (h sliceHandler) Identity() string        { return "slice" }
func (h sliceHandler) Test(int) bool           { return true }
func (h sliceHandler) Act(int) Outcome[string] { return Delegate[string]() }

// anyHandler is comparable by type, but not when meta holds a slice
type anyHandler struct {
	name string
	meta any
}

func (h anyHandler) Identity() string        { return h.name }
func (h anyHandler) Test(int) bool           { return true }
func (h anyHandler) Act(int) Outcome[string] { return Delegate[string]() }

func newNamed(name string) Handler[int, string] {
	return NewHandler[int, string](name, nil, func(int) Outcome[string] {
		return Resolved(name)
	})
}

func TestChain_Attach(t *testing.T) {
	t.Run("preserves attach order", func(t *testing.T) {
		c := New[int, string]()
		for _, name := range []string{"first", "second", "third"} {
			_, err := c.Attach(newNamed(name))
			require.NoError(t, err)
		}

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []string{"first", "second", "third"}, c.Identities())
	})

	t.Run("returns the attached handler", func(t *testing.T) {
		c := New[int, string]()
		h := newNamed("manager")

		attached, err := c.Attach(h)

		require.NoError(t, err)
		assert.Same(t, h, attached)
	})

	t.Run("rejects the same instance twice and leaves chain unmodified", func(t *testing.T) {
		c := New[int, string]()
		a := newNamed("a")
		b := newNamed("b")
		c.MustAttach(a)
		c.MustAttach(b)

		_, err := c.Attach(a)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateHandler))

		var dupErr *DuplicateHandlerError
		require.True(t, errors.As(err, &dupErr))
		assert.Equal(t, "a", dupErr.Identity)
		assert.Equal(t, 0, dupErr.Position)
		assert.Equal(t, []string{"a", "b"}, c.Identities())
	})

	t.Run("allows distinct instances sharing an identity", func(t *testing.T) {
		c := New[int, string]()
		c.MustAttach(newNamed("same"))

		_, err := c.Attach(newNamed("same"))

		assert.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("equal value handlers count as the same handler", func(t *testing.T) {
		c := New[int, string]()
		c.MustAttach(valueHandler{name: "v"})

		_, err := c.Attach(valueHandler{name: "v"})

		assert.ErrorIs(t, err, ErrDuplicateHandler)
	})

	t.Run("rejects nil handler", func(t *testing.T) {
		c := New[int, string]()

		_, err := c.Attach(nil)

		assert.ErrorIs(t, err, ErrNilHandler)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("rejects uncomparable handler types", func(t *testing.T) {
		c := New[int, string]()

		_, err := c.Attach(sliceHandler{names: []string{"x"}})

		assert.ErrorIs(t, err, ErrUncomparableHandler)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("rejects handler values holding uncomparable fields", func(t *testing.T) {
		c := New[int, string]()

		var first, second error
		assert.NotPanics(t, func() {
			_, first = c.Attach(anyHandler{name: "a", meta: []string{"x"}})
			_, second = c.Attach(anyHandler{name: "a", meta: []string{"y"}})
		})

		assert.ErrorIs(t, first, ErrUncomparableHandler)
		assert.ErrorIs(t, second, ErrUncomparableHandler)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("accepts handler values holding comparable fields", func(t *testing.T) {
		c := New[int, string]()
		c.MustAttach(anyHandler{name: "a", meta: "x"})

		_, err := c.Attach(anyHandler{name: "a", meta: "y"})
		require.NoError(t, err)

		_, err = c.Attach(anyHandler{name: "a", meta: "x"})
		assert.ErrorIs(t, err, ErrDuplicateHandler)
		assert.Equal(t, 2, c.Len())
	})
}

func TestChain_MustAttach(t *testing.T) {
	c := New[int, string]()
	h := newNamed("once")
	c.MustAttach(h)

	assert.Panics(t, func() { c.MustAttach(h) })
	assert.Equal(t, 1, c.Len())
}

func TestOf(t *testing.T) {
	t.Run("builds chain in argument order", func(t *testing.T) {
		c, err := Of(newNamed("x"), newNamed("y"))

		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, c.Identities())
	})

	t.Run("fails on repeated handler", func(t *testing.T) {
		h := newNamed("x")

		c, err := Of(h, newNamed("y"), h)

		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrDuplicateHandler)
	})
}

func TestChain_Handlers(t *testing.T) {
	c, err := Of(newNamed("a"), newNamed("b"), newNamed("c"))
	require.NoError(t, err)

	collect := func() []string {
		var ids []string
		for h := range c.Handlers() {
			ids = append(ids, h.Identity())
		}
		return ids
	}

	t.Run("yields in attach order", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, collect())
	})

	t.Run("is restartable", func(t *testing.T) {
		assert.Equal(t, collect(), collect())
	})

	t.Run("stops early when consumer breaks", func(t *testing.T) {
		var seen []string
		for h := range c.Handlers() {
			seen = append(seen, h.Identity())
			if h.Identity() == "b" {
				break
			}
		}
		assert.Equal(t, []string{"a", "b"}, seen)
	})

	t.Run("empty chain yields nothing", func(t *testing.T) {
		count := 0
		for range New[int, string]().Handlers() {
			count++
		}
		assert.Zero(t, count)
	})
}

func TestNewHandler(t *testing.T) {
	t.Run("nil test always passes", func(t *testing.T) {
		h := NewHandler[int, string]("open", nil, nil)
		assert.True(t, h.Test(0))
		assert.True(t, h.Test(-1))
	})

	t.Run("nil act delegates", func(t *testing.T) {
		h := NewHandler[int, string]("noop", nil, nil)
		assert.Equal(t, KindDelegate, h.Act(1).Kind())
	})

	t.Run("uses supplied functions", func(t *testing.T) {
		h := NewHandler("even", func(n int) bool { return n%2 == 0 }, func(n int) Outcome[string] {
			return Resolved("even")
		})

		assert.Equal(t, "even", h.Identity())
		assert.True(t, h.Test(2))
		assert.False(t, h.Test(3))
		result, ok := h.Act(2).Result()
		assert.True(t, ok)
		assert.Equal(t, "even", result)
	})

	t.Run("always accepts anything", func(t *testing.T) {
		assert.True(t, Always(42))
		assert.True(t, Always("x"))
	})
}
