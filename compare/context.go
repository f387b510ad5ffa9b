// Package compare holds the configuration shared by every node of one
// calendar comparison.
//
// A [Context] is built once with [NewContext] and never changes afterwards,
// so one Context may serve several comparisons running concurrently.
package compare

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/signadot/caldiff/tz"
	"github.com/signadot/caldiff/value"
)

type Context struct {
	skips     map[SkipKey]struct{}
	skipExprs []*skipExpr
	aliases   map[SkipKey]string
	resolver  tz.Resolver
	registry  *value.Registry
	log       *slog.Logger
}

type Option func(*Context) error

func WithSkip(keys ...SkipKey) Option {
	return func(c *Context) error {
		for _, k := range keys {
			c.skips[k.canon()] = struct{}{}
		}
		return nil
	}
}

// DefaultSkips are the properties which change with every save of a
// scheduling object without changing its meaning.
func DefaultSkips() []SkipKey {
	return []SkipKey{
		SkipProperty("DTSTAMP"),
		SkipProperty("LAST-MODIFIED"),
		SkipProperty("PRODID"),
	}
}

func WithDefaultSkips() Option {
	return WithSkip(DefaultSkips()...)
}

// WithSkipExpr adds an expression deciding whether a node is skipped. The
// expression sees the fields of [Node] and must evaluate to a bool, e.g.
//
//	Level == "parameter" && Name startsWith "X-"
func WithSkipExpr(src string) Option {
	return func(c *Context) error {
		se, err := compileSkipExpr(src)
		if err != nil {
			return err
		}
		c.skipExprs = append(c.skipExprs, se)
		return nil
	}
}

// WithAlias compares nodes of the given level named name as if they were
// named mapped, e.g. X-WR-CALNAME as NAME.
func WithAlias(level Level, name, mapped string) Option {
	return func(c *Context) error {
		if name == "" || mapped == "" {
			return fmt.Errorf("alias %q -> %q: empty name", name, mapped)
		}
		c.aliases[SkipKey{Level: level, Name: name}.canon()] = strings.ToUpper(mapped)
		return nil
	}
}

func WithResolver(r tz.Resolver) Option {
	return func(c *Context) error {
		if r == nil {
			return fmt.Errorf("nil timezone resolver")
		}
		c.resolver = r
		return nil
	}
}

func WithRegistry(r *value.Registry) Option {
	return func(c *Context) error {
		if r == nil {
			return fmt.Errorf("nil registry")
		}
		c.registry = r
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Context) error {
		c.log = l
		return nil
	}
}

func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		skips:    map[SkipKey]struct{}{},
		aliases:  map[SkipKey]string{},
		resolver: tz.System,
		registry: value.Default(),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Skip reports whether the node named name at level, under a parent named
// parent and holding v, is excluded from comparison.
func (c *Context) Skip(level Level, name, parent, v string) (bool, error) {
	if _, ok := c.skips[SkipKey{Level: level, Name: name}.canon()]; ok {
		return true, nil
	}
	if len(c.skipExprs) == 0 {
		return false, nil
	}
	n := &Node{
		Level:  level.String(),
		Name:   strings.ToUpper(name),
		Parent: strings.ToUpper(parent),
		Value:  v,
	}
	for _, se := range c.skipExprs {
		skip, err := se.eval(n)
		if err != nil {
			return false, err
		}
		if skip {
			return true, nil
		}
	}
	return false, nil
}

// MappedName returns the alias of name at level, or "" if there is none.
func (c *Context) MappedName(level Level, name string) string {
	return c.aliases[SkipKey{Level: level, Name: name}.canon()]
}

func (c *Context) Resolve(tzid string) *time.Location {
	return c.resolver(tzid)
}

func (c *Context) Registry() *value.Registry {
	return c.registry
}

func (c *Context) Log() *slog.Logger {
	return c.log
}
