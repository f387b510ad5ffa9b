package value

import (
	"fmt"
	"maps"
	"strings"

	"github.com/emersion/go-ical"

	"github.com/signadot/caldiff/debug"
)

// Converter models one kind of leaf value.
type Converter interface {
	// Canonical returns the comparable form of p's value.
	Canonical(p *ical.Prop) (Comparator, error)
	// ValueOnly returns a copy of p carrying only its name and value.
	ValueOnly(p *ical.Prop) *ical.Prop
	// Normalize splits p into equivalent single valued leaves.
	Normalize(p *ical.Prop) ([]*ical.Prop, error)
}

// Funcs adapts functions to a Converter. A nil NormalizeFunc leaves
// values unsplit.
type Funcs struct {
	CanonicalFunc func(*ical.Prop) (Comparator, error)
	NormalizeFunc func(*ical.Prop) ([]*ical.Prop, error)
}

func (f Funcs) Canonical(p *ical.Prop) (Comparator, error) {
	return f.CanonicalFunc(p)
}

func (f Funcs) ValueOnly(p *ical.Prop) *ical.Prop {
	return valueOnly(p)
}

func (f Funcs) Normalize(p *ical.Prop) ([]*ical.Prop, error) {
	if f.NormalizeFunc == nil {
		return []*ical.Prop{p}, nil
	}
	return f.NormalizeFunc(p)
}

// Registry maps kinds to converters and property names to kinds.
// A Registry is never modified after NewRegistry returns it.
type Registry struct {
	converters map[Kind]Converter
	overrides  map[Kind]Converter
	propKinds  map[string]Kind
}

type Option func(*registryConfig)

type registryConfig struct {
	noDefaults bool
	overrides  map[Kind]Converter
	propKinds  map[string]Kind
}

// WithConverter registers c for kind k, taking precedence over the
// default converter for k.
func WithConverter(k Kind, c Converter) Option {
	return func(cfg *registryConfig) {
		cfg.overrides[k] = c
	}
}

// WithPropertyKind classifies properties named name as kind k regardless of
// their VALUE parameter.
func WithPropertyKind(name string, k Kind) Option {
	return func(cfg *registryConfig) {
		cfg.propKinds[strings.ToUpper(name)] = k
	}
}

// WithoutDefaults builds a registry holding only the converters given with
// WithConverter.
func WithoutDefaults() Option {
	return func(cfg *registryConfig) {
		cfg.noDefaults = true
	}
}

func NewRegistry(opts ...Option) (*Registry, error) {
	cfg := &registryConfig{
		overrides: map[Kind]Converter{},
		propKinds: map[string]Kind{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	for k, c := range cfg.overrides {
		if c == nil {
			return nil, fmt.Errorf("nil converter for kind %s", k)
		}
	}
	reg := &Registry{
		converters: map[Kind]Converter{},
		overrides:  cfg.overrides,
		propKinds:  maps.Clone(defaultPropKinds),
	}
	if !cfg.noDefaults {
		maps.Copy(reg.converters, defaultConverters)
	}
	maps.Copy(reg.propKinds, cfg.propKinds)
	return reg, nil
}

var defaultRegistry = func() *Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}()

// Default returns the shared registry holding the built in converters.
func Default() *Registry {
	return defaultRegistry
}

// Lookup finds the converter for k, walking k's parent chain.
func (r *Registry) Lookup(k Kind) (Converter, error) {
	for cur := k; ; {
		if c, ok := r.overrides[cur]; ok {
			return c, nil
		}
		if c, ok := r.converters[cur]; ok {
			return c, nil
		}
		next, ok := cur.Parent()
		if !ok {
			break
		}
		cur = next
	}
	return nil, fmt.Errorf("%w: %s", ErrUnregisteredType, k)
}

// KindOf classifies the value of p.
func (r *Registry) KindOf(p *ical.Prop) Kind {
	name := strings.ToUpper(p.Name)
	if k, ok := r.propKinds[name]; ok {
		return refineKind(k, p)
	}
	return kindOfValueType(p.ValueType())
}

// refineKind accounts for VALUE parameters on properties whose kind is
// fixed by name, e.g. RDATE;VALUE=PERIOD or TRIGGER;VALUE=DATE-TIME.
func refineKind(k Kind, p *ical.Prop) Kind {
	vt := strings.ToUpper(p.Params.Get("VALUE"))
	switch k {
	case DateTimeList:
		if vt == "PERIOD" {
			return PeriodList
		}
	}
	return k
}

func kindOfValueType(vt ical.ValueType) Kind {
	switch strings.ToUpper(string(vt)) {
	case "TEXT":
		return Text
	case "URI":
		return URI
	case "CAL-ADDRESS":
		return CalAddress
	case "BINARY":
		return Binary
	case "BOOLEAN":
		return Boolean
	case "INTEGER":
		return Integer
	case "FLOAT":
		return Float
	case "DATE":
		return Date
	case "DATE-TIME":
		return DateTime
	case "TIME":
		return Time
	case "DURATION":
		return Duration
	case "PERIOD":
		return Period
	case "RECUR":
		return Recur
	case "UTC-OFFSET":
		return UTCOffset
	}
	return Extension
}

// Canonical returns the comparator for p.
func (r *Registry) Canonical(p *ical.Prop) (Comparator, error) {
	k := r.KindOf(p)
	c, err := r.Lookup(k)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}
	res, err := c.Canonical(p)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}
	if debug.Value() {
		debug.Logf("canonical %s (%s): %s\n", p, k, res)
	}
	return res, nil
}

// ValueOnly returns a copy of p stripped of parameters, used to reference p
// in a change set.
func (r *Registry) ValueOnly(p *ical.Prop) (*ical.Prop, error) {
	c, err := r.Lookup(r.KindOf(p))
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}
	return c.ValueOnly(p), nil
}

// Normalize splits p into single valued leaves.
func (r *Registry) Normalize(p *ical.Prop) ([]*ical.Prop, error) {
	c, err := r.Lookup(r.KindOf(p))
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}
	return c.Normalize(p)
}

// CanonicalParam returns the comparator for one value of a parameter.
func (r *Registry) CanonicalParam(name, v string) (Comparator, error) {
	c, err := r.Lookup(Parameter)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", name, err)
	}
	return c.Canonical(&ical.Prop{Name: name, Value: v, Params: ical.Params{}})
}
