package changeset

// Param is one value of a parameter.
type Param struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Prop is a property. Properties in Remove lists and references carry no
// parameters other than VALUE.
type Prop struct {
	Name   string              `json:"name" yaml:"name"`
	Params map[string][]string `json:"params,omitempty" yaml:"params,omitempty"`
	Value  string              `json:"value" yaml:"value"`
}

// Component is either a complete component, when added, or a reference
// fragment holding only the properties identifying a component of the old
// document.
type Component struct {
	Name       string       `json:"name" yaml:"name"`
	Props      []*Prop      `json:"props,omitempty" yaml:"props,omitempty"`
	Components []*Component `json:"components,omitempty" yaml:"components,omitempty"`
}

type ComponentSelection struct {
	Ref        *Component           `json:"ref" yaml:"ref"`
	Properties *PropertiesSelection `json:"properties,omitempty" yaml:"properties,omitempty"`
	Components *ComponentsSelection `json:"components,omitempty" yaml:"components,omitempty"`
}

type ComponentsSelection struct {
	Add    []*Component          `json:"add,omitempty" yaml:"add,omitempty"`
	Remove []*Component          `json:"remove,omitempty" yaml:"remove,omitempty"`
	Select []*ComponentSelection `json:"select,omitempty" yaml:"select,omitempty"`
}

type PropertiesSelection struct {
	Add    []*Prop              `json:"add,omitempty" yaml:"add,omitempty"`
	Remove []*Prop              `json:"remove,omitempty" yaml:"remove,omitempty"`
	Select []*PropertySelection `json:"select,omitempty" yaml:"select,omitempty"`
}

// PropertySelection changes the property Ref refers to. Changed is nil when
// only parameters differ.
type PropertySelection struct {
	Ref        *Prop                `json:"ref" yaml:"ref"`
	Changed    *Prop                `json:"changed,omitempty" yaml:"changed,omitempty"`
	Parameters *ParametersSelection `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

type ParametersSelection struct {
	Add    []*Param              `json:"add,omitempty" yaml:"add,omitempty"`
	Remove []*Param              `json:"remove,omitempty" yaml:"remove,omitempty"`
	Select []*ParameterSelection `json:"select,omitempty" yaml:"select,omitempty"`
}

type ParameterSelection struct {
	Ref     *Param `json:"ref" yaml:"ref"`
	Changed *Param `json:"changed" yaml:"changed"`
}

func (s *ComponentSelection) Empty() bool {
	return s == nil || (s.Properties.Empty() && s.Components.Empty())
}

func (s *ComponentsSelection) Empty() bool {
	return s == nil || len(s.Add)+len(s.Remove)+len(s.Select) == 0
}

func (s *PropertiesSelection) Empty() bool {
	return s == nil || len(s.Add)+len(s.Remove)+len(s.Select) == 0
}

func (s *PropertySelection) Empty() bool {
	return s == nil || (s.Changed == nil && s.Parameters.Empty())
}

func (s *ParametersSelection) Empty() bool {
	return s == nil || len(s.Add)+len(s.Remove)+len(s.Select) == 0
}

// Stats counts the entries of a change set at every level.
type Stats struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
	Changed int `json:"changed" yaml:"changed"`
}

func (s *ComponentSelection) Stats() Stats {
	var st Stats
	s.addStats(&st)
	return st
}

func (s *ComponentSelection) addStats(st *Stats) {
	if s == nil {
		return
	}
	if ps := s.Properties; ps != nil {
		st.Added += len(ps.Add)
		st.Removed += len(ps.Remove)
		for _, sel := range ps.Select {
			if sel.Changed != nil {
				st.Changed++
			}
			if pa := sel.Parameters; pa != nil {
				st.Added += len(pa.Add)
				st.Removed += len(pa.Remove)
				st.Changed += len(pa.Select)
			}
		}
	}
	if cs := s.Components; cs != nil {
		st.Added += len(cs.Add)
		st.Removed += len(cs.Remove)
		for _, sel := range cs.Select {
			sel.addStats(st)
		}
	}
}
