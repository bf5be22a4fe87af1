package internal

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Program is what a parser hands to the engine: the top-level statements and
// the procedures defined at the top level.
type Program struct {
	Body       []*Invocation
	Procedures map[string]Procedure
}

// MarshalProgram encodes a program in its persisted YAML form. Interpreted
// procedures are stored completely. Host procedures are stored only by name
// and signature and load as placeholders.
func MarshalProgram(p *Program) ([]byte, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("turtle: encoding program: %w", err)
	}
	return b, nil
}

// UnmarshalProgram decodes a program from its persisted YAML form.
func UnmarshalProgram(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("turtle: decoding program: %w", err)
	}
	return &p, nil
}

// MarshalProcedure encodes one procedure in its persisted YAML form.
func MarshalProcedure(p Procedure) ([]byte, error) {
	b, err := yaml.Marshal(docOf(p))
	if err != nil {
		return nil, fmt.Errorf("turtle: encoding procedure %s: %w", p.Name(), err)
	}
	return b, nil
}

// UnmarshalProcedure decodes one procedure from its persisted YAML form.
func UnmarshalProcedure(data []byte) (Procedure, error) {
	var d procedureDoc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("turtle: decoding procedure: %w", err)
	}
	return d.procedure(), nil
}

type programDoc struct {
	Procedures map[string]*procedureDoc `yaml:"procedures,omitempty"`
	Body       []*Invocation            `yaml:"body"`
}

// MarshalYAML implements yaml.Marshaler.
func (p *Program) MarshalYAML() (interface{}, error) {
	return programDoc{Procedures: docsOf(p.Procedures), Body: p.Body}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Program) UnmarshalYAML(node *yaml.Node) error {
	var d programDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	p.Body = d.Body
	p.Procedures = proceduresOf(d.Procedures)
	return nil
}

type procedureDoc struct {
	Name       string                   `yaml:"name"`
	Params     []string                 `yaml:"params,omitempty,flow"`
	Rest       bool                     `yaml:"rest,omitempty"`
	Host       bool                     `yaml:"host,omitempty"`
	Body       []*Invocation            `yaml:"body,omitempty"`
	Procedures map[string]*procedureDoc `yaml:"procedures,omitempty"`
}

func docOf(p Procedure) *procedureDoc {
	d := &procedureDoc{Name: p.Name(), Params: p.Params(), Rest: p.HasRest()}
	if ip, ok := p.(*Interpreted); ok {
		d.Body = ip.Body
		d.Procedures = docsOf(ip.procs)
	} else {
		d.Host = true
	}
	return d
}

func docsOf(procs map[string]Procedure) map[string]*procedureDoc {
	if len(procs) == 0 {
		return nil
	}
	m := make(map[string]*procedureDoc, len(procs))
	for name, p := range procs {
		m[name] = docOf(p)
	}
	return m
}

func (d *procedureDoc) procedure() Procedure {
	if d.Host {
		return NewPlaceholder(d.Name, d.Params, d.Rest)
	}
	return NewInterpreted(d.Name, d.Params, d.Rest, d.Body, proceduresOf(d.Procedures))
}

func proceduresOf(docs map[string]*procedureDoc) map[string]Procedure {
	if len(docs) == 0 {
		return nil
	}
	m := make(map[string]Procedure, len(docs))
	for name, d := range docs {
		m[name] = d.procedure()
	}
	return m
}

// MarshalYAML implements yaml.Marshaler.
func (op Operator) MarshalYAML() (interface{}, error) {
	return op.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (op *Operator) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if len(s) != 1 {
		return fmt.Errorf("turtle: line %d: bad operator %q", node.Line, s)
	}
	switch o := Operator(s[0]); o {
	case OpAdd, OpSub, OpMul, OpDiv, OpLess, OpGreater, OpEqual:
		*op = o
		return nil
	}
	return fmt.Errorf("turtle: line %d: bad operator %q", node.Line, s)
}

type valueDoc struct {
	Expr  *Expression `yaml:"expr,omitempty"`
	Ref   string      `yaml:"ref,omitempty"`
	Deref string      `yaml:"deref,omitempty"`
	Lit   *Bottom     `yaml:"lit,omitempty"`
	Call  *Invocation `yaml:"call,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (interface{}, error) {
	var d valueDoc
	switch v.Kind {
	case ExpressionValue:
		d.Expr = v.Expr
	case ReferenceValue:
		d.Ref = v.Name
	case DerefValue:
		d.Deref = v.Name
	case LiteralValue:
		lit := v.Literal
		d.Lit = &lit
	case CallValue:
		d.Call = v.Call
	default:
		return nil, fmt.Errorf("turtle: cannot encode value of kind %v", v.Kind)
	}
	return d, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var d valueDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	switch {
	case d.Expr != nil:
		*v = Expr(d.Expr)
	case d.Ref != "":
		*v = Ref(d.Ref)
	case d.Deref != "":
		*v = Deref(d.Deref)
	case d.Lit != nil:
		*v = Lit(*d.Lit)
	case d.Call != nil:
		*v = Call(d.Call)
	default:
		return fmt.Errorf("turtle: line %d: value has no form", node.Line)
	}
	return nil
}

type bottomDoc struct {
	Number    *float64    `yaml:"number,omitempty"`
	String    *string     `yaml:"string,omitempty"`
	Boolean   *bool       `yaml:"boolean,omitempty"`
	List      *[]Bottom   `yaml:"list,omitempty,flow"`
	Command   *Invocation `yaml:"command,omitempty"`
	Reference *string     `yaml:"reference,omitempty"`
}

// MarshalYAML implements yaml.Marshaler. References lose their captured
// store.
func (b Bottom) MarshalYAML() (interface{}, error) {
	var d bottomDoc
	switch b.kind {
	case NoKind: // empty document
	case NumberKind:
		d.Number = &b.num
	case StringKind:
		d.String = &b.str
	case BooleanKind:
		d.Boolean = &b.b
	case ListKind:
		l := b.list
		if l == nil {
			l = []Bottom{}
		}
		d.List = &l
	case CommandKind:
		d.Command = b.cmd
	case ReferenceKind:
		d.Reference = &b.str
	}
	return d, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bottom) UnmarshalYAML(node *yaml.Node) error {
	var d bottomDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	switch {
	case d.Number != nil:
		*b = Number(*d.Number)
	case d.String != nil:
		*b = Text(*d.String)
	case d.Boolean != nil:
		*b = Boolean(*d.Boolean)
	case d.List != nil:
		*b = List(*d.List...)
	case d.Command != nil:
		*b = Command(d.Command)
	case d.Reference != nil:
		*b = Reference(*d.Reference, nil)
	default:
		*b = Nothing
	}
	return nil
}

// ProcedureNames returns the sorted names of procs.
func ProcedureNames(procs map[string]Procedure) []string {
	names := make([]string, 0, len(procs))
	for name := range procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
