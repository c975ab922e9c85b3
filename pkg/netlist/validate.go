package netlist

import (
	"embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/chewxy/sexp"
)

//go:embed schema.cue
var schemaFS embed.FS

// Validator checks serialized netlists against the embedded CUE schema
// and the module-level wiring rules.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("netlist: loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("netlist: compiling schema: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks n against the schema, then checks every module's wiring
func (v *Validator) Validate(n *Netlist) error {
	data, err := n.MarshalIndent()
	if err != nil {
		return fmt.Errorf("netlist: marshal: %w", err)
	}
	if err := v.ValidateJSON(data); err != nil {
		return err
	}

	for _, name := range sortedKeys(n.Modules) {
		if err := n.Modules[name].Check(); err != nil {
			return fmt.Errorf("netlist: module %s: %w", name, err)
		}
	}
	return nil
}

// ValidateJSON checks raw JSON against the #Netlist definition
func (v *Validator) ValidateJSON(data []byte) error {
	value := v.ctx.CompileBytes(data)
	if value.Err() != nil {
		return fmt.Errorf("netlist: compiling JSON as CUE: %w", value.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath("#Netlist"))
	if def.Err() != nil {
		return fmt.Errorf("netlist: looking up #Netlist definition: %w", def.Err())
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("netlist: schema validation failed: %w", err)
	}
	return nil
}

// ValidationErrors lists every schema violation in data, one per entry
func (v *Validator) ValidationErrors(data []byte) []string {
	err := v.ValidateJSON(data)
	if err == nil {
		return nil
	}
	var errs []string
	for _, e := range cueerrors.Errors(err) {
		errs = append(errs, e.Error())
	}
	if len(errs) == 0 {
		errs = append(errs, err.Error())
	}
	return errs
}

// Check verifies that the module is internally consistent: every net name
// bit is a real net (not a reserved constant index) and every net bit
// used by a port or a cell is declared by some net name.
func (m *Module) Check() error {
	declared := make(map[uint32]bool)
	for _, name := range sortedKeys(m.Netnames) {
		for _, b := range m.Netnames[name].Bits {
			n, ok := b.Net()
			if !ok {
				continue
			}
			if n < 2 {
				return fmt.Errorf("net %s uses reserved index %d", name, n)
			}
			declared[n] = true
		}
	}

	for _, name := range sortedKeys(m.Ports) {
		for _, b := range m.Ports[name].Bits {
			if n, ok := b.Net(); ok && !declared[n] {
				return fmt.Errorf("port %s uses undeclared net %d", name, n)
			}
		}
	}

	for _, name := range sortedKeys(m.Cells) {
		cell := m.Cells[name]
		for _, port := range sortedKeys(cell.Connections) {
			for _, b := range cell.Connections[port] {
				if n, ok := b.Net(); ok && !declared[n] {
					return fmt.Errorf("cell %s port %s uses undeclared net %d", name, port, n)
				}
			}
		}
	}
	return nil
}

// CheckSexp verifies that s parses as exactly one s-expression list, as a
// KiCad netlist export must.
func CheckSexp(s string) error {
	exprs, err := sexp.ParseString(s)
	if err != nil {
		return fmt.Errorf("netlist: invalid s-expression: %w", err)
	}
	if len(exprs) != 1 {
		return fmt.Errorf("netlist: expected 1 top-level s-expression, got %d", len(exprs))
	}
	if exprs[0].IsLeaf() {
		return fmt.Errorf("netlist: top-level s-expression is an atom")
	}
	return nil
}
