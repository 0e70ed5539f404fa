package gen

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/welevelacademy/prisma"
	"github.com/welevelacademy/prisma/sdl"
)

// hostKind classifies what a directive may annotate.
type hostKind uint8

const (
	hostType hostKind = 1 << iota
	hostScalarField
	hostRelationField
)

// argKind classifies the literal kinds accepted for a directive argument.
type argKind uint8

const (
	argString argKind = 1 << iota
	argSymbol
)

type argRule struct {
	required bool
	kind     argKind
	// symbols restricts symbol arguments to a fixed set, if non-empty.
	symbols []string
}

// directiveRule is one row of the static rule table: where a directive may
// appear and which arguments it takes. The directive system is a closed set
// of nine tags; unknown directives are a validation error, not an extension
// point.
type directiveRule struct {
	hosts hostKind
	args  map[string]*argRule
}

var directiveRules = map[string]*directiveRule{
	"id":     {hosts: hostScalarField},
	"unique": {hosts: hostScalarField},
	"createdAt": {
		hosts: hostScalarField,
	},
	"updatedAt": {
		hosts: hostScalarField,
	},
	"default": {
		hosts: hostScalarField,
		args: map[string]*argRule{
			// The literal kind is checked against the field kind
			// separately; any literal is structurally allowed here.
			"value": {required: true, kind: argString | argSymbol},
		},
	},
	"db": {
		hosts: hostType | hostScalarField | hostRelationField,
		args: map[string]*argRule{
			"name": {required: true, kind: argString},
		},
	},
	"relation": {
		hosts: hostRelationField,
		args: map[string]*argRule{
			"name":     {kind: argString},
			"link":     {kind: argSymbol, symbols: []string{"INLINE", "TABLE"}},
			"onDelete": {kind: argSymbol, symbols: []string{"SET_NULL", "CASCADE"}},
		},
	},
	"relationTable": {hosts: hostType},
	"scalarList": {
		hosts: hostScalarField,
		args: map[string]*argRule{
			"strategy": {required: true, kind: argSymbol, symbols: []string{"RELATION"}},
		},
	},
}

// validateDirective checks a single directive instance against the rule
// table: known tag, allowed host, argument names, presence and literal
// shape. Violations are appended to errs; the literal-vs-field-kind check
// for @default happens in the field builder, which knows the field kind.
func (g *graphBuilder) validateDirective(typeName, fieldName string, host hostKind, d *sdl.Directive) bool {
	rule, ok := directiveRules[d.Name]
	if !ok {
		g.errs = append(g.errs, &prisma.ValidationError{
			Kind: prisma.KindUnknownDirective, Pos: sdl.Pos(d.Pos),
			Type: typeName, Field: fieldName,
			Message: fmt.Sprintf("unknown directive @%s", d.Name),
		})
		return false
	}
	if rule.hosts&host == 0 {
		g.errs = append(g.errs, &prisma.ValidationError{
			Kind: prisma.KindDirectiveHost, Pos: sdl.Pos(d.Pos),
			Type: typeName, Field: fieldName,
			Message: fmt.Sprintf("@%s cannot be applied to %s", d.Name, hostName(host)),
		})
		return false
	}
	valid := true
	seen := make(map[string]struct{}, len(d.Args))
	for _, a := range d.Args {
		if _, dup := seen[a.Name]; dup {
			g.errs = append(g.errs, &prisma.ValidationError{
				Kind: prisma.KindDirectiveArgument, Pos: sdl.Pos(a.Pos),
				Type: typeName, Field: fieldName,
				Message: fmt.Sprintf("@%s: duplicate argument %q", d.Name, a.Name),
			})
			valid = false
			continue
		}
		seen[a.Name] = struct{}{}
		ar, known := rule.args[a.Name]
		if !known {
			g.errs = append(g.errs, &prisma.ValidationError{
				Kind: prisma.KindDirectiveArgument, Pos: sdl.Pos(a.Pos),
				Type: typeName, Field: fieldName,
				Message: fmt.Sprintf("@%s does not take an argument named %q", d.Name, a.Name),
			})
			valid = false
			continue
		}
		if !g.checkArgValue(typeName, fieldName, d.Name, a, ar) {
			valid = false
		}
	}
	for name, ar := range rule.args {
		if !ar.required {
			continue
		}
		if _, ok := seen[name]; !ok {
			g.errs = append(g.errs, &prisma.ValidationError{
				Kind: prisma.KindDirectiveArgument, Pos: sdl.Pos(d.Pos),
				Type: typeName, Field: fieldName,
				Message: fmt.Sprintf("@%s requires a %q argument", d.Name, name),
			})
			valid = false
		}
	}
	return valid
}

func (g *graphBuilder) checkArgValue(typeName, fieldName, directive string, a *sdl.Argument, rule *argRule) bool {
	switch {
	case rule.kind&argString != 0:
		if _, ok := a.Value.StringVal(); ok {
			return true
		}
	}
	if rule.kind&argSymbol != 0 {
		sym, ok := a.Value.SymbolVal()
		if ok {
			if len(rule.symbols) == 0 {
				return true
			}
			for _, s := range rule.symbols {
				if s == sym {
					return true
				}
			}
			g.errs = append(g.errs, &prisma.ValidationError{
				Kind: prisma.KindDirectiveArgument, Pos: sdl.Pos(a.Pos),
				Type: typeName, Field: fieldName,
				Message: fmt.Sprintf("@%s: invalid %s value %s (expected one of %v)", directive, a.Name, sym, rule.symbols),
			})
			return false
		}
	}
	// @default accepts any literal; its kind is checked against the field.
	if directive == "default" {
		return true
	}
	g.errs = append(g.errs, &prisma.ValidationError{
		Kind: prisma.KindDirectiveArgument, Pos: sdl.Pos(a.Pos),
		Type: typeName, Field: fieldName,
		Message: fmt.Sprintf("@%s: malformed literal for argument %q", directive, a.Name),
	})
	return false
}

// checkDefault verifies the @default literal against the field's scalar
// kind. DateTime defaults must be ISO-8601, Json defaults must parse.
func (g *graphBuilder) checkDefault(f *Field, v *sdl.Value, pos prisma.Position) {
	fail := func(format string, args ...any) {
		g.errs = append(g.errs, &prisma.ValidationError{
			Kind: prisma.KindDefaultValue, Pos: pos,
			Type: f.typ.Name, Field: f.Name,
			Message: fmt.Sprintf(format, args...),
		})
	}
	if f.List {
		fail("@default is not supported on list fields")
		return
	}
	switch f.Kind {
	case KindString:
		if _, ok := v.StringVal(); !ok {
			fail("@default value for a String field must be a string literal")
		}
	case KindInt:
		if _, ok := v.IntVal(); !ok {
			fail("@default value for an Int field must be an integer literal")
		}
	case KindFloat:
		if _, ok := v.FloatVal(); !ok {
			fail("@default value for a Float field must be a number literal")
		}
	case KindBoolean:
		if _, ok := v.BoolVal(); !ok {
			fail("@default value for a Boolean field must be true or false")
		}
	case KindDateTime:
		s, ok := v.StringVal()
		if !ok {
			fail("@default value for a DateTime field must be an ISO-8601 string")
			return
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			fail("@default value %q is not a valid ISO-8601 datetime", s)
		}
	case KindJSON:
		s, ok := v.StringVal()
		if !ok || !json.Valid([]byte(s)) {
			fail("@default value for a Json field must be a valid JSON string")
		}
	case KindID:
		fail("@default is not supported on ID fields; identifiers are generated")
	case KindEnum:
		sym, ok := v.SymbolVal()
		if !ok || !f.Enum.HasValue(sym) {
			fail("@default value for enum %s must be one of its values", f.Enum.Name)
		}
	}
}

func hostName(h hostKind) string {
	switch h {
	case hostType:
		return "a type"
	case hostScalarField:
		return "a scalar field"
	default:
		return "a relation field"
	}
}
