package generics

import (
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

func init() {
	lint.Register(BuiltinTypeShadow)
}

// BuiltinTypeShadow flags generic type parameters named after a primitive type.
var BuiltinTypeShadow = lint.RuleDef{
	ID:          "builtin-type-shadow",
	Name:        "style.builtin_type_shadow",
	Category:    core.CategoryStyle,
	Description: "Generic type parameters should not shadow built-in types.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindGenerics},
	Check:       checkBuiltinTypeShadow,
	ConfigKeys:  []string{OptExtraTypes},
	Rationale:   "Inside `fn foo<u32>(a: u32)`, `u32` is the type parameter, not the integer type.",
	BadExample:  "impl<u32> Foo<u32> {}",
	GoodExample: "impl<T> Foo<T> {}",
}

// OptExtraTypes lists additional type names treated as built-in.
const OptExtraTypes = "extra_types"

// builtinTypes are the primitive type names.
var builtinTypes = map[string]bool{
	"bool": true, "char": true, "str": true,
	"f32": true, "f64": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
}

func checkBuiltinTypeShadow(pass *lint.Pass, node syntax.Node) {
	gen, ok := node.(*syntax.Generics)
	if !ok {
		return
	}
	extra := lint.GetStringSliceOption(pass.Options, OptExtraTypes, nil)

	for _, param := range gen.Params {
		if param.Kind != syntax.GenericType {
			continue
		}
		if !builtinTypes[param.Name] && !contains(extra, param.Name) {
			continue
		}
		pass.Reportf(nameSpan(param), "This generic shadows the built-in type `%s`", param.Name)
	}
}

// nameSpan narrows a parameter's span to its name. Parameter names are
// single-line identifiers at the start of the parameter.
func nameSpan(param *syntax.GenericParam) token.Span {
	span := param.Span()
	n := len(param.Name)
	if span.Len() < n {
		return span
	}
	span.End = token.Position{
		Line:   span.Start.Line,
		Column: span.Start.Column + n,
		Offset: span.Start.Offset + n,
	}
	return span
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
