package printer

import (
	"strconv"
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

func formatBound(b ast.Bound) string {
	switch {
	case b.Unset:
		return ""
	case b.Default:
		return "default"
	default:
		return strconv.FormatFloat(b.Value, 'f', -1, 64)
	}
}

func sizedSuffix(min, max ast.Bound) string {
	minText, maxText := formatBound(min), formatBound(max)
	if minText == "" && maxText == "" {
		return ""
	}
	if maxText == "" {
		return "[" + minText + "]"
	}
	return "[" + minText + ", " + maxText + "]"
}

func (p *Printer) typeSpec(t *ast.TypeSpecification) string {
	if t == nil {
		return ""
	}
	switch v := t.Data.(type) {
	case ast.FloatType:
		return "Float" + sizedSuffix(v.Min, v.Max)
	case ast.IntegerType:
		return "Integer" + sizedSuffix(v.Min, v.Max)
	case ast.StringType:
		return "String" + sizedSuffix(v.Min, v.Max)
	case ast.NumericType:
		return "Numeric"
	case ast.BooleanType:
		return "Boolean"
	case ast.UndefType:
		return "Undef"
	case ast.AnyType:
		return "Any"
	case ast.ArrayType:
		if v.Inner == nil {
			return "Array" + sizedSuffix(v.Min, v.Max)
		}
		inner := p.typeSpec(v.Inner)
		suffix := sizedSuffix(v.Min, v.Max)
		if suffix == "" {
			return "Array[" + inner + "]"
		}
		return "Array[" + inner + ", " + strings.Trim(suffix, "[]") + "]"
	case ast.HashType:
		if v.Key == nil {
			return "Hash" + sizedSuffix(v.Min, v.Max)
		}
		inner := p.typeSpec(v.Key) + ", " + p.typeSpec(v.Value)
		suffix := sizedSuffix(v.Min, v.Max)
		if suffix == "" {
			return "Hash[" + inner + "]"
		}
		return "Hash[" + inner + ", " + strings.Trim(suffix, "[]") + "]"
	case ast.PatternType:
		return "Pattern[" + joinComma(quoteAll(v.Regexes)) + "]"
	case ast.EnumType:
		parts := make([]string, len(v.Terms))
		for i, term := range v.Terms {
			parts[i] = p.term(term, 0)
		}
		return "Enum[" + joinComma(parts) + "]"
	case ast.VariantType:
		parts := make([]string, len(v.Types))
		for i, ts := range v.Types {
			parts[i] = p.typeSpec(ts)
		}
		return "Variant[" + joinComma(parts) + "]"
	case ast.RegexType:
		return "Regexp[/" + v.Regex + "/]"
	case ast.OptionalType:
		return "Optional[" + p.optionalInner(v.InnerTerm, v.InnerType) + "]"
	case ast.SensitiveType:
		return "Sensitive[" + p.optionalInner(v.InnerTerm, v.InnerType) + "]"
	case ast.StructType:
		parts := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			parts[i] = structKeyText(e.Key) + " => " + p.typeSpec(e.Value)
		}
		return "Struct[{ " + joinComma(parts) + " }]"
	case ast.TupleType:
		parts := make([]string, len(v.Types))
		for i, ts := range v.Types {
			parts[i] = p.typeSpec(ts)
		}
		suffix := sizedSuffix(v.Min, v.Max)
		if suffix != "" {
			parts = append(parts, strings.Trim(suffix, "[]"))
		}
		return "Tuple[" + joinComma(parts) + "]"
	case ast.ExternalType:
		if len(v.Args) == 0 {
			return v.Name.String()
		}
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = p.expr(a, 0)
		}
		return v.Name.String() + "[" + joinComma(parts) + "]"
	default:
		return ""
	}
}

func (p *Printer) optionalInner(term ast.Term, spec *ast.TypeSpecification) string {
	if term != nil {
		return p.term(term, 0)
	}
	return p.typeSpec(spec)
}

func structKeyText(k ast.StructKey) string {
	switch k.Kind {
	case ast.StructKeyOptional:
		return "Optional['" + k.Literal + "']"
	case ast.StructKeyNotUndef:
		return "NotUndef['" + k.Literal + "']"
	default:
		return "'" + k.Literal + "'"
	}
}

func quoteAll(strs []string) []string {
	out := make([]string, len(strs))
	for i, s := range strs {
		out[i] = "/" + s + "/"
	}
	return out
}
