package parser

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/lexer"
)

func lowerAll(segments []string) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = strings.ToLower(s)
	}
	return out
}

func protectClose(tag string) func(location.Span) (location.Span, location.Span, *Error) {
	return lexer.Protect("Closing '"+tag+"' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
		n, e := lexer.Literal(lexer.Sep0(sp), tag)
		return n, n, e
	})
}

// ParseStatements parses zero or more statements, stopping (without
// consuming) at EOF or a closing '}' left for the caller to consume.
func ParseStatements(s location.Span) ([]*ast.Statement, location.Span, *Error) {
	var stmts []*ast.Statement
	cur := s
	for {
		cur = lexer.Sep0(cur)
		if _, ok := cur.Peek(); !ok {
			return stmts, cur, nil
		}
		if _, err := lexer.Literal(cur, "}"); err == nil {
			return stmts, cur, nil
		}
		stmt, next, err := ParseStatement(cur)
		if err != nil {
			return stmts, cur, err
		}
		stmts = append(stmts, stmt)
		cur = next
		if afterSemi, serr := lexer.Literal(lexer.Sep0(cur), ";"); serr == nil {
			cur = afterSemi
		}
	}
}

// ParseStatement is the ordered alternative over every statement form, per
// spec §4.6.
func ParseStatement(s location.Span) (*ast.Statement, location.Span, *Error) {
	if stmt, next, err := parseIfElse(s); err == nil {
		return stmt, next, nil
	}
	if stmt, next, err := parseUnless(s); err == nil {
		return stmt, next, nil
	}
	if stmt, next, err := parseCase(s); err == nil {
		return stmt, next, nil
	}
	if stmt, next, err := parseToplevel(s); err == nil {
		return stmt, next, nil
	}
	if stmt, next, err := parseResourceDefaults(s); err == nil {
		return stmt, next, nil
	}
	if stmt, next, err := parseRelationListStatement(s); err == nil {
		return stmt, next, nil
	}
	expr, next, err := ParseExpr(s)
	if err != nil {
		return nil, s, err
	}
	rng := location.RangeFromSpans(s, next)
	return ast.NewStatement(rng, ast.ExpressionStatement{Expr: expr}), next, nil
}

func parseConditionAndBody(s location.Span) (ast.Expr, []*ast.Statement, location.Span, *Error) {
	cond, afterCond, cerr := lexer.SpaceDelimited(s, ParseExpr)
	if cerr != nil {
		return nil, nil, s, cerr
	}
	body, after, berr := lexer.CurlyDelimited(afterCond, ParseStatements)
	if berr != nil {
		return nil, nil, s, berr
	}
	return cond, body, after, nil
}

func parseIfElse(s location.Span) (*ast.Statement, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "if")
	if err != nil || followedByIdentChar(next) {
		return nil, start, &Error{Range: location.RangeAt(s), Message: "'if' expected"}
	}
	cond, body, after, cerr := parseConditionAndBody(next)
	if cerr != nil {
		return nil, start, cerr
	}
	branches := []ast.IfElseBranch{{Condition: cond, Body: body}}
	cur := after
	for {
		afterSep := lexer.Sep0(cur)
		afterElsif, eerr := lexer.Literal(afterSep, "elsif")
		if eerr != nil {
			break
		}
		econd, ebody, eafter, ecerr := parseConditionAndBody(afterElsif)
		if ecerr != nil {
			return nil, start, ecerr
		}
		branches = append(branches, ast.IfElseBranch{Condition: econd, Body: ebody})
		cur = eafter
	}
	afterSep := lexer.Sep0(cur)
	if afterElse, eerr := lexer.Literal(afterSep, "else"); eerr == nil {
		ebody, eafter, eberr := lexer.CurlyDelimited(lexer.Sep0(afterElse), ParseStatements)
		if eberr != nil {
			return nil, start, eberr
		}
		branches = append(branches, ast.IfElseBranch{Condition: nil, Body: ebody})
		cur = eafter
	}
	rng := location.RangeFromSpans(start, cur)
	return ast.NewStatement(rng, ast.IfElseStatement{Branches: branches}), cur, nil
}

func parseUnless(s location.Span) (*ast.Statement, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "unless")
	if err != nil || followedByIdentChar(next) {
		return nil, start, &Error{Range: location.RangeAt(s), Message: "'unless' expected"}
	}
	cond, body, after, cerr := parseConditionAndBody(next)
	if cerr != nil {
		return nil, start, cerr
	}
	var elseBody []*ast.Statement
	cur := after
	afterSep := lexer.Sep0(cur)
	if afterElse, eerr := lexer.Literal(afterSep, "else"); eerr == nil {
		ebody, eafter, eberr := lexer.CurlyDelimited(lexer.Sep0(afterElse), ParseStatements)
		if eberr != nil {
			return nil, start, eberr
		}
		elseBody = ebody
		cur = eafter
	}
	rng := location.RangeFromSpans(start, cur)
	return ast.NewStatement(rng, ast.UnlessStatement{Condition: cond, Body: body, Else: elseBody}), cur, nil
}

func parseCase(s location.Span) (*ast.Statement, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "case")
	if err != nil || followedByIdentChar(next) {
		return nil, start, &Error{Range: location.RangeAt(s), Message: "'case' expected"}
	}
	cond, afterCond, cerr := lexer.SpaceDelimited(next, ParseExpr)
	if cerr != nil {
		return nil, start, cerr
	}
	arms, after, aerr := lexer.CurlyDelimited(afterCond, parseCaseArms)
	if aerr != nil {
		return nil, start, aerr
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewStatement(rng, ast.CaseStatement{Condition: cond, Arms: arms}), after, nil
}

func parseCaseArms(s location.Span) ([]ast.CaseArm, location.Span, *Error) {
	var arms []ast.CaseArm
	cur := s
	for {
		cur = lexer.Sep0(cur)
		arm, next, err := parseCaseArm(cur)
		if err != nil {
			return arms, cur, nil
		}
		arms = append(arms, arm)
		cur = next
	}
}

func parseCaseArm(s location.Span) (ast.CaseArm, location.Span, *Error) {
	var zero ast.CaseArm
	start := s
	if afterDefault, err := lexer.Literal(s, "default"); err == nil && !followedByIdentChar(afterDefault) {
		next := lexer.Sep0(afterDefault)
		afterColon, cerr := lexer.Literal(next, ":")
		if cerr != nil {
			return zero, start, cerr
		}
		body, after, berr := lexer.CurlyDelimited(lexer.Sep0(afterColon), ParseStatements)
		if berr != nil {
			return zero, start, berr
		}
		return ast.CaseArm{Body: body}, after, nil
	}
	values, next, err := lexer.CommaSeparated1(s, ParseExpr)
	if err != nil {
		return zero, start, err
	}
	next = lexer.Sep0(next)
	afterColon, cerr := lexer.Literal(next, ":")
	if cerr != nil {
		return zero, start, cerr
	}
	body, after, berr := lexer.CurlyDelimited(lexer.Sep0(afterColon), ParseStatements)
	if berr != nil {
		return zero, start, berr
	}
	return ast.CaseArm{Values: values, Body: body}, after, nil
}

// ---- resource attributes, declarations, defaults ----

func parseResourceAttributeName(s location.Span) (string, location.Span, *Error) {
	if name, next, err := lexer.LowercaseIdentifier(s); err == nil {
		return name, next, nil
	}
	return parseQuotedStringLiteral(s)
}

func parseResourceAttribute(s location.Span) (ast.ResourceAttribute, location.Span, *Error) {
	start := s
	if afterStar, err := lexer.Literal(s, "*"); err == nil {
		afterSep := lexer.Sep0(afterStar)
		afterArrow, aerr := lexer.Literal(afterSep, "=>")
		if aerr != nil {
			return nil, start, aerr
		}
		term, after, terr := lexer.SpaceDelimited(afterArrow, ParseTerm)
		if terr != nil {
			return nil, start, terr
		}
		return ast.ResourceAttributeGroup{Value: term}, after, nil
	}
	name, next, err := parseResourceAttributeName(s)
	if err != nil {
		return nil, start, err
	}
	next = lexer.Sep0(next)
	afterArrow, aerr := lexer.Literal(next, "=>")
	if aerr != nil {
		return nil, start, aerr
	}
	value, after, verr := lexer.SpaceDelimited(afterArrow, ParseExpr)
	if verr != nil {
		return nil, start, verr
	}
	return ast.ResourceAttributeName{Name: name, Value: value}, after, nil
}

func parseResourceAttributes(s location.Span) ([]ast.ResourceAttribute, location.Span, *Error) {
	return lexer.CommaSeparated0(s, parseResourceAttribute)
}

func parseResource(s location.Span) (*ast.Resource, location.Span, *Error) {
	start := s
	title, next, err := ParseExpr(s)
	if err != nil {
		return nil, start, err
	}
	next = lexer.Sep0(next)
	afterColon, cerr := lexer.Literal(next, ":")
	if cerr != nil {
		return nil, start, cerr
	}
	attrs, after, aerr := parseResourceAttributes(lexer.Sep0(afterColon))
	if aerr != nil {
		return nil, start, aerr
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewResource(rng, title, attrs), after, nil
}

func parseResourcesBySemi(s location.Span) ([]*ast.Resource, location.Span, *Error) {
	var items []*ast.Resource
	first, next, err := parseResource(s)
	if err != nil {
		return items, s, nil
	}
	items = append(items, first)
	cur := next
	for {
		afterSep := lexer.Sep0(cur)
		afterSemi, serr := lexer.Literal(afterSep, ";")
		if serr != nil {
			break
		}
		v, n, perr := parseResource(lexer.Sep0(afterSemi))
		if perr != nil {
			break
		}
		items = append(items, v)
		cur = n
	}
	return items, cur, nil
}

func parseNamespacedCamelCase(s location.Span) ([]string, location.Span, *Error) {
	first, next, err := lexer.CamelCaseIdentifier(s)
	if err != nil {
		return nil, s, err
	}
	segments := []string{first}
	cur := next
	for {
		afterSep, serr := lexer.Literal(cur, "::")
		if serr != nil {
			break
		}
		seg, n, cerr := lexer.CamelCaseIdentifier(afterSep)
		if cerr != nil {
			break
		}
		segments = append(segments, seg)
		cur = n
	}
	return segments, cur, nil
}

func parseResourceSet(s location.Span) (*ast.ResourceSet, location.Span, *Error) {
	start := s
	virtual := false
	cur := s
	if afterAt, err := lexer.Literal(s, "@"); err == nil {
		virtual = true
		cur = afterAt
	}
	name, toplevel, next, err := lexer.NamespacedIdentifier(cur, lexer.LowercaseIdentifier)
	if err != nil {
		return nil, start, err
	}
	idRng := location.RangeFromSpans(cur, next)
	id := ast.NewLowerIdentifier(idRng, splitNamespaced(name), toplevel)
	afterBrace, berr := lexer.Literal(lexer.Sep0(next), "{")
	if berr != nil {
		return nil, start, berr
	}
	resources, afterResources, rerr := parseResourcesBySemi(lexer.Sep0(afterBrace))
	if rerr != nil {
		return nil, start, rerr
	}
	closed, cerr := protectClose("}")(afterResources)
	if cerr != nil {
		return nil, start, cerr
	}
	rng := location.RangeFromSpans(start, closed)
	return ast.NewResourceSet(rng, id, resources, virtual), closed, nil
}

func parseResourceDefaults(s location.Span) (*ast.Statement, location.Span, *Error) {
	start := s
	segments, next, ferr := parseNamespacedCamelCase(s)
	if ferr != nil {
		return nil, start, ferr
	}
	afterBrace, berr := lexer.Literal(lexer.Sep0(next), "{")
	if berr != nil {
		return nil, start, berr
	}
	attrs, afterAttrs, aerr := parseResourceAttributes(lexer.Sep0(afterBrace))
	if aerr != nil {
		return nil, start, aerr
	}
	closed, cerr := protectClose("}")(afterAttrs)
	if cerr != nil {
		return nil, start, cerr
	}
	idRng := location.RangeFromSpans(s, next)
	id := ast.NewLowerIdentifier(idRng, lowerAll(segments), false)
	rng := location.RangeFromSpans(start, closed)
	return ast.NewStatement(rng, ast.ResourceDefaultsStatement{Type: id, Attributes: attrs}), closed, nil
}

// parseResourceCollection scans `Name <| search |>` or the exported
// `Name <<| search |>>` form.
func parseResourceCollection(s location.Span) (*ast.ResourceCollectionTerm, location.Span, *Error) {
	start := s
	segments, next, ferr := parseNamespacedCamelCase(s)
	if ferr != nil {
		return nil, start, ferr
	}
	idRng := location.RangeFromSpans(s, next)
	id := ast.NewLowerIdentifier(idRng, lowerAll(segments), false)

	afterSep := lexer.Sep0(next)
	exported := true
	afterOpen, oerr := lexer.Literal(afterSep, "<<|")
	if oerr != nil {
		exported = false
		afterOpen, oerr = lexer.Literal(afterSep, "<|")
		if oerr != nil {
			return nil, start, oerr
		}
	}
	closeTag := "|>"
	if exported {
		closeTag = "|>>"
	}
	var search ast.Expr
	afterSearch := lexer.Sep0(afterOpen)
	if _, err := lexer.Literal(afterSearch, closeTag); err != nil {
		v, n, serr := ParseExpr(afterSearch)
		if serr != nil {
			return nil, start, serr
		}
		search = v
		afterSearch = lexer.Sep0(n)
	}
	closed, cerr := protectClose(closeTag)(afterSearch)
	if cerr != nil {
		return nil, start, cerr
	}
	rng := location.RangeFromSpans(start, closed)
	return ast.NewResourceCollectionTerm(rng, id, search, exported), closed, nil
}

func parseRelationTarget(s location.Span) (ast.RelationTarget, location.Span, *Error) {
	if coll, next, err := parseResourceCollection(s); err == nil {
		return coll, next, nil
	}
	set, next, err := parseResourceSet(s)
	if err != nil {
		return nil, s, err
	}
	return set, next, nil
}

func parseRelationElt(s location.Span) (ast.RelationElt, location.Span, *Error) {
	var zero ast.RelationElt
	if afterBr, ok := noArgType(s, "["); ok {
		targets, after, err := lexer.CommaSeparated1(lexer.Sep0(afterBr), parseRelationTarget)
		if err != nil {
			return zero, s, err
		}
		closed, cerr := protectClose("]")(after)
		if cerr != nil {
			return zero, s, cerr
		}
		return ast.RelationElt{Targets: targets}, closed, nil
	}
	target, next, err := parseRelationTarget(s)
	if err != nil {
		return zero, s, err
	}
	return ast.RelationElt{Targets: []ast.RelationTarget{target}}, next, nil
}

var relationOps = []ast.RelationType{
	ast.RelationExecOrderRight,
	ast.RelationNotifyRight,
	ast.RelationExecOrderLeft,
	ast.RelationNotifyLeft,
}

func parseRelationList(s location.Span) (*ast.RelationList, location.Span, *Error) {
	start := s
	head, next, err := parseRelationElt(s)
	if err != nil {
		return nil, start, err
	}
	afterSep := lexer.Sep0(next)
	for _, op := range relationOps {
		afterOp, operr := lexer.Literal(afterSep, string(op))
		if operr != nil {
			continue
		}
		tail, afterTail, terr := parseRelationList(lexer.Sep0(afterOp))
		if terr != nil {
			return nil, start, &Error{Range: location.RangeAt(afterOp), Message: "relation target expected", Fatal: true}
		}
		rng := location.RangeFromSpans(start, afterTail)
		return ast.NewRelationList(rng, head, op, tail), afterTail, nil
	}
	rng := location.RangeFromSpans(start, next)
	return ast.NewRelationList(rng, head, "", nil), next, nil
}

func parseRelationListStatement(s location.Span) (*ast.Statement, location.Span, *Error) {
	start := s
	list, next, err := parseRelationList(s)
	if err != nil {
		return nil, start, err
	}
	rng := location.RangeFromSpans(start, next)
	return ast.NewStatement(rng, ast.RelationListStatement{List: list}), next, nil
}

// ---- toplevel definitions ----

func parseArgumentList(s location.Span) ([]*ast.Argument, location.Span, *Error) {
	if _, ok := noArgType(lexer.Sep0(s), "("); !ok {
		return nil, s, nil
	}
	return lexer.RoundCommaSeparated0(lexer.Sep0(s), parseArgument)
}

func parseDefinitionName(s location.Span) (*ast.LowerIdentifier, location.Span, *Error) {
	name, toplevel, next, err := lexer.NamespacedIdentifier(s, lexer.LowercaseIdentifier)
	if err != nil {
		return nil, s, err
	}
	rng := location.RangeFromSpans(s, next)
	return ast.NewLowerIdentifier(rng, splitNamespaced(name), toplevel), next, nil
}

func parseClassDefinePlan(s location.Span, keyword string, kind ast.ToplevelKind, allowInherits bool) (*ast.Toplevel, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, keyword)
	if err != nil || followedByIdentChar(next) {
		return nil, start, &Error{Range: location.RangeAt(s), Message: "'" + keyword + "' expected"}
	}
	next = lexer.Sep0(next)
	id, afterName, nerr := parseDefinitionName(next)
	if nerr != nil {
		return nil, start, nerr
	}
	args, afterArgs, aerr := parseArgumentList(afterName)
	if aerr != nil {
		return nil, start, aerr
	}
	cur := afterArgs
	var parent *ast.LowerIdentifier
	if allowInherits {
		afterSep := lexer.Sep0(cur)
		if afterKw, ierr := lexer.Literal(afterSep, "inherits"); ierr == nil {
			p, afterParent, perr := parseDefinitionName(lexer.Sep0(afterKw))
			if perr != nil {
				return nil, start, perr
			}
			parent = p
			cur = afterParent
		}
	}
	body, afterBody, berr := lexer.CurlyDelimited(cur, ParseStatements)
	if berr != nil {
		return nil, start, berr
	}
	rng := location.RangeFromSpans(start, afterBody)
	return ast.NewToplevel(rng, kind, id, args, parent, body), afterBody, nil
}

// parseTypeAliasName parses a typedef's CamelCase namespaced name (type
// aliases are referenced the same way built-in types are, e.g.
// "My::Module::Type", so unlike class/define/plan/function names they are
// not lowercased).
func parseTypeAliasName(s location.Span) (*ast.LowerIdentifier, location.Span, *Error) {
	segments, next, err := parseNamespacedCamelCase(s)
	if err != nil {
		return nil, s, err
	}
	rng := location.RangeFromSpans(s, next)
	return ast.NewLowerIdentifier(rng, segments, false), next, nil
}

func parseTypeDef(s location.Span) (*ast.Toplevel, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "type")
	if err != nil || followedByIdentChar(next) {
		return nil, start, &Error{Range: location.RangeAt(s), Message: "'type' expected"}
	}
	id, afterName, nerr := parseTypeAliasName(lexer.Sep0(next))
	if nerr != nil {
		return nil, start, nerr
	}
	afterEq, eerr := lexer.Literal(lexer.Sep0(afterName), "=")
	if eerr != nil {
		return nil, start, eerr
	}
	spec, after, serr := lexer.SpaceDelimited(afterEq, ParseTypeSpecification)
	if serr != nil {
		return nil, start, serr
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewTypeAliasToplevel(rng, id, spec), after, nil
}

func parseFunctionDef(s location.Span) (*ast.Toplevel, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "function")
	if err != nil || followedByIdentChar(next) {
		return nil, start, &Error{Range: location.RangeAt(s), Message: "'function' expected"}
	}
	id, afterName, nerr := parseDefinitionName(lexer.Sep0(next))
	if nerr != nil {
		return nil, start, nerr
	}
	args, afterArgs, aerr := parseArgumentList(afterName)
	if aerr != nil {
		return nil, start, aerr
	}
	cur := afterArgs
	var returnType *ast.TypeSpecification
	afterSep := lexer.Sep0(cur)
	if afterArrow, rerr := lexer.Literal(afterSep, ">>"); rerr == nil {
		rt, afterRt, rterr := lexer.SpaceDelimited(afterArrow, ParseTypeSpecification)
		if rterr != nil {
			return nil, start, rterr
		}
		returnType = rt
		cur = afterRt
	}
	body, afterBody, berr := lexer.CurlyDelimited(cur, ParseStatements)
	if berr != nil {
		return nil, start, berr
	}
	rng := location.RangeFromSpans(start, afterBody)
	toplevel := ast.NewToplevel(rng, ast.ToplevelFunctionDef, id, args, nil, body)
	toplevel.WithReturnType(returnType)
	return toplevel, afterBody, nil
}

func parseToplevel(s location.Span) (*ast.Statement, location.Span, *Error) {
	start := s
	if t, next, err := parseClassDefinePlan(s, "class", ast.ToplevelClass, true); err == nil {
		return ast.NewStatement(location.RangeFromSpans(start, next), ast.ToplevelStatement{Toplevel: *t}), next, nil
	}
	if t, next, err := parseClassDefinePlan(s, "define", ast.ToplevelDefinition, false); err == nil {
		return ast.NewStatement(location.RangeFromSpans(start, next), ast.ToplevelStatement{Toplevel: *t}), next, nil
	}
	if t, next, err := parseClassDefinePlan(s, "plan", ast.ToplevelPlan, false); err == nil {
		return ast.NewStatement(location.RangeFromSpans(start, next), ast.ToplevelStatement{Toplevel: *t}), next, nil
	}
	if t, next, err := parseTypeDef(s); err == nil {
		return ast.NewStatement(location.RangeFromSpans(start, next), ast.ToplevelStatement{Toplevel: *t}), next, nil
	}
	if t, next, err := parseFunctionDef(s); err == nil {
		return ast.NewStatement(location.RangeFromSpans(start, next), ast.ToplevelStatement{Toplevel: *t}), next, nil
	}
	return nil, start, &Error{Range: location.RangeAt(s), Message: "toplevel definition expected"}
}
