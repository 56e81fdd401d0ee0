package lint

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// MetaParameters is the fixed set of resource meta-parameters accepted on
// every resource type regardless of its specific schema, per spec §3.
var MetaParameters = attrSet(
	"before", "require", "notify", "subscribe", "alias",
	"audit", "loglevel", "noop", "schedule", "stage", "tag",
)

// BuiltinResourceSchemas maps a builtin resource type name to its accepted
// attribute names. This is a representative core subset of Puppet's
// built-in resource types — enough to exercise InvalidResourceSetInvocation
// and the attribute-name checks spec §4.7 names (ExecAttributes,
// FileModeAttributeIsString, ...), not Puppet's entire type catalog, which
// is out of scope for a static-analysis tool that never loads Puppet's
// Ruby runtime (spec §1's "no catalog compilation" non-goal).
var BuiltinResourceSchemas = map[string]map[string]bool{
	"file": attrSet("ensure", "path", "owner", "group", "mode", "content", "source",
		"recurse", "purge", "force", "replace", "backup", "links", "target", "checksum", "provider"),
	"package": attrSet("ensure", "name", "provider", "source", "install_options",
		"uninstall_options", "version", "responsefile"),
	"service": attrSet("ensure", "enable", "name", "provider", "hasstatus", "hasrestart",
		"start", "stop", "restart", "status", "pattern"),
	"exec": attrSet("command", "creates", "cwd", "environment", "group", "logoutput",
		"onlyif", "path", "provider", "refresh", "refreshonly", "returns", "timeout",
		"tries", "try_sleep", "unless", "user"),
	"user": attrSet("ensure", "name", "uid", "gid", "groups", "home", "shell",
		"password", "managehome", "comment"),
	"group":     attrSet("ensure", "name", "gid", "system"),
	"cron":      attrSet("ensure", "command", "user", "minute", "hour", "monthday", "month", "weekday", "environment", "special"),
	"notify":    attrSet("message", "name", "withpath"),
	"file_line": attrSet("ensure", "path", "line", "match", "after", "replace"),
}

func attrSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Ctx is the process-wide lint context: the registry of every top-level
// named block discovered across the parsed module set, built once per run
// by walking every parsed file (spec §3's "Lifecycle"), plus the static
// builtin-resource-schema and meta-parameter tables. It is filled only by
// RegisterFile; the Walker and the passes read it but never write it.
type Ctx struct {
	Blocks map[string]*ast.Toplevel
}

func NewCtx() *Ctx {
	return &Ctx{Blocks: make(map[string]*ast.Toplevel)}
}

// RegisterFile walks one file's top-level statements, recording every
// class/define/plan/function/typedef it declares into the block registry.
func (c *Ctx) RegisterFile(stmts []*ast.Statement) {
	for _, stmt := range stmts {
		ts, ok := stmt.Value.(ast.ToplevelStatement)
		if !ok {
			continue
		}
		t := ts.Toplevel
		c.Blocks[strings.ToLower(t.FullyQualifiedName())] = &t
	}
}

// LookupBlock resolves a fully-qualified ::-namespaced name against the
// block registry, case-insensitively (Puppet resource/class
// names are case-insensitive).
func (c *Ctx) LookupBlock(name string) (*ast.Toplevel, bool) {
	b, ok := c.Blocks[strings.ToLower(name)]
	return b, ok
}

// LookupResourceSchema resolves name against BuiltinResourceSchemas.
func (c *Ctx) LookupResourceSchema(name string) (map[string]bool, bool) {
	s, ok := BuiltinResourceSchemas[strings.ToLower(name)]
	return s, ok
}

// IsMetaScopeVariable reports whether name is one of the always-
// defined meta-set variables from spec §8's testable property for
// ReferenceToUndefinedValue ("name", "title", "facts", "trusted",
// "server_facts").
func IsMetaScopeVariable(name string) bool {
	switch name {
	case "name", "title", "facts", "trusted", "server_facts":
		return true
	default:
		return false
	}
}
