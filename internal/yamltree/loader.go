package yamltree

import (
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shadowplay-lint/shadowplay/internal/location"
)

// Loader walks one or more YAML documents into located Value trees,
// accumulating non-fatal static errors (duplicate keys, bad merge values)
// along the way — the Go counterpart of located_yaml::YamlLoader, adapted
// from an event-stream consumer to a *yaml.Node tree walker since
// gopkg.in/yaml.v3 hands back a full tree rather than push events. The
// duplicate-key / merge-key resolution logic (insert_new_node) is preserved
// verbatim in spirit: a mapping's key/value pairs are walked in source
// order and folded into an OrderedMap exactly as the Rust doc_stack/
// key_stack pair would, minus the need to track partial nodes across
// events since yaml.v3 already delivers each mapping complete.
type Loader struct {
	Docs     []*Value
	Errors   []Error
	filename string
	source   string
	lineAt   []int // byte offset of the first byte of line i (0-based index = line-1)
}

// Load parses every document in source and returns the assembled Loader.
// A scan/syntax error is fatal for the whole load (mirroring
// load_from_str's Result<_, ScanError>) and is returned as the second value;
// documents successfully decoded before the failure are still available.
func Load(filename, source string) (*Loader, error) {
	l := &Loader{filename: filename, source: source, lineAt: computeLineOffsets(source)}
	dec := yaml.NewDecoder(strings.NewReader(source))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				break
			}
			return l, err
		}
		l.Docs = append(l.Docs, l.convertDocument(&doc))
	}
	return l, nil
}

func computeLineOffsets(source string) []int {
	offsets := []int{0}
	for i, r := range source {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func (l *Loader) locationOf(node *yaml.Node) location.Location {
	line := node.Line
	col := node.Column
	offset := 0
	if line >= 1 && line-1 < len(l.lineAt) {
		offset = l.lineAt[line-1] + (col - 1)
		if offset < 0 {
			offset = 0
		}
	}
	return location.Location{Offset: offset, Line: line, Column: col}
}

// convertDocument handles Event::DocumentEnd's "doc_stack.len() == 0 -> push
// BadValue" branch: a document with no content node at all (not even an
// implicit null) yields BadValue.
func (l *Loader) convertDocument(doc *yaml.Node) *Value {
	if len(doc.Content) == 0 {
		return &Value{Kind: KindBadValue, Location: l.locationOf(doc)}
	}
	return l.convert(doc.Content[0])
}

func (l *Loader) convert(node *yaml.Node) *Value {
	switch node.Kind {
	case yaml.SequenceNode:
		return l.convertSequence(node)
	case yaml.MappingNode:
		return l.convertMapping(node)
	case yaml.ScalarNode:
		return l.convertScalar(node)
	case yaml.AliasNode:
		// yaml.v3 resolves the alias's target node itself; re-walk it to
		// produce an independent copy, matching "insert a deep copy" in
		// located_yaml's Alias(id) handling (anchor_map lookup there is
		// subsumed by yaml.v3's own anchor resolution).
		if node.Alias == nil {
			return &Value{Kind: KindBadValue, Location: l.locationOf(node)}
		}
		return l.convert(node.Alias)
	default:
		return &Value{Kind: KindBadValue, Location: l.locationOf(node)}
	}
}

func (l *Loader) convertSequence(node *yaml.Node) *Value {
	v := &Value{Kind: KindArray, Location: l.locationOf(node), Array: make([]*Value, 0, len(node.Content))}
	for _, child := range node.Content {
		v.Array = append(v.Array, l.convert(child))
	}
	return v
}

// convertMapping is the Go analog of insert_new_node's Hash branch: for
// each key/value pair in source order, either merge (key == "<<"),
// record-and-overwrite a duplicate, or insert fresh.
func (l *Loader) convertMapping(node *yaml.Node) *Value {
	v := &Value{Kind: KindHash, Location: l.locationOf(node), Hash: NewOrderedMap()}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := l.convert(node.Content[i])
		val := l.convert(node.Content[i+1])

		if key.Kind == KindString && key.Str == "<<" {
			l.mergeInto(v.Hash, val)
			continue
		}

		if existing, ok := v.Hash.Get(key); ok {
			l.Errors = append(l.Errors, &DuplicateKey{
				Key:         key,
				FirstMark:   existing.Location,
				FirstValue:  existing,
				SecondMark:  val.Location,
				SecondValue: val,
			})
		}
		v.Hash.Set(key, val)
	}
	return v
}

// mergeInto implements the "<<" merge-key rule: only keys absent from the
// target are copied in, so earlier merges and explicit keys always win over
// later merges (first-wins, per spec §4.8 scenario 2).
func (l *Loader) mergeInto(target *OrderedMap, merged *Value) {
	if merged.Kind != KindHash {
		l.Errors = append(l.Errors, &InvalidAliasMergeValue{At: merged.Location, Value: merged})
		return
	}
	merged.Hash.Each(func(k, v *Value) {
		if !target.Contains(k) {
			target.Set(k, v)
		}
	})
}

func (l *Loader) convertScalar(node *yaml.Node) *Value {
	loc := l.locationOf(node)

	// A quoted or block-style scalar is always a String, taking priority
	// over any resolved tag — matching located_yaml's
	// "style != Plain -> always String" rule.
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return &Value{Kind: KindString, Str: node.Value, Location: loc}
	}

	// An explicit tag annotation in the source (e.g. "!!int 5") is
	// interpreted directly; yaml.v3 sets TaggedStyle only when the tag was
	// spelled out, as opposed to implicitly resolved for a plain scalar.
	if node.Style&yaml.TaggedStyle != 0 {
		return l.scalarFromTag(node, loc)
	}

	return scalarFromPlainText(node.Value, loc)
}

func (l *Loader) scalarFromTag(node *yaml.Node, loc location.Location) *Value {
	tag := strings.TrimPrefix(node.Tag, "!!")
	v := node.Value
	switch tag {
	case "bool":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &Value{Kind: KindBadValue, Location: loc}
		}
		return &Value{Kind: KindBoolean, Bool: b, Location: loc}
	case "int":
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &Value{Kind: KindBadValue, Location: loc}
		}
		return &Value{Kind: KindInteger, Integer: i, Location: loc}
	case "float":
		if _, ok := parseFloat(v); !ok {
			return &Value{Kind: KindBadValue, Location: loc}
		}
		return &Value{Kind: KindReal, Real: v, Location: loc}
	case "null":
		if v == "~" || v == "null" || v == "" {
			return &Value{Kind: KindNull, Location: loc}
		}
		return &Value{Kind: KindBadValue, Location: loc}
	default:
		return &Value{Kind: KindString, Str: v, Location: loc}
	}
}

// scalarFromPlainText infers a Kind for an un-quoted, un-tagged scalar,
// replicating Yaml::from_str's fixed probing order: hex, octal, explicit
// "+" integer, null/bool keywords, decimal integer, float, else string.
func scalarFromPlainText(v string, loc location.Location) *Value {
	if suffix, ok := strings.CutPrefix(v, "0x"); ok {
		if i, err := strconv.ParseInt(suffix, 16, 64); err == nil {
			return &Value{Kind: KindInteger, Integer: i, Location: loc}
		}
	}
	if suffix, ok := strings.CutPrefix(v, "0o"); ok {
		if i, err := strconv.ParseInt(suffix, 8, 64); err == nil {
			return &Value{Kind: KindInteger, Integer: i, Location: loc}
		}
	}
	if suffix, ok := strings.CutPrefix(v, "+"); ok {
		if i, err := strconv.ParseInt(suffix, 10, 64); err == nil {
			return &Value{Kind: KindInteger, Integer: i, Location: loc}
		}
	}
	switch v {
	case "~", "null":
		return &Value{Kind: KindNull, Location: loc}
	case "true":
		return &Value{Kind: KindBoolean, Bool: true, Location: loc}
	case "false":
		return &Value{Kind: KindBoolean, Bool: false, Location: loc}
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return &Value{Kind: KindInteger, Integer: i, Location: loc}
	}
	if _, ok := parseFloat(v); ok {
		return &Value{Kind: KindReal, Real: v, Location: loc}
	}
	return &Value{Kind: KindString, Str: v, Location: loc}
}

func parseFloat(v string) (float64, bool) {
	switch v {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return 1, true
	case "-.inf", "-.Inf", "-.INF":
		return -1, true
	case ".nan", "NaN", ".NAN":
		return 0, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
