package yamltree

import (
	"fmt"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/location"
)

// DuplicateKey is recorded when the same map key literal occurs twice in a
// single mapping without going through a "<<" merge; the later value still
// replaces the earlier one in the resulting tree.
type DuplicateKey struct {
	Key         *Value
	FirstMark   location.Location
	FirstValue  *Value
	SecondMark  location.Location
	SecondValue *Value
}

// InvalidAliasMergeValue is recorded when a "<<" key's value is not a Hash
// (located_yaml's Rust implementation panics via todo!() on the
// array-of-hashes case; spec §4.8 requires a diagnostic instead, so both
// non-hash and array values land here).
type InvalidAliasMergeValue struct {
	At    location.Location
	Value *Value
}

// Error is the sum type of non-fatal static YAML errors accumulated by a
// Loader, mirroring located_yaml::error::Error.
type Error interface {
	error
	Mark() location.Location
}

func (e *DuplicateKey) Mark() location.Location { return e.FirstMark }

func (e *DuplicateKey) Error() string {
	key, _ := e.Key.GetString()
	if key == "" && e.Key.Kind != KindString {
		key = e.Key.Kind.String()
	}
	return fmt.Sprintf("Duplicate key %q. First occurred at line %d, column %d",
		key, e.FirstMark.Line, e.FirstMark.Column)
}

func (e *InvalidAliasMergeValue) Mark() location.Location { return e.At }

func (e *InvalidAliasMergeValue) Error() string {
	return fmt.Sprintf("Tried to merge keys from anchor which has type %q", e.Value.Kind.String())
}

// ToDiagnostic normalizes a located-YAML error into the shared diagnostics
// surface (C12), per spec §7's "YAML static error... non-fatal; collected
// alongside the parsed documents".
func ToDiagnostic(filename string, err Error) *diag.Diagnostic {
	loc := err.Mark()
	rng := location.Range{Filename: filename, Start: loc, End: loc}
	return diag.Yaml(rng, err.Error())
}
