package yin

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// handleComparer treats two Handles as equal when their interned strings
// match, mirroring Handle's documented identity-by-dictionary semantics
// (dict.go) rather than comparing Handles by their concrete values.
var handleComparer = cmp.Comparer(func(a, b Handle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

// TestParseModuleDeterministic exercises spec.md §8's round-trip property
// the way it applies without a YIN writer in scope (SPEC_FULL.md §1
// Non-goals): parsing the same document twice, with independent
// dictionaries, must yield structurally equal trees.
func TestParseModuleDeterministic(t *testing.T) {
	first, _, err := ParseModule(strings.NewReader(testModuleDoc), NewDictionary())
	if err != nil {
		t.Fatalf("first ParseModule() error = %v", err)
	}
	second, _, err := ParseModule(strings.NewReader(testModuleDoc), NewDictionary())
	if err != nil {
		t.Fatalf("second ParseModule() error = %v", err)
	}
	if diff := cmp.Diff(first, second, handleComparer, cmp.AllowUnexported(Module{})); diff != "" {
		t.Errorf("repeated parse of the same document produced different trees (-first +second):\n%s", diff)
	}
}

// TestEnumValueRoundTrips covers invariant 7 for enum values: the decoded
// int32 of an explicit value at either end of the documented range echoes
// the input literal.
func TestEnumValueRoundTrips(t *testing.T) {
	doc := wrapTypedef(`<type name="enumeration">
		<enum name="a"><value value="-2147483648"/></enum>
		<enum name="b"><value value="2147483647"/></enum>
	</type>`)
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	enums := mod.Typedefs[0].Type.Enums
	if got, want := enums[0].Value, int32(-2147483648); got != want {
		t.Errorf("enums[0].Value = %d, want %d", got, want)
	}
	if got, want := enums[1].Value, int32(2147483647); got != want {
		t.Errorf("enums[1].Value = %d, want %d", got, want)
	}
}

// TestBitPositionRoundTrips covers invariant 7 for bit positions: the
// decoded uint32 lies in the documented range and echoes the input literal.
func TestBitPositionRoundTrips(t *testing.T) {
	doc := wrapTypedef(`<type name="bits">
		<bit name="a"><position value="0"/></bit>
		<bit name="b"><position value="4294967295"/></bit>
	</type>`)
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	bits := mod.Typedefs[0].Type.Bits
	if got, want := bits[0].Position, uint32(0); got != want {
		t.Errorf("bits[0].Position = %d, want %d", got, want)
	}
	if got, want := bits[1].Position, uint32(4294967295); got != want {
		t.Errorf("bits[1].Position = %d, want %d", got, want)
	}
}
