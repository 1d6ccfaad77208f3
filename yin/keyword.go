package yin

import (
	xml "github.com/andaru/flexml"
	"github.com/derekparker/trie"
)

// YINNamespace is the XML namespace URI YIN statements are expected to
// live in (spec.md §6).
const YINNamespace = "urn:ietf:params:xml:ns:yang:yin:1"

// keywordTrie holds the closed YANG keyword vocabulary, letting the
// resolver do one exact-match lookup instead of a ~70-arm switch. This
// reuses the derekparker/trie package the way openconfig-ygot's
// gnmidiff/setrequest.go uses it (trie.New/Add, then an exact lookup via
// Find), substituting YANG keywords for gNMI path segments.
var keywordTrie = trie.New()

func init() {
	for kind, name := range statementNames {
		keywordTrie.Add(name, kind)
	}
}

// resolveKeyword implements the keyword resolver of spec.md §4.1.
//
// parent is the StatementKind of the enclosing statement, needed to
// disambiguate `text`/`value` into the InlineText/InlineValue pseudo-kinds.
// name is the element name as already namespace-resolved by the
// lexical adapter (flexml resolves Name.Space to the bound URI, matching
// encoding/xml's behavior) — a missing binding surfaces as an empty Space
// only when no xmlns is in scope at all, which this parser
// treats as YANG_NONE per the C source's behavior for "no namespace".
func resolveKeyword(name xml.Name, parent StatementKind) StatementKind {
	if name.Space != YINNamespace {
		// Either no binding was found, or the element lives in a foreign
		// (extension) namespace. No namespace at all yields KindNone; a
		// foreign namespace yields the Extension kind (spec.md §4.1 step 2).
		if name.Space == "" {
			return KindNone
		}
		return KindExtensionInstance
	}

	switch name.Local {
	case "value":
		if parent == KindErrorMessage {
			return KindInlineValue
		}
	case "text":
		return KindInlineText
	}

	if node, ok := keywordTrie.Find(name.Local); ok {
		if kind, ok := node.Meta().(StatementKind); ok {
			return kind
		}
	}
	return KindNone
}
