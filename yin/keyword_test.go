package yin

import (
	"testing"

	xml "github.com/andaru/flexml"
)

func TestResolveKeywordYINNamespace(t *testing.T) {
	got := resolveKeyword(xml.Name{Space: YINNamespace, Local: "module"}, KindNone)
	if got != KindModule {
		t.Errorf("resolveKeyword(module) = %v, want KindModule", got)
	}
}

func TestResolveKeywordUnknownYINElement(t *testing.T) {
	got := resolveKeyword(xml.Name{Space: YINNamespace, Local: "not-a-keyword"}, KindNone)
	if got != KindNone {
		t.Errorf("resolveKeyword(not-a-keyword) = %v, want KindNone", got)
	}
}

func TestResolveKeywordForeignNamespace(t *testing.T) {
	got := resolveKeyword(xml.Name{Space: "urn:example:ext", Local: "anything"}, KindNone)
	if got != KindExtensionInstance {
		t.Errorf("resolveKeyword(foreign ns) = %v, want KindExtensionInstance", got)
	}
}

func TestResolveKeywordNoNamespaceBound(t *testing.T) {
	got := resolveKeyword(xml.Name{Space: "", Local: "anything"}, KindNone)
	if got != KindNone {
		t.Errorf("resolveKeyword(no namespace) = %v, want KindNone", got)
	}
}

func TestResolveKeywordTextValueDisambiguation(t *testing.T) {
	// "text" under any parent is the InlineText pseudo-kind.
	if got := resolveKeyword(xml.Name{Space: YINNamespace, Local: "text"}, KindDescription); got != KindInlineText {
		t.Errorf("resolveKeyword(text) = %v, want KindInlineText", got)
	}
	// "value" is ambiguous: under error-message it's the InlineValue
	// pseudo-kind (error-message's yin-element="true" argument); anywhere
	// else "value" is a real keyword (enum's value, revision-date's value
	// attribute notwithstanding, etc. -- here the <value> statement under
	// <enum>).
	if got := resolveKeyword(xml.Name{Space: YINNamespace, Local: "value"}, KindErrorMessage); got != KindInlineValue {
		t.Errorf("resolveKeyword(value, under error-message) = %v, want KindInlineValue", got)
	}
	if got := resolveKeyword(xml.Name{Space: YINNamespace, Local: "value"}, KindEnum); got != KindValue {
		t.Errorf("resolveKeyword(value, under enum) = %v, want KindValue", got)
	}
}
