package yin

import (
	"testing"

	xml "github.com/andaru/flexml"
)

func elem(attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Space: YINNamespace, Local: "x"}, Attr: attrs}
}

func attr(local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: local}, Value: value}
}

func TestBindArgumentSuccess(t *testing.T) {
	dict := NewDictionary()
	h, err := bindArgument(dict, KindModule, elem(attr("name", "example")))
	if err != nil {
		t.Fatalf("bindArgument() error = %v", err)
	}
	if h.String() != "example" {
		t.Errorf("bindArgument() = %q, want %q", h.String(), "example")
	}
}

func TestBindArgumentMissingAttribute(t *testing.T) {
	dict := NewDictionary()
	_, err := bindArgument(dict, KindModule, elem())
	if !IsKind(err, ErrKindMissingAttribute) {
		t.Fatalf("bindArgument() error = %v, want ErrKindMissingAttribute", err)
	}
}

func TestBindArgumentUnexpectedAttribute(t *testing.T) {
	dict := NewDictionary()
	_, err := bindArgument(dict, KindModule, elem(attr("bogus", "1")))
	if !IsKind(err, ErrKindUnexpectedAttribute) {
		t.Fatalf("bindArgument() error = %v, want ErrKindUnexpectedAttribute", err)
	}
}

func TestBindArgumentIgnoresUnrelatedKnownAttribute(t *testing.T) {
	// "condition" is a recognised attribute name (belongs to must/when),
	// just not the one KindModule expects; bindArgument should skip past it
	// and keep looking rather than rejecting outright.
	dict := NewDictionary()
	h, err := bindArgument(dict, KindModule, elem(attr("condition", "1"), attr("name", "example")))
	if err != nil {
		t.Fatalf("bindArgument() error = %v", err)
	}
	if h.String() != "example" {
		t.Errorf("bindArgument() = %q, want %q", h.String(), "example")
	}
}

func TestBindArgumentViaTextReturnsNil(t *testing.T) {
	dict := NewDictionary()
	h, err := bindArgument(dict, KindDescription, elem())
	if err != nil || h != nil {
		t.Fatalf("bindArgument(KindDescription) = %v, %v, want nil, nil", h, err)
	}
}

func TestBindArgumentInvalidLexicalClass(t *testing.T) {
	dict := NewDictionary()
	// KindModule's argument is an Identifier; a leading digit is invalid.
	_, err := bindArgument(dict, KindModule, elem(attr("name", "1bad")))
	if err == nil {
		t.Error("bindArgument() expected a lexical validation error")
	}
}

func TestArgumentKindByName(t *testing.T) {
	if k, ok := argumentKindByName("name"); !ok || k != ArgName {
		t.Errorf("argumentKindByName(name) = %v, %v", k, ok)
	}
	if _, ok := argumentKindByName("not-a-real-attribute"); ok {
		t.Error("argumentKindByName() expected not-ok for an unrecognised name")
	}
}
