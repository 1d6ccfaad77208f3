package yin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeviationRequiresAtLeastOneDeviate(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<deviation target-node="/m:x"/>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindMissingChild) {
		t.Fatalf("ParseModule() error = %v, want ErrKindMissingChild", err)
	}
}

func TestParseDeviateAddRejectsType(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<deviation target-node="/m:x">
			<deviate value="add"><type name="uint8"/></deviate>
		</deviation>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindInvalidDeviateSubstatement) {
		t.Fatalf("ParseModule() error = %v, want ErrKindInvalidDeviateSubstatement", err)
	}
}

func TestParseDeviateReplaceRejectsMustAndUnique(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<deviation target-node="/m:x">
			<deviate value="replace"><must condition="1=1"/></deviate>
		</deviation>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindInvalidDeviateSubstatement) {
		t.Fatalf("ParseModule() error = %v, want ErrKindInvalidDeviateSubstatement", err)
	}
}

func TestParseDeviateDeleteRejectsTypeAndMinMax(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<deviation target-node="/m:x">
			<deviate value="delete"><min-elements value="1"/></deviate>
		</deviation>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindInvalidDeviateSubstatement) {
		t.Fatalf("ParseModule() error = %v, want ErrKindInvalidDeviateSubstatement", err)
	}
}

func TestParseDeviateNotSupported(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<deviation target-node="/m:x">
			<deviate value="not-supported"/>
		</deviation>
	</module>`
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	if _, ok := mod.Deviations[0].Deviates[0].(*DeviateNotSupported); !ok {
		t.Errorf("Deviates[0] = %T, want *DeviateNotSupported", mod.Deviations[0].Deviates[0])
	}
}

func TestParseDeviateUnknownValue(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<deviation target-node="/m:x">
			<deviate value="bogus"/>
		</deviation>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindInvalidEnum) {
		t.Fatalf("ParseModule() error = %v, want ErrKindInvalidEnum", err)
	}
}

func TestParseExtensionInstanceAttributesAsChildren(t *testing.T) {
	a := assert.New(t)
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<description xmlns:ext="urn:example:ext">
			<text>hello</text>
			<ext:note tone="friendly">a nested note</ext:note>
		</description>
	</module>`
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !a.NoError(err) {
		return
	}
	a.Equal("hello", mod.Description)
	if a.Len(mod.Exts, 1) {
		ext := mod.Exts[0]
		a.Equal("note", ext.Local)
		a.Equal(KindDescription, ext.CarrierSlot)
		if a.Len(ext.Children, 1) {
			a.True(ext.Children[0].FromAttribute)
			a.Equal("tone", ext.Children[0].Local)
			a.Equal("friendly", ext.Children[0].Argument)
		}
	}
}

func TestParseExtensionInstanceTextFallback(t *testing.T) {
	a := assert.New(t)
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1" xmlns:ext="urn:example:ext">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<ext:meta>plain text body</ext:meta>
	</module>`
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !a.NoError(err) {
		return
	}
	if a.Len(mod.Exts, 1) {
		a.Equal("meta", mod.Exts[0].Local)
		a.Equal("plain text body", mod.Exts[0].Argument)
		a.Empty(mod.Exts[0].Children)
	}
}
