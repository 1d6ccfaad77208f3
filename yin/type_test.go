package yin

import (
	"strings"
	"testing"
)

// wrapTypedef embeds a <typedef> inside a minimal, otherwise-valid module so
// parseType/parseTypedef run through the real ParseModule entry point rather
// than being exercised as isolated functions.
func wrapTypedef(typedefBody string) string {
	return `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<typedef name="td">` + typedefBody + `</typedef>
	</module>`
}

func TestParseTypeEnumDuplicateValue(t *testing.T) {
	doc := wrapTypedef(`<type name="enumeration">
		<enum name="a"><value value="1"/></enum>
		<enum name="b"><value value="1"/></enum>
	</type>`)
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}

func TestParseTypeEnumDuplicateName(t *testing.T) {
	doc := wrapTypedef(`<type name="enumeration">
		<enum name="a"/>
		<enum name="a"><value value="5"/></enum>
	</type>`)
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}

func TestParseTypeBitPositionAutoIncrementsFromLastExplicit(t *testing.T) {
	doc := wrapTypedef(`<type name="bits">
		<bit name="a"/>
		<bit name="b"><position value="10"/></bit>
		<bit name="c"/>
	</type>`)
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	bits := mod.Typedefs[0].Type.Bits
	if len(bits) != 3 {
		t.Fatalf("got %d bits, want 3", len(bits))
	}
	if bits[0].Position != 0 {
		t.Errorf("bits[0].Position = %d, want 0", bits[0].Position)
	}
	if bits[1].Position != 10 {
		t.Errorf("bits[1].Position = %d, want 10", bits[1].Position)
	}
	if bits[2].Position != 11 {
		t.Errorf("bits[2].Position = %d, want 11 (continuing from the last explicit value)", bits[2].Position)
	}
}

func TestParseTypeBitDuplicatePosition(t *testing.T) {
	doc := wrapTypedef(`<type name="bits">
		<bit name="a"><position value="3"/></bit>
		<bit name="b"><position value="3"/></bit>
	</type>`)
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}

func TestParseTypedefSelfNameCollision(t *testing.T) {
	doc := wrapTypedef(``)
	doc = strings.Replace(doc, `<typedef name="td">`, `<typedef name="uint8">`, 1)
	doc = strings.Replace(doc, `</typedef>`, `<type name="uint8"/></typedef>`, 1)
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}

func TestParsePatternWithoutModifierKeepsMatchSentinel(t *testing.T) {
	doc := wrapTypedef(`<type name="string">
		<pattern value="[0-9]+"/>
	</type>`)
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	pat := mod.Typedefs[0].Type.Patterns[0]
	if pat.InvertMatch() {
		t.Error("InvertMatch() = true, want false (no modifier child)")
	}
	if pat.Text() != "[0-9]+" {
		t.Errorf("Text() = %q, want %q", pat.Text(), "[0-9]+")
	}
}

func TestParsePatternRestrictionChildren(t *testing.T) {
	doc := wrapTypedef(`<type name="string">
		<pattern value="[0-9]+">
			<error-app-tag value="tag1"/>
			<error-message><value>must be numeric</value></error-message>
			<description><text>numeric only</text></description>
			<reference><text>RFC none</text></reference>
		</pattern>
	</type>`)
	mod, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	pat := mod.Typedefs[0].Type.Patterns[0]
	if pat.ErrorAppTag != "tag1" {
		t.Errorf("ErrorAppTag = %q, want %q", pat.ErrorAppTag, "tag1")
	}
	if pat.ErrorMessage != "must be numeric" {
		t.Errorf("ErrorMessage = %q, want %q", pat.ErrorMessage, "must be numeric")
	}
	if pat.Description != "numeric only" {
		t.Errorf("Description = %q, want %q", pat.Description, "numeric only")
	}
	if pat.Reference != "RFC none" {
		t.Errorf("Reference = %q, want %q", pat.Reference, "RFC none")
	}
}

func TestParsePatternRejectsInvalidModifierValue(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<yang-version value="1.1"/>
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<typedef name="td"><type name="string">
			<pattern value="[0-9]+">
				<modifier value="not-a-real-modifier"/>
			</pattern>
		</type></typedef>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindInvalidEnum) {
		t.Fatalf("ParseModule() error = %v, want ErrKindInvalidEnum", err)
	}
}
