package yin

import (
	"strings"
	"testing"
)

func TestImportPrefixClashesWithModulePrefix(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="ex"/>
		<import module="other"><prefix value="ex"/></import>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}

func TestImportPrefixClashesWithAnotherImport(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<import module="a"><prefix value="x"/></import>
		<import module="b"><prefix value="x"/></import>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}

func TestImportDistinctPrefixesAccepted(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<import module="a"><prefix value="x"/></import>
		<import module="b"><prefix value="y"/></import>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
}

func TestModulePhaseOrderingViolation(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<revision date="2024-01-01"/>
		<import module="other"><prefix value="o"/></import>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindOrderingViolation) {
		t.Fatalf("ParseModule() error = %v, want ErrKindOrderingViolation", err)
	}
}

func TestModulePhaseOrderingAllowsSamePhaseRepeats(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<import module="a"><prefix value="x"/></import>
		<import module="b"><prefix value="y"/></import>
		<revision date="2024-01-01"/>
		<revision date="2023-01-01"/>
		<container name="top"/>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
}

func TestIncludeNameClashesWithOwningModule(t *testing.T) {
	doc := `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<namespace uri="urn:m"/>
		<prefix value="m"/>
		<include module="m"/>
	</module>`
	_, _, err := ParseModule(strings.NewReader(doc), NewDictionary())
	if !IsKind(err, ErrKindNameCollision) {
		t.Fatalf("ParseModule() error = %v, want ErrKindNameCollision", err)
	}
}
