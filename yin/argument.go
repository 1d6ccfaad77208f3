package yin

import xml "github.com/andaru/flexml"

// ArgumentKind names the XML attribute a YIN statement may carry its
// primary argument in. This mirrors libyang's yin_attr_list: a closed,
// nine-name alphabet plus None for statements (or pseudo-statements) that
// carry no attribute-form argument at all.
type ArgumentKind int8

const (
	// ArgNone indicates the statement carries no argument attribute.
	ArgNone ArgumentKind = iota
	ArgName
	ArgTargetNode
	ArgModule
	ArgValue
	ArgText
	ArgCondition
	ArgURI
	ArgDate
	ArgTag
)

var argumentNames = [...]string{
	ArgNone:       "",
	ArgName:       "name",
	ArgTargetNode: "target-node",
	ArgModule:     "module",
	ArgValue:      "value",
	ArgText:       "text",
	ArgCondition:  "condition",
	ArgURI:        "uri",
	ArgDate:       "date",
	ArgTag:        "tag",
}

func (a ArgumentKind) String() string { return argumentNames[a] }

// argumentKindByName resolves an unprefixed XML attribute's local name to
// its ArgumentKind. Returns (ArgNone, false) if the name is not a member of
// the recognised alphabet at all (this is the UnexpectedAttribute case, as
// distinct from "recognised but not the one this statement expects").
func argumentKindByName(name string) (ArgumentKind, bool) {
	for k, n := range argumentNames {
		if k == int(ArgNone) {
			continue
		}
		if n == name {
			return ArgumentKind(k), true
		}
	}
	return ArgNone, false
}

// LexicalClass is the syntactic class an argument's value must belong to.
type LexicalClass int8

const (
	// ClassNone is used by statements with no argument.
	ClassNone LexicalClass = iota
	// ClassIdentifier is a YANG identifier: [A-Za-z_][A-Za-z0-9_.-]*,
	// and must not be empty.
	ClassIdentifier
	// ClassPrefixedIdentifier is prefix:identifier, with the prefix itself
	// an Identifier, tolerating exactly one ':' separator.
	ClassPrefixedIdentifier
	// ClassString is an arbitrary (non-empty) UTF-8 string.
	ClassString
	// ClassOptionalString is a String which may also be absent/empty.
	ClassOptionalString
)

// argumentBinding records how one StatementKind's argument is carried:
// normally an unprefixed XML attribute named per Kind, but for the
// "text"-argument statements (description, reference, contact,
// organization) and error-message's "value" argument, as the character
// content of a mandatory child element instead (spec.md §4.1,
// InlineText/InlineValue; RFC 7950 §14's yin-element="true" arguments).
type argumentBinding struct {
	Kind    ArgumentKind
	Class   LexicalClass
	ViaText bool
}

var statementArguments = map[StatementKind]argumentBinding{
	KindModule:            {ArgName, ClassIdentifier, false},
	KindSubmodule:         {ArgName, ClassIdentifier, false},
	KindYangVersion:       {ArgValue, ClassString, false},
	KindNamespace:         {ArgURI, ClassString, false},
	KindPrefix:            {ArgValue, ClassIdentifier, false},
	KindImport:            {ArgModule, ClassIdentifier, false},
	KindInclude:           {ArgModule, ClassIdentifier, false},
	KindRevisionDate:      {ArgDate, ClassString, false},
	KindBelongsTo:         {ArgModule, ClassIdentifier, false},
	KindOrganization:      {ArgText, ClassString, true},
	KindContact:           {ArgText, ClassString, true},
	KindDescription:       {ArgText, ClassString, true},
	KindReference:         {ArgText, ClassString, true},
	KindRevision:          {ArgDate, ClassString, false},
	KindExtension:         {ArgName, ClassIdentifier, false},
	KindArgument:          {ArgName, ClassIdentifier, false},
	KindYinElement:        {ArgValue, ClassString, false},
	KindFeature:           {ArgName, ClassIdentifier, false},
	KindIdentity:          {ArgName, ClassIdentifier, false},
	KindBase:              {ArgName, ClassPrefixedIdentifier, false},
	KindIfFeature:         {ArgName, ClassString, false},
	KindTypedef:           {ArgName, ClassIdentifier, false},
	KindType:              {ArgName, ClassPrefixedIdentifier, false},
	KindUnits:             {ArgName, ClassString, false},
	KindDefault:           {ArgValue, ClassString, false},
	KindRequireInstance:   {ArgValue, ClassString, false},
	KindPath:              {ArgValue, ClassString, false},
	KindPattern:           {ArgValue, ClassString, false},
	KindModifier:          {ArgValue, ClassString, false},
	KindFractionDigits:    {ArgValue, ClassString, false},
	KindLength:            {ArgValue, ClassString, false},
	KindRange:             {ArgValue, ClassString, false},
	KindEnum:              {ArgName, ClassString, false},
	KindValue:             {ArgValue, ClassString, false},
	KindBit:               {ArgName, ClassIdentifier, false},
	KindPosition:          {ArgValue, ClassString, false},
	KindStatus:            {ArgValue, ClassString, false},
	KindConfig:            {ArgValue, ClassString, false},
	KindMandatory:         {ArgValue, ClassString, false},
	KindMinElements:       {ArgValue, ClassString, false},
	KindMaxElements:       {ArgValue, ClassString, false},
	KindOrderedBy:         {ArgValue, ClassString, false},
	KindMust:              {ArgCondition, ClassString, false},
	KindWhen:              {ArgCondition, ClassString, false},
	KindErrorAppTag:       {ArgValue, ClassString, false},
	KindErrorMessage:      {ArgValue, ClassString, true},
	KindPresence:          {ArgValue, ClassString, false},
	KindKey:               {ArgValue, ClassString, false},
	KindUnique:            {ArgTag, ClassString, false},
	KindRefine:            {ArgTargetNode, ClassString, false},
	KindAugment:           {ArgTargetNode, ClassString, false},
	KindDeviation:         {ArgTargetNode, ClassString, false},
	KindDeviate:           {ArgValue, ClassString, false},
	KindUses:              {ArgName, ClassPrefixedIdentifier, false},
	KindGrouping:          {ArgName, ClassIdentifier, false},
	KindContainer:         {ArgName, ClassIdentifier, false},
	KindLeaf:              {ArgName, ClassIdentifier, false},
	KindLeafList:          {ArgName, ClassIdentifier, false},
	KindList:              {ArgName, ClassIdentifier, false},
	KindChoice:            {ArgName, ClassIdentifier, false},
	KindCase:              {ArgName, ClassIdentifier, false},
	KindAnydata:           {ArgName, ClassIdentifier, false},
	KindAnyxml:            {ArgName, ClassIdentifier, false},
	KindNotification:      {ArgName, ClassIdentifier, false},
	KindRPC:               {ArgName, ClassIdentifier, false},
	KindAction:            {ArgName, ClassIdentifier, false},
}

// bindArgument extracts, lexically validates and interns the argument of a
// YIN-namespace statement already positioned at its start element.
// Statements whose argument is carried by a child element instead of an
// attribute (ViaText) are not handled here — their handler reads the
// InlineText/InlineValue pseudo-kind child directly, since the argument
// binder only concerns attribute-form arguments (spec.md §4.2).
func bindArgument(dict Dictionary, kind StatementKind, start xml.StartElement) (Handle, error) {
	binding, ok := statementArguments[kind]
	if !ok || binding.Kind == ArgNone || binding.ViaText {
		return nil, nil
	}
	wantName := binding.Kind.String()
	for _, a := range start.Attr {
		if !attrIsUnprefixed(a) {
			continue
		}
		if a.Name.Local != wantName {
			if _, known := argumentKindByName(a.Name.Local); !known {
				return nil, newErr(ErrKindUnexpectedAttribute, 0, kind, a.Name.Local, "attribute not recognised")
			}
			continue
		}
		if err := validateByClass(binding.Class, a.Value); err != nil {
			return nil, err
		}
		return dict.Intern(a.Value), nil
	}
	if binding.Class == ClassOptionalString {
		return dict.Intern(""), nil
	}
	return nil, newErr(ErrKindMissingAttribute, 0, kind, wantName, "required argument attribute missing")
}
