package yin

// StatementKind is the closed enumeration of all YANG statements recognised
// by this parser, plus the two YIN-only pseudo-statements InlineText and
// InlineValue used when a statement's argument is carried as a child element
// rather than an XML attribute.
type StatementKind int16

// The YANG statement vocabulary (RFC 7950), in the order libyang's
// parser_yin.c declares them. Kind values are stable and ordering here has no
// significance beyond readability; child tables are sorted independently.
const (
	KindNone StatementKind = iota
	KindAction
	KindAnydata
	KindAnyxml
	KindArgument
	KindAugment
	KindBase
	KindBelongsTo
	KindBit
	KindCase
	KindChoice
	KindConfig
	KindContact
	KindContainer
	KindDefault
	KindDescription
	KindDeviate
	KindDeviation
	KindEnum
	KindErrorAppTag
	KindErrorMessage
	KindExtension
	KindFeature
	KindFractionDigits
	KindGrouping
	KindIdentity
	KindIfFeature
	KindImport
	KindInclude
	KindInput
	KindKey
	KindLeaf
	KindLeafList
	KindLength
	KindList
	KindMandatory
	KindMaxElements
	KindMinElements
	KindModifier
	KindModule
	KindMust
	KindNamespace
	KindNotification
	KindOrderedBy
	KindOrganization
	KindOutput
	KindPath
	KindPattern
	KindPosition
	KindPrefix
	KindPresence
	KindRange
	KindReference
	KindRefine
	KindRequireInstance
	KindRevision
	KindRevisionDate
	KindRPC
	KindStatus
	KindSubmodule
	KindType
	KindTypedef
	KindUnique
	KindUnits
	KindUses
	KindValue
	KindWhen
	KindYangVersion
	KindYinElement

	// KindExtensionInstance marks an element in a foreign (non-YIN)
	// namespace, handled by the extension-instance parser (spec.md §4.6)
	// rather than by a per-kind handler.
	KindExtensionInstance

	// KindInlineText and KindInlineValue are YIN-only pseudo-statements:
	// they never appear as a real YANG keyword, but are synthesized by the
	// keyword resolver when an argument is carried by a <text>/<value>
	// child element (e.g. description, contact, error-message).
	KindInlineText
	KindInlineValue

	numStatementKinds
)

var statementNames = map[StatementKind]string{
	KindAction:          "action",
	KindAnydata:         "anydata",
	KindAnyxml:          "anyxml",
	KindArgument:        "argument",
	KindAugment:         "augment",
	KindBase:            "base",
	KindBelongsTo:       "belongs-to",
	KindBit:             "bit",
	KindCase:            "case",
	KindChoice:          "choice",
	KindConfig:          "config",
	KindContact:         "contact",
	KindContainer:       "container",
	KindDefault:         "default",
	KindDescription:     "description",
	KindDeviate:         "deviate",
	KindDeviation:       "deviation",
	KindEnum:            "enum",
	KindErrorAppTag:     "error-app-tag",
	KindErrorMessage:    "error-message",
	KindExtension:       "extension",
	KindFeature:         "feature",
	KindFractionDigits:  "fraction-digits",
	KindGrouping:        "grouping",
	KindIdentity:        "identity",
	KindIfFeature:       "if-feature",
	KindImport:          "import",
	KindInclude:         "include",
	KindInput:           "input",
	KindKey:             "key",
	KindLeaf:            "leaf",
	KindLeafList:        "leaf-list",
	KindLength:          "length",
	KindList:            "list",
	KindMandatory:       "mandatory",
	KindMaxElements:     "max-elements",
	KindMinElements:     "min-elements",
	KindModifier:        "modifier",
	KindModule:          "module",
	KindMust:            "must",
	KindNamespace:       "namespace",
	KindNotification:    "notification",
	KindOrderedBy:       "ordered-by",
	KindOrganization:    "organization",
	KindOutput:          "output",
	KindPath:            "path",
	KindPattern:         "pattern",
	KindPosition:        "position",
	KindPrefix:          "prefix",
	KindPresence:        "presence",
	KindRange:           "range",
	KindReference:       "reference",
	KindRefine:          "refine",
	KindRequireInstance: "require-instance",
	KindRevision:        "revision",
	KindRevisionDate:    "revision-date",
	KindRPC:             "rpc",
	KindStatus:          "status",
	KindSubmodule:       "submodule",
	KindType:            "type",
	KindTypedef:         "typedef",
	KindUnique:          "unique",
	KindUnits:           "units",
	KindUses:            "uses",
	KindValue:           "value",
	KindWhen:            "when",
	KindYangVersion:     "yang-version",
	KindYinElement:      "yin-element",
}

func (k StatementKind) String() string {
	if s, ok := statementNames[k]; ok {
		return s
	}
	switch k {
	case KindNone:
		return "(none)"
	case KindExtensionInstance:
		return "(extension)"
	case KindInlineText:
		return "(inline-text)"
	case KindInlineValue:
		return "(inline-value)"
	default:
		return "(unknown)"
	}
}

// moduleVersion11Only reports whether a statement kind was introduced by
// YANG 1.1 (RFC 7950) and so requires Version2-gating wherever it is a
// legal child. action and anydata are the only statement *kinds* new in
// 1.1; other Version2 gating (e.g. notification nested in container) is a
// property of a specific (parent, child) pair and lives in the child table
// entry's flags, not here.
func moduleVersion11Only(k StatementKind) bool {
	switch k {
	case KindAction, KindAnydata:
		return true
	default:
		return false
	}
}
