package yin

// ModuleVersion is the yang-version in effect for a parse: 1.0 (the
// default, absent an explicit yang-version statement) or 1.1 (RFC 7950).
type ModuleVersion int8

const (
	Version1_0 ModuleVersion = iota
	Version1_1
)

func (v ModuleVersion) String() string {
	if v == Version1_1 {
		return "1.1"
	}
	return "1.0"
}

// AtLeast11 reports whether v satisfies a Version2-gated child's
// requirement (spec.md §4.3 step 2e).
func (v ModuleVersion) AtLeast11() bool { return v == Version1_1 }

// Statement is the common header every parsed-tree node embeds: its kind
// tag, its interned argument (if any), its YANG modifier flags, and the
// extension instances collected under it (spec.md §3 "Parsed tree").
type Statement struct {
	Kind  StatementKind
	Arg   Handle
	Flags NodeFlags
	Exts  []*ExtensionInstance
}

// ArgString returns the statement's argument value, or "" if it has none.
func (s *Statement) ArgString() string {
	if s.Arg == nil {
		return ""
	}
	return s.Arg.String()
}

// DataDefinition is implemented by every statement kind that may appear as
// a data-tree node: container, leaf, leaf-list, list, choice, anydata,
// anyxml, uses, and action.
type DataDefinition interface {
	dataDefinition()
}

// -------------------------------------------------------------------
// Module / submodule

// moduleCommon holds the fields module and submodule share (spec.md §4.3
// step 2d names the five header/linkage/meta/revision/body phases both
// root kinds dispatch through).
type moduleCommon struct {
	Statement
	YangVersion  ModuleVersion
	Imports      []*Import
	Includes     []*Include
	Organization string
	Contact      string
	Description  string
	Reference    string
	Revisions    []*Revision

	Features     []*Feature
	Identities   []*Identity
	ExtensionDefs []*ExtensionDef
	Typedefs     []*Typedef
	Groupings    []*Grouping
	DataDefs     []DataDefinition
	Augments     []*Augment
	RPCs         []*RPC
	Notifications []*Notification
	Deviations   []*Deviation

	// TypedefScopes and GroupingScopes record which descendant statements
	// carry their own typedef/grouping (spec.md §6, "Downstream contract":
	// "the set of nodes that bear typedefs... groupings"). Populated as a
	// by-product of parsing rather than walked afterward.
	TypedefScopes  []StatementKind
	GroupingScopes []StatementKind
}

// Module is the root of a parse when the document's root element is
// <module>.
type Module struct {
	moduleCommon
	Name      string
	Namespace string
	Prefix    string
}

// Submodule is the root of a parse when the document's root element is
// <submodule>. It inherits typedef/grouping scope from a caller-provided
// main module Context (spec.md §6, parse_submodule).
type Submodule struct {
	moduleCommon
	Name      string
	BelongsTo *BelongsTo
}

type BelongsTo struct {
	Statement
	Module string
	Prefix string
}

type Import struct {
	Statement
	Module       string
	Prefix       string
	RevisionDate string
	Description  string
	Reference    string
}

type Include struct {
	Statement
	Module       string
	RevisionDate string
	Description  string
	Reference    string
}

type Revision struct {
	Statement
	Date        string
	Description string
	Reference   string
}

// -------------------------------------------------------------------
// Data definitions

type Container struct {
	Statement
	Name          string
	When          *When
	Musts         []*Must
	Presence      string
	Typedefs      []*Typedef
	Groupings     []*Grouping
	DataDefs      []DataDefinition
	Actions       []*Action
	Notifications []*Notification
	Description   string
	Reference     string
}

func (*Container) dataDefinition() {}

type Leaf struct {
	Statement
	Name        string
	When        *When
	Musts       []*Must
	Type        *Type
	Units       string
	Default     string
	Description string
	Reference   string
}

func (*Leaf) dataDefinition() {}

type LeafList struct {
	Statement
	Name         string
	When         *When
	Musts        []*Must
	Type         *Type
	Units        string
	Defaults     []string
	MinElements  uint64
	MaxElements  uint64
	MaxUnbounded bool
	OrderedByUser bool
	Description  string
	Reference    string
}

func (*LeafList) dataDefinition() {}

type List struct {
	Statement
	Name          string
	When          *When
	Musts         []*Must
	Key           string
	Unique        []string
	MinElements   uint64
	MaxElements   uint64
	MaxUnbounded  bool
	OrderedByUser bool
	Typedefs      []*Typedef
	Groupings     []*Grouping
	DataDefs      []DataDefinition
	Actions       []*Action
	Notifications []*Notification
	Description   string
	Reference     string
}

func (*List) dataDefinition() {}

type Choice struct {
	Statement
	Name        string
	When        *When
	Default     string
	Cases       []*Case
	Description string
	Reference   string
}

func (*Choice) dataDefinition() {}

type Case struct {
	Statement
	Name        string
	When        *When
	DataDefs    []DataDefinition
	Description string
	Reference   string
}

type Anydata struct {
	Statement
	Name        string
	When        *When
	Musts       []*Must
	Description string
	Reference   string
}

func (*Anydata) dataDefinition() {}

type Anyxml struct {
	Statement
	Name        string
	When        *When
	Musts       []*Must
	Description string
	Reference   string
}

func (*Anyxml) dataDefinition() {}

type Uses struct {
	Statement
	Name        string
	When        *When
	IfFeatures  []string
	Refines     []*Refine
	Augments    []*Augment
	Description string
	Reference   string
}

func (*Uses) dataDefinition() {}

type Refine struct {
	Statement
	TargetNode   string
	Musts        []*Must
	Presence     string
	Default      []string
	Config       *bool
	Mandatory    *bool
	MinElements  *uint64
	MaxElements  *uint64
	MaxUnbounded bool
	Description  string
	Reference    string
}

type Augment struct {
	Statement
	TargetNode    string
	When          *When
	IfFeatures    []string
	DataDefs      []DataDefinition
	Cases         []*Case
	Actions       []*Action
	Notifications []*Notification
	Description   string
	Reference     string
}

type Grouping struct {
	Statement
	Name          string
	Typedefs      []*Typedef
	Groupings     []*Grouping
	DataDefs      []DataDefinition
	Actions       []*Action
	Notifications []*Notification
	Description   string
	Reference     string
}

type Typedef struct {
	Statement
	Name        string
	Type        *Type
	Units       string
	Default     string
	Description string
	Reference   string
}

// -------------------------------------------------------------------
// Type system

type Type struct {
	Statement
	Name            string
	Bases           []string
	Bits            []*Bit
	Enums           []*Enum
	FractionDigits  int
	Length          *Length
	Patterns        []*Pattern
	Range           *Range
	Path            string
	RequireInstance *bool
	Types           []*Type // union members; parent acquires FlagTypeSet
}

// patternSentinel bytes, prefixed onto a pattern's stored value (spec.md
// §4.4/§9): Match is the default, InvertMatch is set by a `modifier`
// child with value "invert-match".
const (
	patternSentinelMatch       = 0x06
	patternSentinelInvertMatch = 0x15
)

type Pattern struct {
	Statement
	Value       string // sentinel byte + pattern text, see patternSentinel*
	ErrorAppTag string
	ErrorMessage string
	Description string
	Reference   string
}

// InvertMatch reports whether a modifier child rewrote this pattern's
// sentinel byte to "invert-match".
func (p *Pattern) InvertMatch() bool {
	return len(p.Value) > 0 && p.Value[0] == patternSentinelInvertMatch
}

// Text returns the pattern text with its leading sentinel byte stripped.
func (p *Pattern) Text() string {
	if len(p.Value) > 0 {
		return p.Value[1:]
	}
	return ""
}

type Range struct {
	Statement
	Value        string
	ErrorAppTag  string
	ErrorMessage string
	Description  string
	Reference    string
}

type Length struct {
	Statement
	Value        string
	ErrorAppTag  string
	ErrorMessage string
	Description  string
	Reference    string
}

type Must struct {
	Statement
	Condition    string
	ErrorAppTag  string
	ErrorMessage string
	Description  string
	Reference    string
}

type Enum struct {
	Statement
	Name        string
	Value       int32
	HasValue    bool
	Description string
	Reference   string
}

type Bit struct {
	Statement
	Name        string
	Position    uint32
	HasPosition bool
	Description string
	Reference   string
}

type When struct {
	Statement
	Condition   string
	Description string
	Reference   string
}

// -------------------------------------------------------------------
// Identities, features, extensions

type Identity struct {
	Statement
	Name        string
	Bases       []string
	IfFeatures  []string
	Description string
	Reference   string
}

type Feature struct {
	Statement
	Name        string
	IfFeatures  []string
	Description string
	Reference   string
}

type ExtensionDef struct {
	Statement
	Name        string
	Argument    *ArgumentStmt
	Description string
	Reference   string
}

type ArgumentStmt struct {
	Statement
	Name string
}

// -------------------------------------------------------------------
// RPC / action / notification

type RPC struct {
	Statement
	Name        string
	IfFeatures  []string
	Typedefs    []*Typedef
	Groupings   []*Grouping
	Input       *Input
	Output      *Output
	Description string
	Reference   string
}

type Action struct {
	Statement
	Name        string
	IfFeatures  []string
	Typedefs    []*Typedef
	Groupings   []*Grouping
	Input       *Input
	Output      *Output
	Description string
	Reference   string
}

func (*Action) dataDefinition() {}

type Input struct {
	Statement
	Musts     []*Must
	Typedefs  []*Typedef
	Groupings []*Grouping
	DataDefs  []DataDefinition
}

type Output struct {
	Statement
	Musts     []*Must
	Typedefs  []*Typedef
	Groupings []*Grouping
	DataDefs  []DataDefinition
}

type Notification struct {
	Statement
	Name        string
	IfFeatures  []string
	Musts       []*Must
	Typedefs    []*Typedef
	Groupings   []*Grouping
	DataDefs    []DataDefinition
	Description string
	Reference   string
}

// -------------------------------------------------------------------
// Deviation / deviate

type Deviation struct {
	Statement
	TargetNode  string
	Description string
	Reference   string
	Deviates    []Deviate
}

// Deviate is implemented by the four deviate shapes (spec.md §4.4
// "deviate"). The argument value ("not-supported"/"add"/"replace"/
// "delete") selects which shape a parsed <deviate> element allocates.
type Deviate interface {
	deviateShape() string
}

type DeviateNotSupported struct{ Statement }

func (*DeviateNotSupported) deviateShape() string { return "not-supported" }

type DeviateAdd struct {
	Statement
	Units        string
	Musts        []*Must
	Unique       []string
	Default      []string
	Config       *bool
	Mandatory    *bool
	MinElements  *uint64
	MaxElements  *uint64
	MaxUnbounded bool
}

func (*DeviateAdd) deviateShape() string { return "add" }

type DeviateReplace struct {
	Statement
	Type         *Type
	Units        string
	Default      string
	Config       *bool
	Mandatory    *bool
	MinElements  *uint64
	MaxElements  *uint64
	MaxUnbounded bool
}

func (*DeviateReplace) deviateShape() string { return "replace" }

type DeviateDelete struct {
	Statement
	Units   string
	Musts   []*Must
	Unique  []string
	Default []string
}

func (*DeviateDelete) deviateShape() string { return "delete" }

// -------------------------------------------------------------------
// Extension instances

// ExtensionInstance is a preserved subtree rooted at an element in a
// non-YIN namespace (spec.md §3 "Extension instance", §4.6). Semantic
// interpretation is deferred to downstream extension processing.
type ExtensionInstance struct {
	Prefix        string
	Local         string
	CarrierSlot   StatementKind
	Argument      string
	FromAttribute bool
	Children      []*ExtensionInstance
	Line          int
}

// Name returns the extension element's full (possibly prefixed) name.
func (e *ExtensionInstance) Name() string {
	if e.Prefix == "" {
		return e.Local
	}
	return e.Prefix + ":" + e.Local
}
