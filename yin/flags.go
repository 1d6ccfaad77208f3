package yin

// flagBits is a small bitfield, following the idiom of andaru-opr8's
// dom.bitflag: a uint32 with Has/Add/Clear/Toggle, reused here for both the
// per-node YANG modifier flags and the per-child-table-entry parse flags.
type flagBits uint32

func (f flagBits) Has(other flagBits) bool { return f&other != 0 }
func (f *flagBits) Add(other flagBits)     { *f |= other }
func (f *flagBits) Clear(other flagBits)   { *f &= ^other }
func (f *flagBits) Toggle(other flagBits)  { *f ^= other }

// NodeFlags holds the bitfield of YANG modifiers carried by a parsed-tree
// node: status, config, mandatory, ordered-by, require-instance,
// yin-element, and "was this optional singleton already set" markers for
// min/max/range/length/path/pattern.
type NodeFlags flagBits

const (
	// FlagStatusCurrent/Deprecated/Obsolete encode the statement's status;
	// at most one is ever set, defaulting to FlagStatusCurrent.
	FlagStatusCurrent NodeFlags = 1 << iota
	FlagStatusDeprecated
	FlagStatusObsolete

	// FlagConfigTrue/FlagConfigFalse encode an explicit config statement;
	// neither set means "inherited from ancestor", which is a downstream
	// compilation concern, not this parser's.
	FlagConfigTrue
	FlagConfigFalse

	FlagMandatoryTrue
	FlagMandatoryFalse

	FlagOrderedBySystem
	FlagOrderedByUser

	FlagRequireInstanceTrue
	FlagRequireInstanceFalse

	FlagYinElementTrue
	FlagYinElementFalse

	// FlagMinSet/FlagMaxSet record whether min-elements/max-elements were
	// observed on a list/leaf-list/refine/deviate (spec.md §4.4).
	FlagMinSet
	FlagMaxSet

	// FlagRangeSet/FlagLengthSet/FlagPathSet/FlagPatternSet record
	// singleton restriction statements that were observed; they exist
	// because the carrier for these is polymorphic across several parent
	// kinds (spec.md §9, "Polymorphism over destinations").
	FlagRangeSet
	FlagLengthSet
	FlagPathSet
	FlagPatternSet

	// FlagTypeSet marks a type statement that has nested member types (a
	// union): it is set on the enclosing type, not on the members
	// (spec.md §4.4 on `type`).
	FlagTypeSet
)

func (f *NodeFlags) has(b NodeFlags) bool { return flagBits(*f).Has(flagBits(b)) }
func (f *NodeFlags) add(b NodeFlags)      { (*flagBits)(f).Add(flagBits(b)) }

// Status reports the node's status, defaulting to "current".
func (f NodeFlags) Status() string {
	switch {
	case f.has(FlagStatusDeprecated):
		return "deprecated"
	case f.has(FlagStatusObsolete):
		return "obsolete"
	default:
		return "current"
	}
}

// childFlag is the per-child-table-entry flag set from spec.md §3: Unique
// (at most one occurrence), Mandatory (at least one), First (must precede
// every other parsed child), Version2 (requires yang-version >= 1.1), and
// Parsed. parseChildren never sets Parsed; it counts observed children in
// a per-call map instead.
type childFlag flagBits

const (
	flagUnique childFlag = 1 << iota
	flagMandatory
	flagFirst
	flagVersion2
	flagParsed
)

func (f childFlag) has(b childFlag) bool { return flagBits(f).Has(flagBits(b)) }
func (f *childFlag) add(b childFlag)     { (*flagBits)(f).Add(flagBits(b)) }
