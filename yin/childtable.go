package yin

import "sort"

// childSpec describes one allowed child statement kind under some parent
// kind, with its cardinality/ordering flags (spec.md §3, §4.3).
type childSpec struct {
	Kind  StatementKind
	Flags childFlag
}

// childTable is a parent's allowed children, sorted by Kind so the
// dispatcher can binary-search it (spec.md §4.3 step 2a: "a sorted,
// per-statement child table").
type childTable []childSpec

func (t childTable) find(k StatementKind) (childSpec, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Kind >= k })
	if i < len(t) && t[i].Kind == k {
		return t[i], true
	}
	return childSpec{}, false
}

// parseEnv bundles the three things every handler needs threaded through a
// parse: the lexical cursor, the interning dictionary, and the module
// version in effect (for Version2-gated children). One parseEnv is shared
// by an entire ParseModule/ParseSubmodule call (spec.md §6, parser Context).
type parseEnv struct {
	lx      *Lexer
	dict    Dictionary
	version ModuleVersion

	// typedefScopes and groupingScopes accumulate, as a by-product of
	// descending through the tree, the set of statement kinds observed to
	// carry their own typedef/grouping substatements (spec.md §6,
	// "Downstream contract"). recordScope (handlers_common.go) appends to
	// these; buildContext copies them into the returned Context.
	typedefScopes  []StatementKind
	groupingScopes []StatementKind
}

var childTables = map[StatementKind]childTable{}

func reg(parent StatementKind, specs ...childSpec) {
	t := childTable(specs)
	sort.Slice(t, func(i, j int) bool { return t[i].Kind < t[j].Kind })
	childTables[parent] = t
}

// Constructors for childSpec compose the flag set legibly at the
// registration call site instead of spelling out bitwise ORs everywhere.
func one(k StatementKind) childSpec      { return childSpec{k, flagUnique} }
func req(k StatementKind) childSpec      { return childSpec{k, flagUnique | flagMandatory} }
func first(k StatementKind) childSpec    { return childSpec{k, flagUnique | flagFirst} }
func reqFirst(k StatementKind) childSpec { return childSpec{k, flagUnique | flagMandatory | flagFirst} }
func many(k StatementKind) childSpec     { return childSpec{k, 0} }
func v2(s childSpec) childSpec           { s.Flags |= flagVersion2; return s }

// checkCardinality verifies every Mandatory child in table was observed at
// least once (spec.md §4.3 step 3, "mandatory constraint"). Unique and
// First are enforced as each child is seen, in parseChildren itself.
func checkCardinality(parent StatementKind, table childTable, counts map[StatementKind]int) error {
	for _, spec := range table {
		if spec.Flags.has(flagMandatory) && counts[spec.Kind] == 0 {
			return newErr(ErrKindMissingChild, 0, spec.Kind, "", "mandatory statement missing under "+parent.String())
		}
	}
	return nil
}

// modulePhase is the §4.3 step 2d ordering domain for module/submodule
// children: Header -> Linkage -> Meta -> Revision -> Body. A child may
// repeat or advance its predecessor's phase but never regress to an
// earlier one.
type modulePhase int8

const (
	phaseHeader modulePhase = iota
	phaseLinkage
	phaseMeta
	phaseRevision
	phaseBody
)

// modulePhaseOf reports the phase a module/submodule child belongs to.
// Every kind not named in an earlier phase is Body (spec.md §4.3 step 2d:
// "Body (everything else)").
func modulePhaseOf(k StatementKind) modulePhase {
	switch k {
	case KindYangVersion, KindNamespace, KindPrefix, KindBelongsTo:
		return phaseHeader
	case KindImport, KindInclude:
		return phaseLinkage
	case KindOrganization, KindContact, KindDescription, KindReference:
		return phaseMeta
	case KindRevision:
		return phaseRevision
	default:
		return phaseBody
	}
}

// childHandler is supplied by a parent's own parse function; it is invoked
// once per recognized YIN-namespace child, already past the Unique/
// Mandatory/First/Version2 checks, and is responsible for consuming that
// child's own argument and descendants (recursing into parseChildren again
// if the child is itself compound) and storing the result.
type childHandler func(kind StatementKind, tok Token) error

// parseChildren is the dispatcher core of spec.md §4.3 ("parse_content"):
// it walks the children of a parent statement already consumed up to (and
// including) its start element, until the matching end element, checking
// each child against parent's child table before delegating to handle.
// Children resolving to a foreign namespace are collected as extension
// instances rather than rejected (spec.md §4.6).
func parseChildren(p *parseEnv, parent StatementKind, handle childHandler, exts *[]*ExtensionInstance) error {
	table := childTables[parent]
	counts := make(map[StatementKind]int)
	var firstSeen bool
	isModuleLevel := parent == KindModule || parent == KindSubmodule
	lastPhase := phaseHeader
	var lastPhaseKind StatementKind

	for {
		tok, err := p.lx.Next()
		if err != nil {
			return err
		}
		switch tok.State {
		case AtElementEnd, AtEOF:
			return checkCardinality(parent, table, counts)
		case AtText:
			continue
		case AtElementStart:
			kind := resolveKeyword(tok.Start.Name, parent)
			if kind == KindExtensionInstance {
				ext, err := parseExtensionInstance(p, tok.Start, parent)
				if err != nil {
					return err
				}
				*exts = append(*exts, ext)
				firstSeen = true
				continue
			}
			spec, ok := table.find(kind)
			if !ok {
				return newErr(ErrKindUnexpectedChild, p.lx.Line(), parent, tok.Start.Name.Local, "statement not allowed here")
			}
			if isModuleLevel {
				ph := modulePhaseOf(kind)
				if ph < lastPhase {
					return newErr(ErrKindOrderingViolation, p.lx.Line(), kind, tok.Start.Name.Local, "must not appear after "+lastPhaseKind.String())
				}
				lastPhase, lastPhaseKind = ph, kind
			}
			if (spec.Flags.has(flagVersion2) || moduleVersion11Only(kind)) && !p.version.AtLeast11() {
				return newErr(ErrKindVersionTooLow, p.lx.Line(), kind, "", "requires yang-version 1.1")
			}
			if spec.Flags.has(flagFirst) && firstSeen {
				return newErr(ErrKindFirstViolation, p.lx.Line(), kind, "", "must precede every other child")
			}
			if spec.Flags.has(flagUnique) && counts[kind] > 0 {
				return newErr(ErrKindDuplicateChild, p.lx.Line(), kind, "", "statement may occur at most once here")
			}
			counts[kind]++
			firstSeen = true
			if err := handle(kind, tok); err != nil {
				return err
			}
		}
	}
}

// readInlineText consumes a <text>/<value> pseudo-statement's character
// content up to its end element. Used by handlers for the ViaText argument
// statements (description, reference, contact, organization, error-message).
func readInlineText(lx *Lexer) (string, error) {
	var buf []byte
	for {
		tok, err := lx.Next()
		if err != nil {
			return "", err
		}
		switch tok.State {
		case AtText:
			buf = append(buf, tok.Text...)
		case AtElementEnd:
			return string(buf), nil
		case AtEOF:
			return "", newErr(ErrKindInternal, lx.Line(), KindInlineText, "", "unexpected end of document inside text element")
		}
	}
}

func init() {
	registerModuleChildTables()
	registerDataDefinitionChildTables()
	registerTypeChildTables()
	registerMiscChildTables()
}
