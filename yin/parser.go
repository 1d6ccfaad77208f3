package yin

import (
	"io"

	xml "github.com/andaru/flexml"
)

// Context is the parser context handed back alongside a parsed tree
// (spec.md §6, "Downstream contract"): the yang-version that was in
// effect, the set of statement kinds observed to carry their own typedefs
// or groupings, and the line the lexical adapter had reached when the
// parse finished (for diagnostics on a later, unrelated failure).
type Context struct {
	Version        ModuleVersion
	TypedefScopes  []StatementKind
	GroupingScopes []StatementKind
	FinalLine      int
}

// ParseModule parses a complete YIN document whose root element must be
// <module> (spec.md §6 parse_module). dict interns every statement
// argument and inline-text body encountered; it may be shared with other,
// concurrently running parses (spec.md §5).
func ParseModule(r io.Reader, dict Dictionary) (*Module, *Context, error) {
	p := &parseEnv{lx: NewLexer(r), dict: dict, version: Version1_0}
	var sm stateMachine

	root, err := nextRootElement(p, &sm)
	if err != nil {
		return nil, nil, err
	}
	if root.kind != KindModule {
		return nil, nil, sm.fail(newErr(ErrKindModuleSubmoduleExpected, p.lx.Line(), root.kind, root.start.Name.Local, "document root must be 'module'"))
	}

	mc, namespace, prefix, _, err := parseModuleCommon(p, KindModule, root.start)
	if err != nil {
		return nil, nil, sm.fail(err)
	}
	mod := &Module{moduleCommon: mc, Name: mc.ArgString(), Namespace: namespace, Prefix: prefix}
	mod.TypedefScopes = p.typedefScopes
	mod.GroupingScopes = p.groupingScopes

	if err := finishDocument(p, &sm); err != nil {
		return nil, nil, err
	}
	return mod, buildContext(p), nil
}

// ParseSubmodule parses a complete YIN document whose root element must be
// <submodule> (spec.md §6 parse_submodule). mainContext is the Context
// returned by the belonging module's own ParseModule call: its
// yang-version seeds this parse, since a submodule without its own
// yang-version statement inherits the main module's (spec.md §6,
// "the submodule inherits typedef/grouping scopes from the caller-provided
// main-module context").
func ParseSubmodule(r io.Reader, mainContext *Context, dict Dictionary) (*Submodule, *Context, error) {
	p := &parseEnv{lx: NewLexer(r), dict: dict, version: Version1_0}
	if mainContext != nil {
		p.version = mainContext.Version
		p.typedefScopes = append(p.typedefScopes, mainContext.TypedefScopes...)
		p.groupingScopes = append(p.groupingScopes, mainContext.GroupingScopes...)
	}
	var sm stateMachine

	root, err := nextRootElement(p, &sm)
	if err != nil {
		return nil, nil, err
	}
	if root.kind != KindSubmodule {
		return nil, nil, sm.fail(newErr(ErrKindModuleSubmoduleExpected, p.lx.Line(), root.kind, root.start.Name.Local, "document root must be 'submodule'"))
	}

	mc, _, _, belongsTo, err := parseModuleCommon(p, KindSubmodule, root.start)
	if err != nil {
		return nil, nil, sm.fail(err)
	}
	sub := &Submodule{moduleCommon: mc, Name: mc.ArgString(), BelongsTo: belongsTo}
	sub.TypedefScopes = p.typedefScopes
	sub.GroupingScopes = p.groupingScopes

	if err := finishDocument(p, &sm); err != nil {
		return nil, nil, err
	}
	return sub, buildContext(p), nil
}

type rootTok struct {
	kind  StatementKind
	start xml.StartElement
}

// nextRootElement advances past any insignificant leading text/comments to
// the document's first element, transitioning PreRoot -> InRoot, or failing
// with ModuleSubmoduleExpected if the first element isn't module/submodule
// (spec.md §4.7).
func nextRootElement(p *parseEnv, sm *stateMachine) (rootTok, error) {
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return rootTok{}, sm.fail(err)
		}
		switch tok.State {
		case AtText:
			continue
		case AtEOF:
			return rootTok{}, sm.fail(newErr(ErrKindModuleSubmoduleExpected, p.lx.Line(), KindNone, "", "empty document"))
		case AtElementStart:
			kind := resolveKeyword(tok.Start.Name, KindNone)
			sm.state = InRoot
			return rootTok{kind: kind, start: tok.Start}, nil
		default:
			return rootTok{}, sm.fail(newErr(ErrKindModuleSubmoduleExpected, p.lx.Line(), KindNone, "", "expected an opening element"))
		}
	}
}

// finishDocument enforces the InRoot -> PostRoot transition and the
// PostRoot rule that only EOF may follow the root's closing tag
// (spec.md §4.7). parseModuleCommon / parseChildren has already consumed
// the root's own end element by the time this runs.
func finishDocument(p *parseEnv, sm *stateMachine) error {
	sm.state = PostRoot
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return sm.fail(err)
		}
		switch tok.State {
		case AtText:
			continue
		case AtEOF:
			return nil
		default:
			return sm.fail(newErr(ErrKindTrailingGarbage, p.lx.Line(), KindNone, "", "unexpected content after root element"))
		}
	}
}

func buildContext(p *parseEnv) *Context {
	return &Context{
		Version:        p.version,
		TypedefScopes:  p.typedefScopes,
		GroupingScopes: p.groupingScopes,
		FinalLine:      p.lx.Line(),
	}
}
