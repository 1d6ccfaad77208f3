package yin

// bodyAccum collects the statements that recur, identically, under every
// "body"-bearing parent: typedefs, groupings, data definitions, and (where
// the parent allows them) actions and notifications. Factoring this out is
// what lets container/list/grouping/module/submodule/notification share one
// dispatch instead of four near-duplicate copies (spec.md §4.3's
// data-definition statement group).
type bodyAccum struct {
	Typedefs      []*Typedef
	Groupings     []*Grouping
	DataDefs      []DataDefinition
	Actions       []*Action
	Notifications []*Notification
}

// handleBodyChild parses kind as one of the body-group statements if it is
// one, appending the result into acc. handled is false when kind is not a
// body-group statement, so the caller can fall through to its own
// parent-specific children (e.g. presence, key, min-elements).
func handleBodyChild(p *parseEnv, acc *bodyAccum, kind StatementKind, tok Token) (handled bool, err error) {
	switch kind {
	case KindTypedef:
		td, err := parseTypedef(p, tok.Start)
		if err != nil {
			return true, err
		}
		acc.Typedefs = append(acc.Typedefs, td)
		return true, nil
	case KindGrouping:
		g, err := parseGrouping(p, tok.Start)
		if err != nil {
			return true, err
		}
		acc.Groupings = append(acc.Groupings, g)
		return true, nil
	case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindAnydata, KindAnyxml, KindUses:
		dd, err := parseDataDefinition(p, kind, tok.Start)
		if err != nil {
			return true, err
		}
		acc.DataDefs = append(acc.DataDefs, dd)
		return true, nil
	case KindAction:
		a, err := parseAction(p, tok.Start)
		if err != nil {
			return true, err
		}
		acc.Actions = append(acc.Actions, a)
		return true, nil
	case KindNotification:
		n, err := parseNotification(p, tok.Start)
		if err != nil {
			return true, err
		}
		acc.Notifications = append(acc.Notifications, n)
		return true, nil
	}
	return false, nil
}

// recordScope notes that kind's node carries its own typedef or grouping
// substatements, building the sets spec.md §6's "Downstream contract"
// requires (TypedefScopes/GroupingScopes) as parsing descends rather than
// by a separate tree walk afterward.
func recordScope(p *parseEnv, kind StatementKind, hasTypedefs, hasGroupings bool) {
	if hasTypedefs && !containsKind(p.typedefScopes, kind) {
		p.typedefScopes = append(p.typedefScopes, kind)
	}
	if hasGroupings && !containsKind(p.groupingScopes, kind) {
		p.groupingScopes = append(p.groupingScopes, kind)
	}
}

func containsKind(ks []StatementKind, k StatementKind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

// noChildren is the childHandler passed by consumeLeafOnly. For kinds with
// an empty child table it is never invoked (parseChildren rejects any child
// before reaching the handler); where the kind's table is not empty (a
// not-supported deviate), it rejects any YIN child that the table admits.
func noChildren(kind StatementKind, tok Token) error {
	return newErr(ErrKindUnexpectedChild, 0, kind, "", "statement carries no substatements")
}

// consumeLeafOnly finishes parsing a statement with no YIN substatements of
// its own (default, units, path, base, key, unique, position, value,
// config, mandatory, status, min-elements, max-elements, ordered-by,
// require-instance, yin-element, fraction-digits, modifier, revision-date,
// namespace, prefix, belongs-to's prefix). The caller has already consumed
// and bound the statement's own argument; any content here is either
// insignificant whitespace or a foreign-namespace extension instance.
func consumeLeafOnly(p *parseEnv, kind StatementKind) ([]*ExtensionInstance, error) {
	var exts []*ExtensionInstance
	if err := parseChildren(p, kind, noChildren, &exts); err != nil {
		return nil, err
	}
	return exts, nil
}

// parseOptionalText parses a ViaText argument statement (description,
// reference, contact, organization, error-message): one mandatory
// InlineText/InlineValue child carrying the actual string, per spec.md
// §4.1's pseudo-kinds.
func parseOptionalText(p *parseEnv, kind StatementKind) (string, []*ExtensionInstance, error) {
	var (
		value   string
		found   bool
		exts    []*ExtensionInstance
	)
	handle := func(childKind StatementKind, tok Token) error {
		if childKind != KindInlineText && childKind != KindInlineValue {
			return newErr(ErrKindUnexpectedChild, p.lx.Line(), kind, "", "expected a text child")
		}
		s, err := readInlineText(p.lx)
		if err != nil {
			return err
		}
		value = p.dict.Intern(s).String()
		found = true
		return nil
	}
	// description/reference/contact/organization/error-message have no
	// registered child table entries of their own beyond the synthetic
	// InlineText/InlineValue kind, which resolveKeyword yields directly
	// without consulting childTables, so we drive the loop by hand here
	// rather than through parseChildren's table lookup.
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return "", nil, err
		}
		switch tok.State {
		case AtElementEnd, AtEOF:
			if !found {
				return "", nil, newErr(ErrKindMissingChild, 0, kind, "text", "text-argument statement missing its text child")
			}
			return value, exts, nil
		case AtText:
			continue
		case AtElementStart:
			ck := resolveKeyword(tok.Start.Name, kind)
			if ck == KindExtensionInstance {
				ext, err := parseExtensionInstance(p, tok.Start, kind)
				if err != nil {
					return "", nil, err
				}
				exts = append(exts, ext)
				continue
			}
			if err := handle(ck, tok); err != nil {
				return "", nil, err
			}
		}
	}
}

// parseBoolArg validates a YANG boolean argument strictly: exactly "true"
// or "false", no other spellings (spec.md §4.4).
func parseBoolArg(kind StatementKind, s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, newErr(ErrKindInvalidEnum, 0, kind, s, "must be 'true' or 'false'")
	}
}

// parseStatusArg validates a YANG status argument: "current", "deprecated"
// or "obsolete".
func parseStatusArg(s string) (NodeFlags, error) {
	switch s {
	case "current":
		return FlagStatusCurrent, nil
	case "deprecated":
		return FlagStatusDeprecated, nil
	case "obsolete":
		return FlagStatusObsolete, nil
	default:
		return 0, newErr(ErrKindInvalidEnum, 0, KindStatus, s, "must be 'current', 'deprecated' or 'obsolete'")
	}
}
