package yin

import xml "github.com/andaru/flexml"

func registerModuleChildTables() {
	moduleBody := []childSpec{
		many(KindImport), many(KindInclude),
		one(KindOrganization), one(KindContact), one(KindDescription), one(KindReference),
		many(KindRevision),
		many(KindExtension), many(KindFeature), many(KindIdentity),
		many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
		many(KindAugment), many(KindRPC), many(KindNotification), many(KindDeviation),
	}

	modSpecs := append([]childSpec{first(KindYangVersion), req(KindNamespace), req(KindPrefix)}, moduleBody...)
	reg(KindModule, modSpecs...)

	subSpecs := append([]childSpec{first(KindYangVersion), req(KindBelongsTo)}, moduleBody...)
	reg(KindSubmodule, subSpecs...)

	reg(KindImport, req(KindPrefix), one(KindRevisionDate), one(KindDescription), one(KindReference))
	reg(KindInclude, one(KindRevisionDate), one(KindDescription), one(KindReference))
	reg(KindBelongsTo, req(KindPrefix))
	reg(KindRevision, one(KindDescription), one(KindReference))
}

// parseModuleCommon drives the shared module/submodule header, linkage,
// meta, revision and body statements (spec.md §4.3 step 2d; the phase
// ordering itself is enforced inside parseChildren, gated on the parent
// being module/submodule, since it's a property of the dispatch loop
// rather than of any one child). namespace, prefix and belongsTo are
// returned separately since module and submodule diverge only on which of
// those three the root actually carries — which of them is legal is
// already enforced by the root's own child table.
func parseModuleCommon(p *parseEnv, kind StatementKind, start xml.StartElement) (mc moduleCommon, namespace, prefix string, belongsTo *BelongsTo, err error) {
	mc.Kind = kind
	mc.YangVersion = Version1_0

	arg, err := bindArgument(p.dict, kind, start)
	if err != nil {
		return mc, "", "", nil, err
	}
	mc.Arg = arg

	var acc bodyAccum
	handle := func(childKind StatementKind, tok Token) error {
		if handled, herr := handleBodyChild(p, &acc, childKind, tok); handled {
			return herr
		}
		switch childKind {
		case KindYangVersion:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			switch a.String() {
			case "1", "1.0":
				mc.YangVersion = Version1_0
			case "1.1":
				mc.YangVersion = Version1_1
				p.version = Version1_1
			default:
				return newErr(ErrKindInvalidEnum, p.lx.Line(), childKind, a.String(), "must be '1' or '1.1'")
			}
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindNamespace:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			namespace = a.String()
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindPrefix:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			prefix = a.String()
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindBelongsTo:
			bt, err := parseBelongsTo(p, tok.Start)
			if err != nil {
				return err
			}
			belongsTo = bt
			return nil
		case KindImport:
			im, err := parseImport(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Imports = append(mc.Imports, im)
			return nil
		case KindInclude:
			inc, err := parseInclude(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Includes = append(mc.Includes, inc)
			return nil
		case KindOrganization:
			s, exts, err := parseOptionalText(p, childKind)
			if err != nil {
				return err
			}
			mc.Organization = s
			mc.Exts = append(mc.Exts, exts...)
			return nil
		case KindContact:
			s, exts, err := parseOptionalText(p, childKind)
			if err != nil {
				return err
			}
			mc.Contact = s
			mc.Exts = append(mc.Exts, exts...)
			return nil
		case KindDescription:
			s, exts, err := parseOptionalText(p, childKind)
			if err != nil {
				return err
			}
			mc.Description = s
			mc.Exts = append(mc.Exts, exts...)
			return nil
		case KindReference:
			s, exts, err := parseOptionalText(p, childKind)
			if err != nil {
				return err
			}
			mc.Reference = s
			mc.Exts = append(mc.Exts, exts...)
			return nil
		case KindRevision:
			rev, err := parseRevision(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Revisions = append(mc.Revisions, rev)
			return nil
		case KindExtension:
			ed, err := parseExtensionDef(p, tok.Start)
			if err != nil {
				return err
			}
			mc.ExtensionDefs = append(mc.ExtensionDefs, ed)
			return nil
		case KindFeature:
			f, err := parseFeature(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Features = append(mc.Features, f)
			return nil
		case KindIdentity:
			id, err := parseIdentity(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Identities = append(mc.Identities, id)
			return nil
		case KindAugment:
			au, err := parseAugment(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Augments = append(mc.Augments, au)
			return nil
		case KindRPC:
			r, err := parseRPC(p, tok.Start)
			if err != nil {
				return err
			}
			mc.RPCs = append(mc.RPCs, r)
			return nil
		case KindDeviation:
			d, err := parseDeviation(p, tok.Start)
			if err != nil {
				return err
			}
			mc.Deviations = append(mc.Deviations, d)
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), childKind, "", "unhandled module-level child")
	}

	if err := parseChildren(p, kind, handle, &mc.Exts); err != nil {
		return mc, "", "", nil, err
	}
	mc.Typedefs = acc.Typedefs
	mc.Groupings = acc.Groupings
	mc.DataDefs = acc.DataDefs
	mc.Notifications = acc.Notifications
	recordScope(p, kind, len(mc.Typedefs) > 0, len(mc.Groupings) > 0)

	if err := checkImportPrefixes(p, mc.Imports, prefix); err != nil {
		return mc, "", "", nil, err
	}
	if err := checkIncludeNames(p, mc.Includes, mc.ArgString()); err != nil {
		return mc, "", "", nil, err
	}
	return mc, namespace, prefix, belongsTo, nil
}

// checkImportPrefixes enforces spec.md §9 invariant 9: every import's
// prefix must differ from the owning module's own prefix and from every
// other import's prefix.
func checkImportPrefixes(p *parseEnv, imports []*Import, ownPrefix string) error {
	seen := make(map[string]bool, len(imports))
	for _, im := range imports {
		if im.Prefix == ownPrefix {
			return newErr(ErrKindNameCollision, p.lx.Line(), KindImport, im.Prefix, "import prefix clashes with the module's own prefix")
		}
		if seen[im.Prefix] {
			return newErr(ErrKindNameCollision, p.lx.Line(), KindImport, im.Prefix, "import prefix clashes with another import")
		}
		seen[im.Prefix] = true
	}
	return nil
}

// checkIncludeNames enforces spec.md §9 invariant 10's in-parser half: an
// included submodule's name must differ from the owning module's own name.
// Checking it against "every already-loaded module's name" is import
// resolution, out of scope per spec.md §1's Non-goals.
func checkIncludeNames(p *parseEnv, includes []*Include, ownName string) error {
	for _, inc := range includes {
		if inc.Module == ownName {
			return newErr(ErrKindNameCollision, p.lx.Line(), KindInclude, inc.Module, "included submodule name equals the owning module's own name")
		}
	}
	return nil
}

func parseImport(p *parseEnv, start xml.StartElement) (*Import, error) {
	im := &Import{Statement: Statement{Kind: KindImport}}
	arg, err := bindArgument(p.dict, KindImport, start)
	if err != nil {
		return nil, err
	}
	im.Module = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindPrefix:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			im.Prefix = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindRevisionDate:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			if _, _, _, err := parseDate(a.String()); err != nil {
				return err
			}
			im.RevisionDate = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			im.Description, im.Exts = s, append(im.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			im.Reference, im.Exts = s, append(im.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled import child")
	}
	if err := parseChildren(p, KindImport, handle, &im.Exts); err != nil {
		return nil, err
	}
	return im, nil
}

func parseInclude(p *parseEnv, start xml.StartElement) (*Include, error) {
	inc := &Include{Statement: Statement{Kind: KindInclude}}
	arg, err := bindArgument(p.dict, KindInclude, start)
	if err != nil {
		return nil, err
	}
	inc.Module = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindRevisionDate:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			if _, _, _, err := parseDate(a.String()); err != nil {
				return err
			}
			inc.RevisionDate = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			inc.Description, inc.Exts = s, append(inc.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			inc.Reference, inc.Exts = s, append(inc.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled include child")
	}
	if err := parseChildren(p, KindInclude, handle, &inc.Exts); err != nil {
		return nil, err
	}
	return inc, nil
}

func parseBelongsTo(p *parseEnv, start xml.StartElement) (*BelongsTo, error) {
	bt := &BelongsTo{Statement: Statement{Kind: KindBelongsTo}}
	arg, err := bindArgument(p.dict, KindBelongsTo, start)
	if err != nil {
		return nil, err
	}
	bt.Module = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		if kind != KindPrefix {
			return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled belongs-to child")
		}
		a, err := bindArgument(p.dict, kind, tok.Start)
		if err != nil {
			return err
		}
		bt.Prefix = a.String()
		_, err = consumeLeafOnly(p, kind)
		return err
	}
	if err := parseChildren(p, KindBelongsTo, handle, &bt.Exts); err != nil {
		return nil, err
	}
	return bt, nil
}

func parseRevision(p *parseEnv, start xml.StartElement) (*Revision, error) {
	rev := &Revision{Statement: Statement{Kind: KindRevision}}
	arg, err := bindArgument(p.dict, KindRevision, start)
	if err != nil {
		return nil, err
	}
	if _, _, _, err := parseDate(arg.String()); err != nil {
		return nil, err
	}
	rev.Date = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			rev.Description, rev.Exts = s, append(rev.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			rev.Reference, rev.Exts = s, append(rev.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled revision child")
	}
	if err := parseChildren(p, KindRevision, handle, &rev.Exts); err != nil {
		return nil, err
	}
	return rev, nil
}
