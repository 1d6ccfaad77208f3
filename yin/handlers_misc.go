package yin

import xml "github.com/andaru/flexml"

func registerMiscChildTables() {
	reg(KindExtension, one(KindArgument), one(KindStatus), one(KindDescription), one(KindReference))
	reg(KindArgument, one(KindYinElement))
	reg(KindFeature, many(KindIfFeature), one(KindStatus), one(KindDescription), one(KindReference))
	reg(KindIdentity, v2(many(KindIfFeature)), many(KindBase), one(KindStatus), one(KindDescription), one(KindReference))
	reg(KindDeviation, one(KindDescription), one(KindReference))
	// deviate's allowed children are a union across its four shapes; the
	// handler itself rejects children the deviate's own "value" doesn't
	// permit (spec.md §4.4, §9 "deviate's four shapes").
	reg(KindDeviate,
		one(KindType), one(KindUnits), many(KindMust), many(KindUnique), many(KindDefault),
		one(KindConfig), one(KindMandatory), one(KindMinElements), one(KindMaxElements),
	)
}

func parseExtensionDef(p *parseEnv, start xml.StartElement) (*ExtensionDef, error) {
	ed := &ExtensionDef{Statement: Statement{Kind: KindExtension, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindExtension, start)
	if err != nil {
		return nil, err
	}
	ed.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindArgument:
			a, err := parseArgumentStmt(p, tok.Start)
			ed.Argument = a
			return err
		case KindStatus:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			ed.Flags = (ed.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			ed.Description, ed.Exts = s, append(ed.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			ed.Reference, ed.Exts = s, append(ed.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled extension child")
	}
	if err := parseChildren(p, KindExtension, handle, &ed.Exts); err != nil {
		return nil, err
	}
	return ed, nil
}

func parseArgumentStmt(p *parseEnv, start xml.StartElement) (*ArgumentStmt, error) {
	as := &ArgumentStmt{Statement: Statement{Kind: KindArgument}}
	arg, err := bindArgument(p.dict, KindArgument, start)
	if err != nil {
		return nil, err
	}
	as.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		if kind != KindYinElement {
			return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled argument child")
		}
		a, err := bindArgument(p.dict, kind, tok.Start)
		if err != nil {
			return err
		}
		v, err := parseBoolArg(kind, a.String())
		if err != nil {
			return err
		}
		if v {
			as.Flags.add(FlagYinElementTrue)
		} else {
			as.Flags.add(FlagYinElementFalse)
		}
		_, err = consumeLeafOnly(p, kind)
		return err
	}
	if err := parseChildren(p, KindArgument, handle, &as.Exts); err != nil {
		return nil, err
	}
	return as, nil
}

func parseFeature(p *parseEnv, start xml.StartElement) (*Feature, error) {
	f := &Feature{Statement: Statement{Kind: KindFeature, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindFeature, start)
	if err != nil {
		return nil, err
	}
	f.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindIfFeature:
			s, err := parseIfFeatureChild(p, tok)
			f.IfFeatures = append(f.IfFeatures, s)
			return err
		case KindStatus:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			f.Flags = (f.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			f.Description, f.Exts = s, append(f.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			f.Reference, f.Exts = s, append(f.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled feature child")
	}
	if err := parseChildren(p, KindFeature, handle, &f.Exts); err != nil {
		return nil, err
	}
	return f, nil
}

func parseIdentity(p *parseEnv, start xml.StartElement) (*Identity, error) {
	id := &Identity{Statement: Statement{Kind: KindIdentity, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindIdentity, start)
	if err != nil {
		return nil, err
	}
	id.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindIfFeature:
			s, err := parseIfFeatureChild(p, tok)
			id.IfFeatures = append(id.IfFeatures, s)
			return err
		case KindBase:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			id.Bases = append(id.Bases, a.String())
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindStatus:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			id.Flags = (id.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			id.Description, id.Exts = s, append(id.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			id.Reference, id.Exts = s, append(id.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled identity child")
	}
	if err := parseChildren(p, KindIdentity, handle, &id.Exts); err != nil {
		return nil, err
	}
	return id, nil
}

func parseDeviation(p *parseEnv, start xml.StartElement) (*Deviation, error) {
	d := &Deviation{Statement: Statement{Kind: KindDeviation}}
	arg, err := bindArgument(p.dict, KindDeviation, start)
	if err != nil {
		return nil, err
	}
	d.TargetNode = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			d.Description, d.Exts = s, append(d.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			d.Reference, d.Exts = s, append(d.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled deviation child")
	}
	// deviate is not Unique in the deviation's own table (at least one,
	// any number) so it is dispatched by hand here instead of through
	// childTables[KindDeviation].
	var deviates []Deviate
	loop := func() error {
		for {
			tok, err := p.lx.Next()
			if err != nil {
				return err
			}
			switch tok.State {
			case AtElementEnd, AtEOF:
				return nil
			case AtText:
				continue
			case AtElementStart:
				kind := resolveKeyword(tok.Start.Name, KindDeviation)
				if kind == KindExtensionInstance {
					ext, err := parseExtensionInstance(p, tok.Start, KindDeviation)
					if err != nil {
						return err
					}
					d.Exts = append(d.Exts, ext)
					continue
				}
				if kind == KindDeviate {
					dv, err := parseDeviate(p, tok.Start)
					if err != nil {
						return err
					}
					deviates = append(deviates, dv)
					continue
				}
				if err := handle(kind, tok); err != nil {
					return err
				}
			}
		}
	}
	if err := loop(); err != nil {
		return nil, err
	}
	if len(deviates) == 0 {
		return nil, newErr(ErrKindMissingChild, p.lx.Line(), KindDeviate, "", "deviation requires at least one deviate statement")
	}
	d.Deviates = deviates
	return d, nil
}

// parseDeviate reads the deviate's own "value" argument (not-supported,
// add, replace or delete) and dispatches to the matching shape, each of
// which permits a different substatement set (spec.md §4.4, §9).
func parseDeviate(p *parseEnv, start xml.StartElement) (Deviate, error) {
	arg, err := bindArgument(p.dict, KindDeviate, start)
	if err != nil {
		return nil, err
	}
	switch arg.String() {
	case "not-supported":
		if _, err := consumeLeafOnly(p, KindDeviate); err != nil {
			return nil, err
		}
		return &DeviateNotSupported{Statement: Statement{Kind: KindDeviate, Arg: arg}}, nil
	case "add":
		return parseDeviateAdd(p, arg)
	case "replace":
		return parseDeviateReplace(p, arg)
	case "delete":
		return parseDeviateDelete(p, arg)
	default:
		return nil, newErr(ErrKindInvalidEnum, p.lx.Line(), KindDeviate, arg.String(), "must be 'not-supported', 'add', 'replace' or 'delete'")
	}
}

func parseDeviateAdd(p *parseEnv, arg Handle) (*DeviateAdd, error) {
	da := &DeviateAdd{Statement: Statement{Kind: KindDeviate, Arg: arg}}
	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindUnits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			da.Units = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			da.Musts = append(da.Musts, m)
			return nil
		case KindUnique:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			da.Unique = append(da.Unique, a.String())
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			da.Default = append(da.Default, a.String())
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindConfig:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(kind, a.String())
			if err != nil {
				return err
			}
			da.Config = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMandatory:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(kind, a.String())
			if err != nil {
				return err
			}
			da.Mandatory = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMinElements:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, _, err := parseUnboundedUint(a.String(), false)
			if err != nil {
				return err
			}
			da.MinElements = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMaxElements:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, unbounded, err := parseUnboundedUint(a.String(), true)
			if err != nil {
				return err
			}
			da.MaxElements, da.MaxUnbounded = &v, unbounded
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindType:
			return newErr(ErrKindInvalidDeviateSubstatement, p.lx.Line(), kind, "", "'type' is not valid under deviate add")
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled deviate add child")
	}
	if err := parseChildren(p, KindDeviate, handle, &da.Exts); err != nil {
		return nil, err
	}
	return da, nil
}

func parseDeviateReplace(p *parseEnv, arg Handle) (*DeviateReplace, error) {
	dr := &DeviateReplace{Statement: Statement{Kind: KindDeviate, Arg: arg}}
	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindType:
			t, err := parseType(p, tok.Start)
			dr.Type = t
			return err
		case KindUnits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			dr.Units = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			dr.Default = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindConfig:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(kind, a.String())
			if err != nil {
				return err
			}
			dr.Config = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMandatory:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(kind, a.String())
			if err != nil {
				return err
			}
			dr.Mandatory = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMinElements:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, _, err := parseUnboundedUint(a.String(), false)
			if err != nil {
				return err
			}
			dr.MinElements = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMaxElements:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, unbounded, err := parseUnboundedUint(a.String(), true)
			if err != nil {
				return err
			}
			dr.MaxElements, dr.MaxUnbounded = &v, unbounded
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMust, KindUnique:
			return newErr(ErrKindInvalidDeviateSubstatement, p.lx.Line(), kind, "", "not valid under deviate replace")
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled deviate replace child")
	}
	if err := parseChildren(p, KindDeviate, handle, &dr.Exts); err != nil {
		return nil, err
	}
	return dr, nil
}

func parseDeviateDelete(p *parseEnv, arg Handle) (*DeviateDelete, error) {
	dd := &DeviateDelete{Statement: Statement{Kind: KindDeviate, Arg: arg}}
	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindUnits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			dd.Units = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			dd.Musts = append(dd.Musts, m)
			return nil
		case KindUnique:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			dd.Unique = append(dd.Unique, a.String())
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			dd.Default = append(dd.Default, a.String())
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindType, KindConfig, KindMandatory, KindMinElements, KindMaxElements:
			return newErr(ErrKindInvalidDeviateSubstatement, p.lx.Line(), kind, "", "not valid under deviate delete")
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled deviate delete child")
	}
	if err := parseChildren(p, KindDeviate, handle, &dd.Exts); err != nil {
		return nil, err
	}
	return dd, nil
}

// parseExtensionInstance parses a statement resolving to a foreign
// namespace: its unprefixed XML attributes become synthetic
// FromAttribute children, its YIN/foreign-namespace element children are
// walked recursively, and text content is preserved verbatim when the
// element has no element children at all (spec.md §4.6).
func parseExtensionInstance(p *parseEnv, start xml.StartElement, carrier StatementKind) (*ExtensionInstance, error) {
	ext := &ExtensionInstance{
		Prefix:      "", // flexml resolves Name.Space; the raw prefix isn't preserved, so Local alone names the element
		Local:       start.Name.Local,
		CarrierSlot: carrier,
		Line:        p.lx.Line(),
	}
	for _, a := range start.Attr {
		if !attrIsUnprefixed(a) {
			continue
		}
		ext.Children = append(ext.Children, &ExtensionInstance{
			Local:         a.Name.Local,
			Argument:      a.Value,
			FromAttribute: true,
			Line:          ext.Line,
		})
	}

	var text []byte
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		switch tok.State {
		case AtElementEnd, AtEOF:
			if len(ext.Children) == 0 || allFromAttribute(ext.Children) {
				ext.Argument = string(text)
			}
			return ext, nil
		case AtText:
			text = append(text, tok.Text...)
		case AtElementStart:
			child, err := parseExtensionInstance(p, tok.Start, carrier)
			if err != nil {
				return nil, err
			}
			ext.Children = append(ext.Children, child)
		}
	}
}

func allFromAttribute(children []*ExtensionInstance) bool {
	for _, c := range children {
		if !c.FromAttribute {
			return false
		}
	}
	return true
}
