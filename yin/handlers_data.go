package yin

import xml "github.com/andaru/flexml"

func registerDataDefinitionChildTables() {
	reg(KindContainer,
		one(KindWhen), many(KindIfFeature), many(KindMust), one(KindPresence), one(KindConfig),
		one(KindStatus), one(KindDescription), one(KindReference),
		many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
		v2(many(KindAction)), v2(many(KindNotification)),
	)
	reg(KindLeaf,
		one(KindWhen), many(KindIfFeature), req(KindType), one(KindUnits), many(KindMust),
		one(KindDefault), one(KindConfig), one(KindMandatory), one(KindStatus), one(KindDescription), one(KindReference),
	)
	reg(KindLeafList,
		one(KindWhen), many(KindIfFeature), req(KindType), one(KindUnits), many(KindMust),
		v2(many(KindDefault)), one(KindConfig), one(KindMinElements), one(KindMaxElements), one(KindOrderedBy),
		one(KindStatus), one(KindDescription), one(KindReference),
	)
	reg(KindList,
		one(KindWhen), many(KindIfFeature), many(KindMust), one(KindKey), many(KindUnique),
		one(KindConfig), one(KindMinElements), one(KindMaxElements), one(KindOrderedBy),
		one(KindStatus), one(KindDescription), one(KindReference),
		many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
		v2(many(KindAction)), v2(many(KindNotification)),
	)
	reg(KindChoice,
		one(KindWhen), many(KindIfFeature), one(KindDefault), one(KindConfig), one(KindMandatory),
		one(KindStatus), one(KindDescription), one(KindReference),
		many(KindCase), many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice),
		v2(many(KindAnydata)), many(KindAnyxml),
	)
	reg(KindCase,
		one(KindWhen), many(KindIfFeature), one(KindStatus), one(KindDescription), one(KindReference),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
	)
	reg(KindAnydata,
		one(KindWhen), many(KindIfFeature), many(KindMust), one(KindConfig), one(KindMandatory),
		one(KindStatus), one(KindDescription), one(KindReference),
	)
	reg(KindAnyxml,
		one(KindWhen), many(KindIfFeature), many(KindMust), one(KindConfig), one(KindMandatory),
		one(KindStatus), one(KindDescription), one(KindReference),
	)
	reg(KindUses,
		one(KindWhen), many(KindIfFeature), one(KindStatus), one(KindDescription), one(KindReference),
		many(KindRefine), many(KindAugment),
	)
	reg(KindRefine,
		many(KindMust), one(KindPresence), many(KindDefault), one(KindConfig), one(KindMandatory),
		one(KindMinElements), one(KindMaxElements), one(KindDescription), one(KindReference),
		v2(many(KindIfFeature)),
	)
	reg(KindAugment,
		one(KindWhen), many(KindIfFeature), one(KindStatus), one(KindDescription), one(KindReference),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
		many(KindCase), v2(many(KindAction)), v2(many(KindNotification)),
	)
	reg(KindGrouping,
		one(KindStatus), one(KindDescription), one(KindReference),
		many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
		v2(many(KindAction)), v2(many(KindNotification)),
	)
	reg(KindNotification,
		many(KindIfFeature), many(KindMust), one(KindStatus), one(KindDescription), one(KindReference),
		many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
	)
	reg(KindRPC,
		many(KindIfFeature), one(KindStatus), one(KindDescription), one(KindReference),
		many(KindTypedef), many(KindGrouping), one(KindInput), one(KindOutput),
	)
	reg(KindAction,
		many(KindIfFeature), one(KindStatus), one(KindDescription), one(KindReference),
		many(KindTypedef), many(KindGrouping), one(KindInput), one(KindOutput),
	)
	reg(KindInput,
		many(KindMust), many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
	)
	reg(KindOutput,
		many(KindMust), many(KindTypedef), many(KindGrouping),
		many(KindContainer), many(KindLeaf), many(KindLeafList), many(KindList), many(KindChoice), many(KindAnydata), many(KindAnyxml), many(KindUses),
	)
}

// parseDataDefinition dispatches one of the eight data-definition statement
// kinds to its dedicated parse function (spec.md §4.3, the DataDefinition
// interface in tree.go).
func parseDataDefinition(p *parseEnv, kind StatementKind, start xml.StartElement) (DataDefinition, error) {
	switch kind {
	case KindContainer:
		return parseContainer(p, start)
	case KindLeaf:
		return parseLeaf(p, start)
	case KindLeafList:
		return parseLeafList(p, start)
	case KindList:
		return parseList(p, start)
	case KindChoice:
		return parseChoice(p, start)
	case KindAnydata:
		return parseAnydata(p, start)
	case KindAnyxml:
		return parseAnyxml(p, start)
	case KindUses:
		return parseUses(p, start)
	}
	return nil, newErr(ErrKindInternal, p.lx.Line(), kind, "", "not a data-definition statement")
}

func parseIfFeatureChild(p *parseEnv, tok Token) (string, error) {
	a, err := bindArgument(p.dict, KindIfFeature, tok.Start)
	if err != nil {
		return "", err
	}
	if _, err := consumeLeafOnly(p, KindIfFeature); err != nil {
		return "", err
	}
	return a.String(), nil
}

func parseContainer(p *parseEnv, start xml.StartElement) (*Container, error) {
	c := &Container{Statement: Statement{Kind: KindContainer, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindContainer, start)
	if err != nil {
		return nil, err
	}
	c.Name = arg.String()

	var acc bodyAccum
	handle := func(kind StatementKind, tok Token) error {
		if handled, herr := handleBodyChild(p, &acc, kind, tok); handled {
			return herr
		}
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			c.When = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			c.Musts = append(c.Musts, m)
			return nil
		case KindPresence:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			c.Presence = a.String()
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
			if v {
				c.Flags.add(FlagConfigTrue)
			} else {
				c.Flags.add(FlagConfigFalse)
			}
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
			c.Flags = (c.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			c.Description, c.Exts = s, append(c.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			c.Reference, c.Exts = s, append(c.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled container child")
	}
	if err := parseChildren(p, KindContainer, handle, &c.Exts); err != nil {
		return nil, err
	}
	c.Typedefs, c.Groupings, c.DataDefs, c.Actions, c.Notifications = acc.Typedefs, acc.Groupings, acc.DataDefs, acc.Actions, acc.Notifications
	recordScope(p, KindContainer, len(c.Typedefs) > 0, len(c.Groupings) > 0)
	return c, nil
}

func parseLeaf(p *parseEnv, start xml.StartElement) (*Leaf, error) {
	l := &Leaf{Statement: Statement{Kind: KindLeaf, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindLeaf, start)
	if err != nil {
		return nil, err
	}
	l.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			l.When = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindType:
			t, err := parseType(p, tok.Start)
			l.Type = t
			return err
		case KindUnits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			l.Units = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			l.Musts = append(l.Musts, m)
			return nil
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			l.Default = a.String()
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
			if v {
				l.Flags.add(FlagConfigTrue)
			} else {
				l.Flags.add(FlagConfigFalse)
			}
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
			if v {
				l.Flags.add(FlagMandatoryTrue)
			} else {
				l.Flags.add(FlagMandatoryFalse)
			}
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
			l.Flags = (l.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			l.Description, l.Exts = s, append(l.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			l.Reference, l.Exts = s, append(l.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled leaf child")
	}
	if err := parseChildren(p, KindLeaf, handle, &l.Exts); err != nil {
		return nil, err
	}
	if l.Flags.has(FlagMandatoryTrue) && l.Default != "" {
		return nil, newErr(ErrKindInvalidMinMax, p.lx.Line(), KindLeaf, l.Name, "leaf cannot be both mandatory and carry a default")
	}
	return l, nil
}

func parseLeafList(p *parseEnv, start xml.StartElement) (*LeafList, error) {
	ll := &LeafList{Statement: Statement{Kind: KindLeafList, Flags: FlagStatusCurrent}, MaxUnbounded: true}
	arg, err := bindArgument(p.dict, KindLeafList, start)
	if err != nil {
		return nil, err
	}
	ll.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			ll.When = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindType:
			t, err := parseType(p, tok.Start)
			ll.Type = t
			return err
		case KindUnits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			ll.Units = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			ll.Musts = append(ll.Musts, m)
			return nil
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			ll.Defaults = append(ll.Defaults, a.String())
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
			if v {
				ll.Flags.add(FlagConfigTrue)
			} else {
				ll.Flags.add(FlagConfigFalse)
			}
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
			ll.MinElements = v
			ll.Flags.add(FlagMinSet)
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
			ll.MaxElements, ll.MaxUnbounded = v, unbounded
			ll.Flags.add(FlagMaxSet)
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindOrderedBy:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			switch a.String() {
			case "system":
				ll.Flags.add(FlagOrderedBySystem)
			case "user":
				ll.Flags.add(FlagOrderedByUser)
				ll.OrderedByUser = true
			default:
				return newErr(ErrKindInvalidEnum, p.lx.Line(), kind, a.String(), "must be 'system' or 'user'")
			}
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
			ll.Flags = (ll.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			ll.Description, ll.Exts = s, append(ll.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			ll.Reference, ll.Exts = s, append(ll.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled leaf-list child")
	}
	if err := parseChildren(p, KindLeafList, handle, &ll.Exts); err != nil {
		return nil, err
	}
	if !ll.MaxUnbounded && ll.Flags.has(FlagMinSet) && ll.Flags.has(FlagMaxSet) && ll.MinElements > ll.MaxElements {
		return nil, newErr(ErrKindInvalidMinMax, p.lx.Line(), KindLeafList, ll.Name, "min-elements exceeds max-elements")
	}
	if ll.MinElements > 0 && len(ll.Defaults) > 0 {
		return nil, newErr(ErrKindInvalidMinMax, p.lx.Line(), KindLeafList, ll.Name, "leaf-list with min-elements > 0 cannot have a default")
	}
	return ll, nil
}

func parseList(p *parseEnv, start xml.StartElement) (*List, error) {
	lst := &List{Statement: Statement{Kind: KindList, Flags: FlagStatusCurrent}, MaxUnbounded: true}
	arg, err := bindArgument(p.dict, KindList, start)
	if err != nil {
		return nil, err
	}
	lst.Name = arg.String()

	var acc bodyAccum
	handle := func(kind StatementKind, tok Token) error {
		if handled, herr := handleBodyChild(p, &acc, kind, tok); handled {
			return herr
		}
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			lst.When = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			lst.Musts = append(lst.Musts, m)
			return nil
		case KindKey:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			lst.Key = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindUnique:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			lst.Unique = append(lst.Unique, a.String())
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
			if v {
				lst.Flags.add(FlagConfigTrue)
			} else {
				lst.Flags.add(FlagConfigFalse)
			}
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
			lst.MinElements = v
			lst.Flags.add(FlagMinSet)
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
			lst.MaxElements, lst.MaxUnbounded = v, unbounded
			lst.Flags.add(FlagMaxSet)
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindOrderedBy:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			switch a.String() {
			case "system":
				lst.Flags.add(FlagOrderedBySystem)
			case "user":
				lst.Flags.add(FlagOrderedByUser)
				lst.OrderedByUser = true
			default:
				return newErr(ErrKindInvalidEnum, p.lx.Line(), kind, a.String(), "must be 'system' or 'user'")
			}
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
			lst.Flags = (lst.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			lst.Description, lst.Exts = s, append(lst.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			lst.Reference, lst.Exts = s, append(lst.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled list child")
	}
	if err := parseChildren(p, KindList, handle, &lst.Exts); err != nil {
		return nil, err
	}
	lst.Typedefs, lst.Groupings, lst.DataDefs, lst.Actions, lst.Notifications = acc.Typedefs, acc.Groupings, acc.DataDefs, acc.Actions, acc.Notifications
	recordScope(p, KindList, len(lst.Typedefs) > 0, len(lst.Groupings) > 0)
	if !lst.MaxUnbounded && lst.Flags.has(FlagMinSet) && lst.Flags.has(FlagMaxSet) && lst.MinElements > lst.MaxElements {
		return nil, newErr(ErrKindInvalidMinMax, p.lx.Line(), KindList, lst.Name, "min-elements exceeds max-elements")
	}
	return lst, nil
}

func parseChoice(p *parseEnv, start xml.StartElement) (*Choice, error) {
	ch := &Choice{Statement: Statement{Kind: KindChoice, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindChoice, start)
	if err != nil {
		return nil, err
	}
	ch.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			ch.When = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			ch.Default = a.String()
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
			if v {
				ch.Flags.add(FlagConfigTrue)
			} else {
				ch.Flags.add(FlagConfigFalse)
			}
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
			if v {
				ch.Flags.add(FlagMandatoryTrue)
			} else {
				ch.Flags.add(FlagMandatoryFalse)
			}
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
			ch.Flags = (ch.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			ch.Description, ch.Exts = s, append(ch.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			ch.Reference, ch.Exts = s, append(ch.Exts, exts...)
			return err
		case KindCase:
			c, err := parseCase(p, tok.Start)
			if err != nil {
				return err
			}
			ch.Cases = append(ch.Cases, c)
			return nil
		case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindAnydata, KindAnyxml:
			// Short-form case: a bare data definition directly under choice
			// is sugar for a <case> wrapping exactly that one statement
			// (spec.md §9, RFC 7950 §7.9.2).
			dd, err := parseDataDefinition(p, kind, tok.Start)
			if err != nil {
				return err
			}
			ch.Cases = append(ch.Cases, &Case{
				Statement: Statement{Kind: KindCase},
				Name:      dataDefName(dd),
				DataDefs:  []DataDefinition{dd},
			})
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled choice child")
	}
	if err := parseChildren(p, KindChoice, handle, &ch.Exts); err != nil {
		return nil, err
	}
	return ch, nil
}

// dataDefName returns the name a short-form case under choice inherits
// from its single data definition (spec.md §9).
func dataDefName(dd DataDefinition) string {
	switch v := dd.(type) {
	case *Container:
		return v.Name
	case *Leaf:
		return v.Name
	case *LeafList:
		return v.Name
	case *List:
		return v.Name
	case *Choice:
		return v.Name
	case *Anydata:
		return v.Name
	case *Anyxml:
		return v.Name
	case *Action:
		return v.Name
	}
	return ""
}

func parseCase(p *parseEnv, start xml.StartElement) (*Case, error) {
	c := &Case{Statement: Statement{Kind: KindCase, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindCase, start)
	if err != nil {
		return nil, err
	}
	c.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			c.When = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
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
			c.Flags = (c.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			c.Description, c.Exts = s, append(c.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			c.Reference, c.Exts = s, append(c.Exts, exts...)
			return err
		case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindAnydata, KindAnyxml, KindUses:
			dd, err := parseDataDefinition(p, kind, tok.Start)
			if err != nil {
				return err
			}
			c.DataDefs = append(c.DataDefs, dd)
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled case child")
	}
	if err := parseChildren(p, KindCase, handle, &c.Exts); err != nil {
		return nil, err
	}
	return c, nil
}

func parseAnydata(p *parseEnv, start xml.StartElement) (*Anydata, error) {
	a := &Anydata{Statement: Statement{Kind: KindAnydata, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindAnydata, start)
	if err != nil {
		return nil, err
	}
	a.Name = arg.String()
	if err := parseAnyCommon(p, KindAnydata, &a.When, &a.Musts, &a.Flags, &a.Description, &a.Reference, &a.Exts); err != nil {
		return nil, err
	}
	return a, nil
}

func parseAnyxml(p *parseEnv, start xml.StartElement) (*Anyxml, error) {
	a := &Anyxml{Statement: Statement{Kind: KindAnyxml, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindAnyxml, start)
	if err != nil {
		return nil, err
	}
	a.Name = arg.String()
	if err := parseAnyCommon(p, KindAnyxml, &a.When, &a.Musts, &a.Flags, &a.Description, &a.Reference, &a.Exts); err != nil {
		return nil, err
	}
	return a, nil
}

// parseAnyCommon holds the shared anydata/anyxml substatement handling:
// these two kinds differ only in their own StatementKind.
func parseAnyCommon(p *parseEnv, kind StatementKind, when **When, musts *[]*Must, flags *NodeFlags, description, reference *string, exts *[]*ExtensionInstance) error {
	handle := func(childKind StatementKind, tok Token) error {
		switch childKind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			*when = w
			return err
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			*musts = append(*musts, m)
			return nil
		case KindConfig:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(childKind, a.String())
			if err != nil {
				return err
			}
			if v {
				flags.add(FlagConfigTrue)
			} else {
				flags.add(FlagConfigFalse)
			}
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindMandatory:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(childKind, a.String())
			if err != nil {
				return err
			}
			if v {
				flags.add(FlagMandatoryTrue)
			} else {
				flags.add(FlagMandatoryFalse)
			}
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindStatus:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			*flags = (*flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindDescription:
			s, e, err := parseOptionalText(p, childKind)
			*description, *exts = s, append(*exts, e...)
			return err
		case KindReference:
			s, e, err := parseOptionalText(p, childKind)
			*reference, *exts = s, append(*exts, e...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), childKind, "", "unhandled anydata/anyxml child")
	}
	return parseChildren(p, kind, handle, exts)
}

func parseUses(p *parseEnv, start xml.StartElement) (*Uses, error) {
	u := &Uses{Statement: Statement{Kind: KindUses, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindUses, start)
	if err != nil {
		return nil, err
	}
	u.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			u.When = w
			return err
		case KindIfFeature:
			s, err := parseIfFeatureChild(p, tok)
			u.IfFeatures = append(u.IfFeatures, s)
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
			u.Flags = (u.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			u.Description, u.Exts = s, append(u.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			u.Reference, u.Exts = s, append(u.Exts, exts...)
			return err
		case KindRefine:
			r, err := parseRefine(p, tok.Start)
			if err != nil {
				return err
			}
			u.Refines = append(u.Refines, r)
			return nil
		case KindAugment:
			au, err := parseAugment(p, tok.Start)
			if err != nil {
				return err
			}
			u.Augments = append(u.Augments, au)
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled uses child")
	}
	if err := parseChildren(p, KindUses, handle, &u.Exts); err != nil {
		return nil, err
	}
	return u, nil
}

func parseRefine(p *parseEnv, start xml.StartElement) (*Refine, error) {
	r := &Refine{Statement: Statement{Kind: KindRefine}}
	arg, err := bindArgument(p.dict, KindRefine, start)
	if err != nil {
		return nil, err
	}
	r.TargetNode = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindIfFeature:
			_, err := parseIfFeatureChild(p, tok)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			r.Musts = append(r.Musts, m)
			return nil
		case KindPresence:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			r.Presence = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			r.Default = append(r.Default, a.String())
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
			r.Config = &v
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
			r.Mandatory = &v
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
			r.MinElements = &v
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
			r.MaxElements, r.MaxUnbounded = &v, unbounded
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			r.Description, r.Exts = s, append(r.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			r.Reference, r.Exts = s, append(r.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled refine child")
	}
	if err := parseChildren(p, KindRefine, handle, &r.Exts); err != nil {
		return nil, err
	}
	return r, nil
}

func parseAugment(p *parseEnv, start xml.StartElement) (*Augment, error) {
	au := &Augment{Statement: Statement{Kind: KindAugment, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindAugment, start)
	if err != nil {
		return nil, err
	}
	au.TargetNode = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindWhen:
			w, err := parseWhen(p, tok.Start)
			au.When = w
			return err
		case KindIfFeature:
			s, err := parseIfFeatureChild(p, tok)
			au.IfFeatures = append(au.IfFeatures, s)
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
			au.Flags = (au.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			au.Description, au.Exts = s, append(au.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			au.Reference, au.Exts = s, append(au.Exts, exts...)
			return err
		case KindCase:
			c, err := parseCase(p, tok.Start)
			if err != nil {
				return err
			}
			au.Cases = append(au.Cases, c)
			return nil
		case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindAnydata, KindAnyxml, KindUses:
			dd, err := parseDataDefinition(p, kind, tok.Start)
			if err != nil {
				return err
			}
			au.DataDefs = append(au.DataDefs, dd)
			return nil
		case KindAction:
			a, err := parseAction(p, tok.Start)
			if err != nil {
				return err
			}
			au.Actions = append(au.Actions, a)
			return nil
		case KindNotification:
			n, err := parseNotification(p, tok.Start)
			if err != nil {
				return err
			}
			au.Notifications = append(au.Notifications, n)
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled augment child")
	}
	if err := parseChildren(p, KindAugment, handle, &au.Exts); err != nil {
		return nil, err
	}
	return au, nil
}

func parseGrouping(p *parseEnv, start xml.StartElement) (*Grouping, error) {
	g := &Grouping{Statement: Statement{Kind: KindGrouping, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindGrouping, start)
	if err != nil {
		return nil, err
	}
	g.Name = arg.String()

	var acc bodyAccum
	handle := func(kind StatementKind, tok Token) error {
		if handled, herr := handleBodyChild(p, &acc, kind, tok); handled {
			return herr
		}
		switch kind {
		case KindStatus:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			g.Flags = (g.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			g.Description, g.Exts = s, append(g.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			g.Reference, g.Exts = s, append(g.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled grouping child")
	}
	if err := parseChildren(p, KindGrouping, handle, &g.Exts); err != nil {
		return nil, err
	}
	g.Typedefs, g.Groupings, g.DataDefs, g.Actions, g.Notifications = acc.Typedefs, acc.Groupings, acc.DataDefs, acc.Actions, acc.Notifications
	recordScope(p, KindGrouping, len(g.Typedefs) > 0, len(g.Groupings) > 0)
	return g, nil
}

func parseNotification(p *parseEnv, start xml.StartElement) (*Notification, error) {
	n := &Notification{Statement: Statement{Kind: KindNotification, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindNotification, start)
	if err != nil {
		return nil, err
	}
	n.Name = arg.String()

	var acc bodyAccum
	handle := func(kind StatementKind, tok Token) error {
		if handled, herr := handleBodyChild(p, &acc, kind, tok); handled {
			return herr
		}
		switch kind {
		case KindIfFeature:
			s, err := parseIfFeatureChild(p, tok)
			n.IfFeatures = append(n.IfFeatures, s)
			return err
		case KindMust:
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			n.Musts = append(n.Musts, m)
			return nil
		case KindStatus:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			n.Flags = (n.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			n.Description, n.Exts = s, append(n.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			n.Reference, n.Exts = s, append(n.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled notification child")
	}
	if err := parseChildren(p, KindNotification, handle, &n.Exts); err != nil {
		return nil, err
	}
	n.Typedefs, n.Groupings, n.DataDefs = acc.Typedefs, acc.Groupings, acc.DataDefs
	recordScope(p, KindNotification, len(n.Typedefs) > 0, len(n.Groupings) > 0)
	return n, nil
}

func parseRPCOrAction(p *parseEnv, kind StatementKind) (name string, ifFeatures []string, typedefs []*Typedef, groupings []*Grouping, input *Input, output *Output, description, reference string, flags NodeFlags, exts []*ExtensionInstance, err error) {
	flags = FlagStatusCurrent
	handle := func(childKind StatementKind, tok Token) error {
		switch childKind {
		case KindIfFeature:
			s, err := parseIfFeatureChild(p, tok)
			ifFeatures = append(ifFeatures, s)
			return err
		case KindTypedef:
			td, err := parseTypedef(p, tok.Start)
			if err != nil {
				return err
			}
			typedefs = append(typedefs, td)
			return nil
		case KindGrouping:
			g, err := parseGrouping(p, tok.Start)
			if err != nil {
				return err
			}
			groupings = append(groupings, g)
			return nil
		case KindInput:
			in, err := parseInput(p, tok.Start)
			input = in
			return err
		case KindOutput:
			out, err := parseOutput(p, tok.Start)
			output = out
			return err
		case KindStatus:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			fl, err := parseStatusArg(a.String())
			if err != nil {
				return err
			}
			flags = (flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindDescription:
			s, e, err := parseOptionalText(p, childKind)
			description, exts = s, append(exts, e...)
			return err
		case KindReference:
			s, e, err := parseOptionalText(p, childKind)
			reference, exts = s, append(exts, e...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), childKind, "", "unhandled rpc/action child")
	}
	err = parseChildren(p, kind, handle, &exts)
	if err == nil {
		recordScope(p, kind, len(typedefs) > 0, len(groupings) > 0)
	}
	return
}

func parseRPC(p *parseEnv, start xml.StartElement) (*RPC, error) {
	arg, err := bindArgument(p.dict, KindRPC, start)
	if err != nil {
		return nil, err
	}
	_, ifs, tds, gs, in, out, desc, ref, flags, exts, err := parseRPCOrAction(p, KindRPC)
	if err != nil {
		return nil, err
	}
	return &RPC{
		Statement:   Statement{Kind: KindRPC, Arg: arg, Flags: flags, Exts: exts},
		Name:        arg.String(),
		IfFeatures:  ifs,
		Typedefs:    tds,
		Groupings:   gs,
		Input:       in,
		Output:      out,
		Description: desc,
		Reference:   ref,
	}, nil
}

func parseAction(p *parseEnv, start xml.StartElement) (*Action, error) {
	arg, err := bindArgument(p.dict, KindAction, start)
	if err != nil {
		return nil, err
	}
	_, ifs, tds, gs, in, out, desc, ref, flags, exts, err := parseRPCOrAction(p, KindAction)
	if err != nil {
		return nil, err
	}
	return &Action{
		Statement:   Statement{Kind: KindAction, Arg: arg, Flags: flags, Exts: exts},
		Name:        arg.String(),
		IfFeatures:  ifs,
		Typedefs:    tds,
		Groupings:   gs,
		Input:       in,
		Output:      out,
		Description: desc,
		Reference:   ref,
	}, nil
}

func parseInOut(p *parseEnv, kind StatementKind) (musts []*Must, typedefs []*Typedef, groupings []*Grouping, dataDefs []DataDefinition, exts []*ExtensionInstance, err error) {
	var acc bodyAccum
	handle := func(childKind StatementKind, tok Token) error {
		if handled, herr := handleBodyChild(p, &acc, childKind, tok); handled {
			return herr
		}
		if childKind == KindMust {
			m, err := parseMust(p, tok.Start)
			if err != nil {
				return err
			}
			musts = append(musts, m)
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), childKind, "", "unhandled input/output child")
	}
	err = parseChildren(p, kind, handle, &exts)
	typedefs, groupings, dataDefs = acc.Typedefs, acc.Groupings, acc.DataDefs
	if err == nil {
		recordScope(p, kind, len(typedefs) > 0, len(groupings) > 0)
	}
	return
}

func parseInput(p *parseEnv, start xml.StartElement) (*Input, error) {
	musts, tds, gs, dds, exts, err := parseInOut(p, KindInput)
	if err != nil {
		return nil, err
	}
	return &Input{Statement: Statement{Kind: KindInput, Exts: exts}, Musts: musts, Typedefs: tds, Groupings: gs, DataDefs: dds}, nil
}

func parseOutput(p *parseEnv, start xml.StartElement) (*Output, error) {
	musts, tds, gs, dds, exts, err := parseInOut(p, KindOutput)
	if err != nil {
		return nil, err
	}
	return &Output{Statement: Statement{Kind: KindOutput, Exts: exts}, Musts: musts, Typedefs: tds, Groupings: gs, DataDefs: dds}, nil
}
