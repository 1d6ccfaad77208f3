package yin

import xml "github.com/andaru/flexml"

func registerTypeChildTables() {
	reg(KindType,
		many(KindBase), one(KindFractionDigits), one(KindLength), many(KindPattern),
		one(KindRange), one(KindPath), one(KindRequireInstance), many(KindBit), many(KindEnum), many(KindType),
	)
	reg(KindTypedef, req(KindType), one(KindUnits), one(KindDefault), one(KindStatus), one(KindDescription), one(KindReference))
	reg(KindPattern, v2(one(KindModifier)), one(KindErrorAppTag), one(KindErrorMessage), one(KindDescription), one(KindReference))
	reg(KindRange, one(KindErrorAppTag), one(KindErrorMessage), one(KindDescription), one(KindReference))
	reg(KindLength, one(KindErrorAppTag), one(KindErrorMessage), one(KindDescription), one(KindReference))
	reg(KindMust, one(KindErrorAppTag), one(KindErrorMessage), one(KindDescription), one(KindReference))
	reg(KindWhen, one(KindDescription), one(KindReference))
	reg(KindEnum, one(KindValue), one(KindStatus), one(KindDescription), one(KindReference), v2(many(KindIfFeature)))
	reg(KindBit, one(KindPosition), one(KindStatus), one(KindDescription), one(KindReference), v2(many(KindIfFeature)))
}

func parseType(p *parseEnv, start xml.StartElement) (*Type, error) {
	t := &Type{Statement: Statement{Kind: KindType}}
	arg, err := bindArgument(p.dict, KindType, start)
	if err != nil {
		return nil, err
	}
	t.Name = arg.String()

	var nextEnumValue int32
	var nextBitPosition uint32

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindBase:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			t.Bases = append(t.Bases, a.String())
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindFractionDigits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseFractionDigits(a.String())
			if err != nil {
				return err
			}
			t.FractionDigits = v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindLength:
			l, err := parseLength(p, tok.Start)
			t.Length = l
			return err
		case KindPattern:
			pat, err := parsePattern(p, tok.Start)
			if err != nil {
				return err
			}
			t.Patterns = append(t.Patterns, pat)
			return nil
		case KindRange:
			r, err := parseRange(p, tok.Start)
			t.Range = r
			return err
		case KindPath:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			t.Path = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindRequireInstance:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseBoolArg(kind, a.String())
			if err != nil {
				return err
			}
			t.RequireInstance = &v
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindBit:
			b, err := parseBit(p, tok.Start, nextBitPosition)
			if err != nil {
				return err
			}
			nextBitPosition = b.Position + 1
			for _, existing := range t.Bits {
				if existing.Position == b.Position {
					return newErr(ErrKindNameCollision, p.lx.Line(), KindBit, b.Name, "duplicate bit position")
				}
				if existing.Name == b.Name {
					return newErr(ErrKindNameCollision, p.lx.Line(), KindBit, b.Name, "duplicate bit name")
				}
			}
			t.Bits = append(t.Bits, b)
			return nil
		case KindEnum:
			e, err := parseEnum(p, tok.Start, nextEnumValue)
			if err != nil {
				return err
			}
			nextEnumValue = e.Value + 1
			for _, existing := range t.Enums {
				if existing.Value == e.Value {
					return newErr(ErrKindNameCollision, p.lx.Line(), KindEnum, e.Name, "duplicate enum value")
				}
				if existing.Name == e.Name {
					return newErr(ErrKindNameCollision, p.lx.Line(), KindEnum, e.Name, "duplicate enum name")
				}
			}
			t.Enums = append(t.Enums, e)
			return nil
		case KindType:
			member, err := parseType(p, tok.Start)
			if err != nil {
				return err
			}
			t.Flags.add(FlagTypeSet)
			t.Types = append(t.Types, member)
			return nil
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled type child")
	}
	if err := parseChildren(p, KindType, handle, &t.Exts); err != nil {
		return nil, err
	}
	return t, nil
}

func parseTypedef(p *parseEnv, start xml.StartElement) (*Typedef, error) {
	td := &Typedef{Statement: Statement{Kind: KindTypedef}}
	arg, err := bindArgument(p.dict, KindTypedef, start)
	if err != nil {
		return nil, err
	}
	td.Name = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindType:
			t, err := parseType(p, tok.Start)
			td.Type = t
			return err
		case KindUnits:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			td.Units = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDefault:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			td.Default = a.String()
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
			td.Flags.add(fl)
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			td.Description, td.Exts = s, append(td.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			td.Reference, td.Exts = s, append(td.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled typedef child")
	}
	if err := parseChildren(p, KindTypedef, handle, &td.Exts); err != nil {
		return nil, err
	}
	if td.Type != nil && td.Name == td.Type.Name {
		return nil, newErr(ErrKindNameCollision, p.lx.Line(), KindTypedef, td.Name, "typedef name must not equal its base type name")
	}
	return td, nil
}

// parseRestrictionCommon holds the error-app-tag/error-message/description/
// reference substatements shared by range, length and must (spec.md §4.4);
// parsePattern handles the same children with its own handler.
func parseRestrictionCommon(p *parseEnv, kind StatementKind, errorAppTag, errorMessage, description, reference *string, exts *[]*ExtensionInstance) error {
	handle := func(childKind StatementKind, tok Token) error {
		switch childKind {
		case KindErrorAppTag:
			a, err := bindArgument(p.dict, childKind, tok.Start)
			if err != nil {
				return err
			}
			*errorAppTag = a.String()
			_, err = consumeLeafOnly(p, childKind)
			return err
		case KindErrorMessage:
			s, e, err := parseOptionalText(p, childKind)
			*errorMessage, *exts = s, append(*exts, e...)
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
		return newErr(ErrKindInternal, p.lx.Line(), childKind, "", "unhandled restriction child")
	}
	return parseChildren(p, kind, handle, exts)
}

func parsePattern(p *parseEnv, start xml.StartElement) (*Pattern, error) {
	pat := &Pattern{Statement: Statement{Kind: KindPattern}}
	arg, err := bindArgument(p.dict, KindPattern, start)
	if err != nil {
		return nil, err
	}
	pat.Value = string([]byte{patternSentinelMatch}) + arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindModifier:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			if a.String() != "invert-match" {
				return newErr(ErrKindInvalidEnum, p.lx.Line(), kind, a.String(), "must be 'invert-match'")
			}
			// Retroactively rewrite the sentinel byte set when the
			// pattern's own argument was bound (spec.md §4.4/§9).
			pat.Value = string([]byte{patternSentinelInvertMatch}) + pat.Value[1:]
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindErrorAppTag:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			pat.ErrorAppTag = a.String()
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindErrorMessage:
			s, exts, err := parseOptionalText(p, kind)
			pat.ErrorMessage, pat.Exts = s, append(pat.Exts, exts...)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			pat.Description, pat.Exts = s, append(pat.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			pat.Reference, pat.Exts = s, append(pat.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled pattern child")
	}
	if err := parseChildren(p, KindPattern, handle, &pat.Exts); err != nil {
		return nil, err
	}
	return pat, nil
}

func parseRange(p *parseEnv, start xml.StartElement) (*Range, error) {
	r := &Range{Statement: Statement{Kind: KindRange}}
	arg, err := bindArgument(p.dict, KindRange, start)
	if err != nil {
		return nil, err
	}
	r.Value = arg.String()
	if err := parseRestrictionCommon(p, KindRange, &r.ErrorAppTag, &r.ErrorMessage, &r.Description, &r.Reference, &r.Exts); err != nil {
		return nil, err
	}
	return r, nil
}

func parseLength(p *parseEnv, start xml.StartElement) (*Length, error) {
	l := &Length{Statement: Statement{Kind: KindLength}}
	arg, err := bindArgument(p.dict, KindLength, start)
	if err != nil {
		return nil, err
	}
	l.Value = arg.String()
	if err := parseRestrictionCommon(p, KindLength, &l.ErrorAppTag, &l.ErrorMessage, &l.Description, &l.Reference, &l.Exts); err != nil {
		return nil, err
	}
	return l, nil
}

func parseMust(p *parseEnv, start xml.StartElement) (*Must, error) {
	m := &Must{Statement: Statement{Kind: KindMust}}
	arg, err := bindArgument(p.dict, KindMust, start)
	if err != nil {
		return nil, err
	}
	m.Condition = arg.String()
	if err := parseRestrictionCommon(p, KindMust, &m.ErrorAppTag, &m.ErrorMessage, &m.Description, &m.Reference, &m.Exts); err != nil {
		return nil, err
	}
	return m, nil
}

func parseWhen(p *parseEnv, start xml.StartElement) (*When, error) {
	w := &When{Statement: Statement{Kind: KindWhen}}
	arg, err := bindArgument(p.dict, KindWhen, start)
	if err != nil {
		return nil, err
	}
	w.Condition = arg.String()

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			w.Description, w.Exts = s, append(w.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			w.Reference, w.Exts = s, append(w.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled when child")
	}
	if err := parseChildren(p, KindWhen, handle, &w.Exts); err != nil {
		return nil, err
	}
	return w, nil
}

func parseEnum(p *parseEnv, start xml.StartElement, defaultValue int32) (*Enum, error) {
	e := &Enum{Statement: Statement{Kind: KindEnum, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindEnum, start)
	if err != nil {
		return nil, err
	}
	e.Name = arg.String()
	e.Value = defaultValue

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindValue:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseStrictInt32(a.String())
			if err != nil {
				return err
			}
			e.Value, e.HasValue = v, true
			_, err = consumeLeafOnly(p, kind)
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
			e.Flags = (e.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			e.Description, e.Exts = s, append(e.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			e.Reference, e.Exts = s, append(e.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled enum child")
	}
	if err := parseChildren(p, KindEnum, handle, &e.Exts); err != nil {
		return nil, err
	}
	return e, nil
}

func parseBit(p *parseEnv, start xml.StartElement, defaultPosition uint32) (*Bit, error) {
	b := &Bit{Statement: Statement{Kind: KindBit, Flags: FlagStatusCurrent}}
	arg, err := bindArgument(p.dict, KindBit, start)
	if err != nil {
		return nil, err
	}
	b.Name = arg.String()
	b.Position = defaultPosition

	handle := func(kind StatementKind, tok Token) error {
		switch kind {
		case KindPosition:
			a, err := bindArgument(p.dict, kind, tok.Start)
			if err != nil {
				return err
			}
			v, err := parseStrictUint32(a.String())
			if err != nil {
				return err
			}
			b.Position, b.HasPosition = v, true
			_, err = consumeLeafOnly(p, kind)
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
			b.Flags = (b.Flags &^ (FlagStatusCurrent | FlagStatusDeprecated | FlagStatusObsolete)) | fl
			_, err = consumeLeafOnly(p, kind)
			return err
		case KindDescription:
			s, exts, err := parseOptionalText(p, kind)
			b.Description, b.Exts = s, append(b.Exts, exts...)
			return err
		case KindReference:
			s, exts, err := parseOptionalText(p, kind)
			b.Reference, b.Exts = s, append(b.Exts, exts...)
			return err
		}
		return newErr(ErrKindInternal, p.lx.Line(), kind, "", "unhandled bit child")
	}
	if err := parseChildren(p, KindBit, handle, &b.Exts); err != nil {
		return nil, err
	}
	return b, nil
}
