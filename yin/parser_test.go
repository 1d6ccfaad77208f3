package yin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testModuleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<module name="example" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
  <yang-version value="1.1"/>
  <namespace uri="urn:example:example"/>
  <prefix value="ex"/>
  <organization><text>Example Org</text></organization>
  <description><text>An example module.</text></description>
  <revision date="2024-01-01">
    <description><text>initial</text></description>
  </revision>
  <feature name="advanced">
    <description><text>an advanced feature</text></description>
  </feature>
  <identity name="base-id"/>
  <identity name="derived-id">
    <base name="base-id"/>
  </identity>
  <typedef name="percent">
    <type name="uint8">
      <range value="0..100"/>
    </type>
  </typedef>
  <container name="top">
    <leaf name="mode">
      <type name="enumeration">
        <enum name="a"/>
        <enum name="b">
          <value value="5"/>
        </enum>
        <enum name="c"/>
      </type>
    </leaf>
    <leaf name="tag">
      <type name="string">
        <pattern value="[a-z]+">
          <modifier value="invert-match"/>
        </pattern>
      </type>
    </leaf>
    <leaf-list name="tags">
      <type name="string"/>
      <max-elements value="unbounded"/>
    </leaf-list>
    <action name="reset">
      <input>
        <leaf name="force">
          <type name="boolean"/>
        </leaf>
      </input>
      <output>
        <leaf name="ok">
          <type name="boolean"/>
        </leaf>
      </output>
    </action>
    <notification name="changed">
      <description><text>top changed</text></description>
    </notification>
  </container>
  <deviation target-node="/ex:top/ex:mode">
    <deviate value="add">
      <default value="a"/>
    </deviate>
  </deviation>
</module>
`

func TestParseModuleEndToEnd(t *testing.T) {
	a := assert.New(t)
	mod, ctx, err := ParseModule(strings.NewReader(testModuleDoc), NewDictionary())
	if !a.NoError(err) {
		return
	}
	a.Equal("example", mod.Name)
	a.Equal("urn:example:example", mod.Namespace)
	a.Equal("ex", mod.Prefix)
	a.Equal(Version1_1, mod.YangVersion)
	a.Equal(Version1_1, ctx.Version)
	a.Equal([]StatementKind{KindModule}, ctx.TypedefScopes, "module carries its own typedef, 'top' container does not")
	a.Empty(ctx.GroupingScopes)
	a.Equal("Example Org", mod.Organization)
	a.Equal("An example module.", mod.Description)

	if a.Len(mod.Revisions, 1) {
		a.Equal("2024-01-01", mod.Revisions[0].Date)
	}
	if a.Len(mod.Features, 1) {
		a.Equal("advanced", mod.Features[0].Name)
	}
	if a.Len(mod.Identities, 2) {
		a.Equal("base-id", mod.Identities[0].Name)
		a.Equal("derived-id", mod.Identities[1].Name)
		a.Equal([]string{"base-id"}, mod.Identities[1].Bases)
	}
	if a.Len(mod.Typedefs, 1) {
		td := mod.Typedefs[0]
		a.Equal("percent", td.Name)
		a.Equal("uint8", td.Type.Name)
		if a.NotNil(td.Type.Range) {
			a.Equal("0..100", td.Type.Range.Value)
		}
	}

	if !a.Len(mod.DataDefs, 1) {
		return
	}
	top, ok := mod.DataDefs[0].(*Container)
	if !a.True(ok) {
		return
	}
	a.Equal("top", top.Name)
	if a.Len(top.DataDefs, 3) {
		mode, ok := top.DataDefs[0].(*Leaf)
		if a.True(ok) && a.NotNil(mode.Type) {
			enums := mode.Type.Enums
			if a.Len(enums, 3) {
				a.Equal("a", enums[0].Name)
				a.Equal(int32(0), enums[0].Value)
				a.Equal("b", enums[1].Name)
				a.Equal(int32(5), enums[1].Value)
				a.True(enums[1].HasValue)
				a.Equal("c", enums[2].Name)
				a.Equal(int32(6), enums[2].Value)
				a.False(enums[2].HasValue)
			}
		}

		tag, ok := top.DataDefs[1].(*Leaf)
		if a.True(ok) && a.NotNil(tag.Type) && a.Len(tag.Type.Patterns, 1) {
			pat := tag.Type.Patterns[0]
			a.True(pat.InvertMatch())
			a.Equal("[a-z]+", pat.Text())
		}

		tags, ok := top.DataDefs[2].(*LeafList)
		if a.True(ok) {
			a.True(tags.MaxUnbounded)
		}
	}
	if a.Len(top.Actions, 1) {
		ac := top.Actions[0]
		a.Equal("reset", ac.Name)
		a.NotNil(ac.Input)
		a.NotNil(ac.Output)
	}
	if a.Len(top.Notifications, 1) {
		a.Equal("changed", top.Notifications[0].Name)
	}

	if a.Len(mod.Deviations, 1) {
		dev := mod.Deviations[0]
		a.Equal("/ex:top/ex:mode", dev.TargetNode)
		if a.Len(dev.Deviates, 1) {
			add, ok := dev.Deviates[0].(*DeviateAdd)
			if a.True(ok) {
				a.Equal([]string{"a"}, add.Default)
			}
		}
	}
}

func TestParseModuleErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		kind ErrorKind
	}{
		{
			name: "empty document",
			doc:  ``,
			kind: ErrKindModuleSubmoduleExpected,
		},
		{
			name: "wrong root element",
			doc: `<container xmlns="urn:ietf:params:xml:ns:yang:yin:1" name="x"/>`,
			kind: ErrKindModuleSubmoduleExpected,
		},
		{
			name: "trailing garbage after root",
			doc: `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
				<namespace uri="urn:m"/>
				<prefix value="m"/>
			</module>
			<module name="m2" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
				<namespace uri="urn:m2"/>
				<prefix value="m2"/>
			</module>`,
			kind: ErrKindTrailingGarbage,
		},
		{
			name: "missing mandatory namespace and prefix",
			doc: `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
				<description><text>no namespace or prefix</text></description>
			</module>`,
			kind: ErrKindMissingChild,
		},
		{
			name: "duplicate namespace",
			doc: `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
				<namespace uri="urn:m"/>
				<namespace uri="urn:m2"/>
				<prefix value="m"/>
			</module>`,
			kind: ErrKindDuplicateChild,
		},
		{
			name: "yang-version out of first position",
			doc: `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
				<namespace uri="urn:m"/>
				<yang-version value="1.1"/>
				<prefix value="m"/>
			</module>`,
			kind: ErrKindFirstViolation,
		},
		{
			name: "action requires yang-version 1.1",
			doc: `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
				<namespace uri="urn:m"/>
				<prefix value="m"/>
				<container name="top">
					<action name="reset">
						<input/>
						<output/>
					</action>
				</container>
			</module>`,
			kind: ErrKindVersionTooLow,
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseModule(strings.NewReader(tt.doc), NewDictionary())
			if !assert.Error(t, err) {
				return
			}
			assert.True(t, IsKind(err, tt.kind), "got error %v, want kind %v", err, tt.kind)
		})
	}
}

func TestParseSubmoduleInheritsVersion(t *testing.T) {
	a := assert.New(t)
	_, mainCtx, err := ParseModule(strings.NewReader(testModuleDoc), NewDictionary())
	if !a.NoError(err) {
		return
	}

	subDoc := `<submodule name="example-sub" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
		<belongs-to module="example">
			<prefix value="ex"/>
		</belongs-to>
		<grouping name="extra-fields">
			<leaf name="note"><type name="string"/></leaf>
		</grouping>
		<container name="extra">
			<action name="ping">
				<input/>
				<output/>
			</action>
		</container>
	</submodule>`
	sub, subCtx, err := ParseSubmodule(strings.NewReader(subDoc), mainCtx, NewDictionary())
	if !a.NoError(err) {
		return
	}
	a.Equal("example-sub", sub.Name)
	a.Equal("example", sub.BelongsTo.Module)
	a.Equal(Version1_1, subCtx.Version)
	a.Equal([]StatementKind{KindModule}, sub.TypedefScopes,
		"submodule has no typedef of its own but inherits the main module's scope")
	a.Equal([]StatementKind{KindSubmodule}, sub.GroupingScopes,
		"submodule carries its own grouping, the main module carries none")
	a.Equal(sub.TypedefScopes, subCtx.TypedefScopes)
	a.Equal(sub.GroupingScopes, subCtx.GroupingScopes)
}
