package yin

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildTablesAreSorted(t *testing.T) {
	for parent, table := range childTables {
		if !sort.SliceIsSorted(table, func(i, j int) bool { return table[i].Kind < table[j].Kind }) {
			t.Errorf("childTables[%s] is not sorted by Kind", parent)
		}
	}
}

func TestChildTableFind(t *testing.T) {
	a := assert.New(t)
	table := childTable{
		{Kind: KindDescription, Flags: flagUnique},
		{Kind: KindReference, Flags: flagUnique},
		{Kind: KindStatus, Flags: flagUnique},
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Kind < table[j].Kind })

	spec, ok := table.find(KindReference)
	a.True(ok)
	a.Equal(KindReference, spec.Kind)

	_, ok = table.find(KindImport)
	a.False(ok)
}

func TestCheckCardinalityMandatory(t *testing.T) {
	table := childTable{req(KindNamespace), req(KindPrefix)}
	sort.Slice(table, func(i, j int) bool { return table[i].Kind < table[j].Kind })

	err := checkCardinality(KindModule, table, map[StatementKind]int{KindNamespace: 1, KindPrefix: 1})
	assert.NoError(t, err)

	err = checkCardinality(KindModule, table, map[StatementKind]int{KindNamespace: 1})
	assert.Error(t, err)
	assert.True(t, IsKind(err, ErrKindMissingChild))
}
