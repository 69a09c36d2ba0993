package dataflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dataflow/internal/dataflow"
)

func TestVarSetDomainBottomIsEmpty(t *testing.T) {
	dom := dataflow.VarSetDomain{}
	assert.Empty(t, dom.Bottom())
}

func TestVarSetDomainJoinIsUnion(t *testing.T) {
	dom := dataflow.VarSetDomain{}
	a := dataflow.NewVarSet("x")
	b := dataflow.NewVarSet("y")
	joined := dom.Join(a, b)
	assert.True(t, joined.Contains("x"))
	assert.True(t, joined.Contains("y"))
}

func TestVarSetDomainEquality(t *testing.T) {
	dom := dataflow.VarSetDomain{}
	a := dataflow.NewVarSet("x", "y")
	b := dataflow.NewVarSet("y", "x")
	assert.True(t, dom.Equal(a, b))
	assert.False(t, dom.Equal(a, dataflow.NewVarSet("x")))
}

func TestVarSetCloneIsIndependent(t *testing.T) {
	a := dataflow.NewVarSet("x")
	b := a.Clone()
	b.Add("y")
	assert.False(t, a.Contains("y"))
}

func TestVarSetSortedIsDeterministic(t *testing.T) {
	s := dataflow.NewVarSet("b", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
}
