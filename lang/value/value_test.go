package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/lang/value"
)

func TestTruthy(t *testing.T) {
	require.False(t, value.Null().Truthy())
	require.False(t, value.Bool(false).Truthy())
	require.True(t, value.Bool(true).Truthy())
	require.False(t, value.Int(0).Truthy())
	require.True(t, value.Int(1).Truthy())
	require.False(t, value.Float(0).Truthy())
}

func TestCopySemanticsDoNotTouchHeap(t *testing.T) {
	s := "hoi"
	obj := &value.Object{Kind: value.ObjString, Str: s}
	v1 := value.Obj(obj)
	v2 := v1 // struct copy
	require.Equal(t, v1.AsHandle(), v2.AsHandle())
	require.Equal(t, v1.String(), v2.String())
}

func TestAddNumeric(t *testing.T) {
	r, err := value.Add(1, value.Int(1), value.Int(2), nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), r.AsInt())
}

func TestAddStrings(t *testing.T) {
	a := value.Obj(&value.Object{Kind: value.ObjString, Str: "foo"})
	b := value.Obj(&value.Object{Kind: value.ObjString, Str: "bar"})
	r, err := value.Add(1, a, b, func(s string) value.Value {
		return value.Obj(&value.Object{Kind: value.ObjString, Str: s})
	})
	require.NoError(t, err)
	require.Equal(t, "foobar", r.AsString())
}

func TestAddMismatchedKindsErrors(t *testing.T) {
	_, err := value.Add(3, value.Int(1), value.Float(1), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "[line 3]")
}

func TestDivByZero(t *testing.T) {
	_, err := value.Div(1, value.Int(1), value.Int(0))
	require.Error(t, err)
}

func TestEqualsStringsByContent(t *testing.T) {
	a := value.Obj(&value.Object{Kind: value.ObjString, Str: "hoi"})
	b := value.Obj(&value.Object{Kind: value.ObjString, Str: "hoi"})
	require.True(t, value.Equals(a, b))
}

func TestCompareOrdering(t *testing.T) {
	c, err := value.Compare(1, value.Int(1), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, -1, c)
}

func TestNegateUnsignedFails(t *testing.T) {
	_, err := value.Negate(1, value.Uint(1))
	require.Error(t, err)
}
