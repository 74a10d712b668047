package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/lang/heap"
	"github.com/mna/ilex/lang/value"
)

func TestAllocString(t *testing.T) {
	h := heap.New()
	v := h.AllocString("hoi")
	require.True(t, v.IsObject())
	require.Equal(t, "hoi", v.AsString())
	require.Equal(t, 1, h.Len())
}

func TestAllocFunctionForwardReference(t *testing.T) {
	h := heap.New()
	fn := &value.Function{Name: "fib", Arity: 1}
	v, same := h.AllocFunction(fn)
	require.True(t, v.IsObject())
	same.Chunk.Write(0x01, 1)
	require.Len(t, fn.Chunk.Code, 1)
}

func TestAllocNativeInterned(t *testing.T) {
	h := heap.New()
	n := &value.NativeFunction{Name: "len", Arity: 1}
	v := h.AllocNative(n)
	got, ok := h.Natives.Get("len")
	require.True(t, ok)
	require.Equal(t, v.AsHandle(), got.AsHandle())
}

func TestAllocArrayAndInstance(t *testing.T) {
	h := heap.New()
	arr := h.AllocArray([]value.Value{value.Int(1), value.Int(2)})
	require.Equal(t, "[1, 2]", arr.String())

	inst := h.AllocInstance("Point", []value.Value{value.Int(1), value.Int(2)})
	require.Equal(t, "<Point instance>", inst.String())
}

func TestSweepQuiescentByDefault(t *testing.T) {
	h := heap.New()
	h.AllocString("a")
	h.AllocString("b")
	freed := h.Sweep(nil)
	require.Equal(t, 0, freed)
	require.Equal(t, 2, h.Len())
}

func TestSweepCollectsUnreachable(t *testing.T) {
	h := heap.New()
	h.CollectEnabled = true
	kept := h.AllocString("kept")
	h.AllocString("discarded")
	freed := h.Sweep([]value.Value{kept})
	require.Equal(t, 1, freed)
	require.Equal(t, 1, h.Len())
}
