package columnar

import "github.com/aristath/marketframe/pkg/scalar"

// ChunkedArray presents an ordered list of same-typed Arrays as one logical
// sequence.
type ChunkedArray struct {
	typ    scalar.Type
	chunks []Array
	length int
}

// NewChunkedArray builds a ChunkedArray from one or more chunks of matching
// type. A single chunk is the common case; multiple chunks let a producer
// avoid copying when concatenating results from parallel column work.
func NewChunkedArray(typ scalar.Type, chunks ...Array) *ChunkedArray {
	length := 0
	for _, c := range chunks {
		length += c.Len()
	}
	return &ChunkedArray{typ: typ, chunks: chunks, length: length}
}

// NewChunkedArrayFrom wraps a single Array as a one-chunk ChunkedArray.
func NewChunkedArrayFrom(a Array) *ChunkedArray {
	return NewChunkedArray(a.Type(), a)
}

func (c *ChunkedArray) Type() scalar.Type { return c.typ }
func (c *ChunkedArray) Len() int          { return c.length }
func (c *ChunkedArray) Chunks() []Array   { return c.chunks }
func (c *ChunkedArray) NumChunks() int    { return len(c.chunks) }

func (c *ChunkedArray) locate(i int) (chunkIdx, offset int) {
	for idx, chunk := range c.chunks {
		if i < chunk.Len() {
			return idx, i
		}
		i -= chunk.Len()
	}
	return -1, -1
}

func (c *ChunkedArray) IsValid(i int) bool {
	idx, off := c.locate(i)
	return c.chunks[idx].IsValid(off)
}

func (c *ChunkedArray) IsNull(i int) bool { return !c.IsValid(i) }

func (c *ChunkedArray) GetScalar(i int) scalar.Scalar {
	idx, off := c.locate(i)
	return c.chunks[idx].GetScalar(off)
}

// Combined flattens all chunks into a single Array. Most kernels in this
// module work against the combined form; chunking exists to let producers
// (e.g. parallel column dispatch) avoid copies on the write side.
func (c *ChunkedArray) Combined() Array {
	if len(c.chunks) == 1 {
		return c.chunks[0]
	}
	if len(c.chunks) == 0 {
		return NewNullArray(c.typ, 0)
	}
	result := c.chunks[0]
	for _, chunk := range c.chunks[1:] {
		result = concatArrays(result, chunk)
	}
	return result
}

// concatArrays appends b's rows after a's, rebuilding through a Builder fed
// by GetScalar for the generic (type-agnostic) path. It is only used on the
// rare multi-chunk Combined() call, not on the hot per-row path.
func concatArrays(a, b Array) Array {
	n := a.Len() + b.Len()
	typ := a.Type()
	out := NewBuilder(typ, n)
	for i := 0; i < a.Len(); i++ {
		out.AppendScalar(a.GetScalar(i))
	}
	for i := 0; i < b.Len(); i++ {
		out.AppendScalar(b.GetScalar(i))
	}
	return out.Finish()
}

// Take gathers positions (which index into the logical, combined sequence)
// into a new single-chunk ChunkedArray.
func (c *ChunkedArray) Take(positions []int) *ChunkedArray {
	combined := c.Combined()
	return NewChunkedArrayFrom(combined.Take(positions))
}

// Slice returns rows [start, stop) as a new single-chunk ChunkedArray.
func (c *ChunkedArray) Slice(start, stop int) *ChunkedArray {
	combined := c.Combined()
	return NewChunkedArrayFrom(combined.Slice(start, stop))
}
