package database

import "github.com/rawbytedev/datacore/pkg/schema"

// strideCalc memoizes per-struct instance byte widths while they are
// being derived from the schema tables. Struct parent chains are
// acyclic and terminate at a root, so plain
// memoized recursion terminates; visiting guards against a corrupt
// archive violating that invariant.
type strideCalc struct {
	structs    []schema.StructDef
	properties []schema.PropertyDef
	memo       []int32 // -1 = not yet computed
	visiting   []bool
}

func newStrideCalc(structs []schema.StructDef, properties []schema.PropertyDef) *strideCalc {
	memo := make([]int32, len(structs))
	for i := range memo {
		memo[i] = -1
	}
	return &strideCalc{
		structs:    structs,
		properties: properties,
		memo:       memo,
		visiting:   make([]bool, len(structs)),
	}
}

// Stride returns the total instance byte width of structIndex: the sum of
// its own properties' widths, following the archive format's "concatenation of
// its ancestor chain's properties in base-to-derived order followed by
// its own" — but since a derived struct's stride is just its ancestor's
// stride plus its own properties, computing it this way (rather than
// re-walking the whole chain each time) gives the identical byte layout.
func (s *strideCalc) Stride(structIndex int32) (int32, error) {
	if structIndex < 0 || int(structIndex) >= len(s.structs) {
		return 0, ErrBadIndex
	}
	if s.memo[structIndex] >= 0 {
		return s.memo[structIndex], nil
	}
	if s.visiting[structIndex] {
		return 0, ErrCorrupt
	}
	s.visiting[structIndex] = true
	defer func() { s.visiting[structIndex] = false }()

	def := s.structs[structIndex]
	var total int32
	if def.ParentIndex != schema.NullIndex {
		parentStride, err := s.Stride(def.ParentIndex)
		if err != nil {
			return 0, err
		}
		total = parentStride
	}
	for i := int32(0); i < def.PropertyCount; i++ {
		idx := def.FirstProperty + i
		if idx < 0 || int(idx) >= len(s.properties) {
			return 0, ErrCorrupt
		}
		p := s.properties[idx]
		w := schema.PropertyWidth(p)
		if w < 0 { // embedded class: width is the nested struct's own stride
			nested, err := s.Stride(p.TargetIndex)
			if err != nil {
				return 0, err
			}
			w = int(nested)
		}
		total += int32(w)
	}
	s.memo[structIndex] = total
	return total, nil
}
