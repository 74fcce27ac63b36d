package vt

import (
	"fmt"

	"gridtiler/internal/pbf"
)

// EncodingError reports a tile that cannot be represented on the wire.
type EncodingError struct {
	Layer   string
	Feature int // -1 when the problem is not tied to a feature
	Reason  string
}

func (e *EncodingError) Error() string {
	if e.Feature >= 0 {
		return fmt.Sprintf("vt: layer %q feature %d: %s", e.Layer, e.Feature, e.Reason)
	}
	return fmt.Sprintf("vt: layer %q: %s", e.Layer, e.Reason)
}

// Marshal encodes t in the MVT v2 wire format.
func Marshal(t *Tile) ([]byte, error) {
	for _, l := range t.Layers {
		if err := l.validate(); err != nil {
			return nil, err
		}
	}

	b := pbf.NewBuffer()
	for _, l := range t.Layers {
		b.WriteMessage(3, l.write)
	}
	return b.Finish(), nil
}

func (l *Layer) validate() error {
	for i, v := range l.Values {
		if v.Type < StringType || v.Type > BoolType {
			return &EncodingError{Layer: l.Name, Feature: -1,
				Reason: fmt.Sprintf("value %d has unsupported type %d", i, v.Type)}
		}
	}
	for i, f := range l.Features {
		if len(f.Tags)%2 != 0 {
			return &EncodingError{Layer: l.Name, Feature: i, Reason: "odd number of tags"}
		}
		for j := 0; j < len(f.Tags); j += 2 {
			if int(f.Tags[j]) >= len(l.Keys) {
				return &EncodingError{Layer: l.Name, Feature: i,
					Reason: fmt.Sprintf("key index %d out of range", f.Tags[j])}
			}
			if int(f.Tags[j+1]) >= len(l.Values) {
				return &EncodingError{Layer: l.Name, Feature: i,
					Reason: fmt.Sprintf("value index %d out of range", f.Tags[j+1])}
			}
		}
	}
	return nil
}

func (l *Layer) write(b *pbf.Buffer) {
	if l.Version != 0 {
		b.WriteVarintField(15, uint64(l.Version))
	}
	if l.Name != "" {
		b.WriteStringField(1, l.Name)
	}
	for _, f := range l.Features {
		b.WriteMessage(2, f.write)
	}
	for _, k := range l.Keys {
		b.WriteStringField(3, k)
	}
	for _, v := range l.Values {
		b.WriteMessage(4, v.write)
	}
	if l.Extent != 0 {
		b.WriteVarintField(5, uint64(l.Extent))
	}
}

func (f *Feature) write(b *pbf.Buffer) {
	if f.ID != 0 {
		b.WriteVarintField(1, f.ID)
	}
	b.WritePackedVarint(2, f.Tags)
	if f.Type != Unknown {
		b.WriteVarintField(3, uint64(f.Type))
	}
	b.WritePackedVarint(4, f.Geometry)
}

func (v Value) write(b *pbf.Buffer) {
	switch v.Type {
	case StringType:
		b.WriteStringField(1, v.String)
	case FloatType:
		b.WriteFloatField(2, v.Float)
	case DoubleType:
		b.WriteDoubleField(3, v.Double)
	case IntType:
		b.WriteVarintField(4, uint64(v.Int))
	case UintType:
		b.WriteVarintField(5, v.Uint)
	case SintType:
		b.WriteSVarintField(6, v.Sint)
	case BoolType:
		b.WriteBoolField(7, v.Bool)
	}
}
