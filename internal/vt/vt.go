// Package vt models Mapbox Vector Tile (v2) tiles and serializes them with
// the pbf wire writer.
package vt

import (
	"fmt"

	"gridtiler/internal/pbf"
)

// GeomType is the geometry type of a feature.
type GeomType uint32

const (
	Unknown    GeomType = 0
	Point      GeomType = 1
	LineString GeomType = 2
	Polygon    GeomType = 3
)

// Geometry commands.
const (
	MoveTo    uint32 = 1
	LineTo    uint32 = 2
	ClosePath uint32 = 7
)

// Command packs a command id and repeat count into a command word.
func Command(id, count uint32) uint32 {
	return id&0x7 | count<<3
}

// Param zig-zag encodes a geometry coordinate or delta.
func Param(v int64) uint32 {
	return uint32(pbf.ZigZag(v))
}

// LineGeometry returns the command stream for a single segment from (x1, y1)
// to (x2, y2). The stream ends with closePath.
func LineGeometry(x1, y1, x2, y2 int64) []uint32 {
	return []uint32{
		Command(MoveTo, 1), Param(x1), Param(y1),
		Command(LineTo, 1), Param(x2 - x1), Param(y2 - y1),
		Command(ClosePath, 1),
	}
}

// ValueType selects the populated variant of a Value.
type ValueType uint8

const (
	StringType ValueType = iota + 1
	FloatType
	DoubleType
	IntType
	UintType
	SintType
	BoolType
)

// Value is a typed attribute value. Only the field selected by Type is used.
type Value struct {
	Type   ValueType
	String string
	Float  float32
	Double float64
	Int    int64
	Uint   uint64
	Sint   int64
	Bool   bool
}

func StringValue(s string) Value { return Value{Type: StringType, String: s} }
func FloatValue(v float32) Value { return Value{Type: FloatType, Float: v} }
func DoubleValue(v float64) Value { return Value{Type: DoubleType, Double: v} }
func IntValue(v int64) Value     { return Value{Type: IntType, Int: v} }
func UintValue(v uint64) Value   { return Value{Type: UintType, Uint: v} }
func SintValue(v int64) Value    { return Value{Type: SintType, Sint: v} }
func BoolValue(v bool) Value     { return Value{Type: BoolType, Bool: v} }

func (v Value) GoString() string {
	switch v.Type {
	case StringType:
		return fmt.Sprintf("string(%q)", v.String)
	case FloatType:
		return fmt.Sprintf("float(%v)", v.Float)
	case DoubleType:
		return fmt.Sprintf("double(%v)", v.Double)
	case IntType:
		return fmt.Sprintf("int(%d)", v.Int)
	case UintType:
		return fmt.Sprintf("uint(%d)", v.Uint)
	case SintType:
		return fmt.Sprintf("sint(%d)", v.Sint)
	case BoolType:
		return fmt.Sprintf("bool(%t)", v.Bool)
	}
	return fmt.Sprintf("invalid(%d)", v.Type)
}

// Feature is a single tile feature. Tags holds key/value index pairs into
// the owning layer's dictionaries.
type Feature struct {
	ID       uint64
	Tags     []uint32
	Type     GeomType
	Geometry []uint32
}

// Layer is a named set of features sharing key and value dictionaries.
type Layer struct {
	Version  uint32
	Name     string
	Features []*Feature
	Keys     []string
	Values   []Value
	Extent   uint32

	keymap   map[string]int
	valuemap map[Value]int
}

// NewLayer returns an empty version 2 layer.
func NewLayer(name string, extent uint32) *Layer {
	return &Layer{
		Version:  2,
		Name:     name,
		Extent:   extent,
		keymap:   make(map[string]int),
		valuemap: make(map[Value]int),
	}
}

// AddKey returns the dictionary index of key, appending it on first use.
func (l *Layer) AddKey(key string) uint32 {
	if l.keymap == nil {
		l.keymap = make(map[string]int, len(l.Keys))
		for i, k := range l.Keys {
			l.keymap[k] = i
		}
	}
	if i, ok := l.keymap[key]; ok {
		return uint32(i)
	}
	l.keymap[key] = len(l.Keys)
	l.Keys = append(l.Keys, key)
	return uint32(len(l.Keys) - 1)
}

// AddValue returns the dictionary index of v, appending it on first use.
func (l *Layer) AddValue(v Value) uint32 {
	if l.valuemap == nil {
		l.valuemap = make(map[Value]int, len(l.Values))
		for i, x := range l.Values {
			l.valuemap[x] = i
		}
	}
	if i, ok := l.valuemap[v]; ok {
		return uint32(i)
	}
	l.valuemap[v] = len(l.Values)
	l.Values = append(l.Values, v)
	return uint32(len(l.Values) - 1)
}

// AddFeature appends f to the layer.
func (l *Layer) AddFeature(f *Feature) {
	l.Features = append(l.Features, f)
}

// Tile is an ordered list of layers.
type Tile struct {
	Layers []*Layer
}
