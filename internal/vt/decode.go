package vt

import (
	"gridtiler/internal/pbf"
)

// Unmarshal decodes an MVT v2 tile. Unknown fields are skipped.
func Unmarshal(data []byte) (*Tile, error) {
	t := &Tile{}
	b := pbf.NewBufferBytes(data)
	err := b.ReadFields(func(field int, b *pbf.Buffer) error {
		if field != 3 {
			return nil
		}
		l := &Layer{}
		if err := b.ReadMessage(l.read); err != nil {
			return err
		}
		t.Layers = append(t.Layers, l)
		return nil
	}, b.Len())
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (l *Layer) read(field int, b *pbf.Buffer) error {
	var err error
	switch field {
	case 15:
		var v uint64
		v, err = b.ReadVarint()
		l.Version = uint32(v)
	case 1:
		l.Name, err = b.ReadString()
	case 2:
		f := &Feature{}
		if err = b.ReadMessage(f.read); err == nil {
			l.Features = append(l.Features, f)
		}
	case 3:
		var k string
		if k, err = b.ReadString(); err == nil {
			l.Keys = append(l.Keys, k)
		}
	case 4:
		var v Value
		if err = b.ReadMessage(v.read); err == nil {
			l.Values = append(l.Values, v)
		}
	case 5:
		var v uint64
		v, err = b.ReadVarint()
		l.Extent = uint32(v)
	}
	return err
}

func (f *Feature) read(field int, b *pbf.Buffer) error {
	var err error
	switch field {
	case 1:
		f.ID, err = b.ReadVarint()
	case 2:
		f.Tags, err = b.ReadPackedVarint(f.Tags)
	case 3:
		var v uint64
		v, err = b.ReadVarint()
		f.Type = GeomType(v)
	case 4:
		f.Geometry, err = b.ReadPackedVarint(f.Geometry)
	}
	return err
}

func (v *Value) read(field int, b *pbf.Buffer) error {
	var err error
	switch field {
	case 1:
		v.Type = StringType
		v.String, err = b.ReadString()
	case 2:
		v.Type = FloatType
		v.Float, err = b.ReadFloat()
	case 3:
		v.Type = DoubleType
		v.Double, err = b.ReadDouble()
	case 4:
		var n uint64
		n, err = b.ReadVarint()
		v.Type, v.Int = IntType, int64(n)
	case 5:
		v.Type = UintType
		v.Uint, err = b.ReadVarint()
	case 6:
		v.Type = SintType
		v.Sint, err = b.ReadSVarint()
	case 7:
		v.Type = BoolType
		v.Bool, err = b.ReadBool()
	}
	return err
}
