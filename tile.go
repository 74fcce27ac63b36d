package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// ZoomMin 最小级别
const ZoomMin = 0

// ZoomMax 最大级别
const ZoomMax = 22

// Tile 自定义瓦片存储
type Tile struct {
	T maptile.Tile
	C []byte
}

func (tile Tile) flipY() uint32 {
	return (1 << uint32(tile.T.Z)) - tile.T.Y - 1
}

// Layer 级别&瓦片数
type Layer struct {
	Zoom       int
	Count      int64
	Collection orb.Collection
}

// Constants representing TileFormat types
const (
	GZIP    string = "gzip" // encoding = gzip
	PBF            = "pbf"
	FILES          = "files"
	MBTILES        = "mbtiles"
)

// worldCollection 覆盖墨卡托全图范围, 边界向内收缩以免覆盖到第 2^z 列
func worldCollection() orb.Collection {
	const (
		maxLon = 180 - 1e-9
		maxLat = 85.0511287798066 - 1e-9
	)
	ring := orb.Ring{{-maxLon, -maxLat}, {maxLon, -maxLat}, {maxLon, maxLat}, {-maxLon, maxLat}, {-maxLon, -maxLat}}
	return orb.Collection{orb.Polygon{ring}}
}

// validTile 瓦片行列号是否在该级别范围内
func validTile(t maptile.Tile) bool {
	n := uint64(1) << uint32(t.Z)
	return uint64(t.X) < n && uint64(t.Y) < n
}
