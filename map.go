package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"

	"gridtiler/internal/graticule"
)

// TileMap 瓦片地图类型
type TileMap struct {
	Name   string
	Min    int
	Max    int
	Format string
	URL    string
}

// GetTileURL 获取瓦片标识, 模板中的{z}/{x}/{y}替换为瓦片坐标
func (m *TileMap) GetTileURL(t maptile.Tile) string {
	url := strings.Replace(m.URL, "{x}", strconv.Itoa(int(t.X)), -1)
	url = strings.Replace(url, "{y}", strconv.Itoa(int(t.Y)), -1)
	url = strings.Replace(url, "{z}", strconv.Itoa(int(t.Z)), -1)
	return url
}

// VectorLayersJSON mbtiles元数据中的图层描述
func (m *TileMap) VectorLayersJSON() (string, error) {
	type vectorLayer struct {
		ID          string            `json:"id"`
		Description string            `json:"description"`
		Minzoom     int               `json:"minzoom"`
		Maxzoom     int               `json:"maxzoom"`
		Fields      map[string]string `json:"fields"`
	}
	b, err := json.Marshal(struct {
		VectorLayers []vectorLayer `json:"vector_layers"`
	}{[]vectorLayer{{
		ID:          graticule.LayerName,
		Description: "graticule",
		Minzoom:     m.Min,
		Maxzoom:     m.Max,
		Fields:      map[string]string{graticule.LabelKey: "String"},
	}}})
	return string(b), err
}
