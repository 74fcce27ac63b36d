package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TileStore 瓦片存储
type TileStore interface {
	Save(tile Tile) error
	Close() error
}

// fileStore 按 {z}/{x}/{y}.{format} 目录结构保存
type fileStore struct {
	root   string
	format string
}

func newFileStore(root, format string) (*fileStore, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, err
	}
	return &fileStore{root: root, format: format}, nil
}

func (s *fileStore) Save(tile Tile) error {
	dir := filepath.Join(s.root, fmt.Sprintf(`%d`, tile.T.Z), fmt.Sprintf(`%d`, tile.T.X))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	fileName := filepath.Join(dir, fmt.Sprintf(`%d.%s`, tile.T.Y, s.format))
	return os.WriteFile(fileName, tile.C, 0o644)
}

func (s *fileStore) Close() error { return nil }

// openStore 根据输出格式创建存储
func openStore(format, dir string, tm TileMap) (TileStore, error) {
	switch format {
	case FILES, "":
		return newFileStore(filepath.Join(dir, tm.Name), tm.Format)
	case MBTILES:
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		return newMBTilesStore(filepath.Join(dir, tm.Name+".mbtiles"), tm)
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

func gzipTile(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func loadCollection(path string) (orb.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal feature: %w", err)
	}

	var collection orb.Collection
	for _, f := range fc.Features {
		collection = append(collection, f.Geometry)
	}

	return collection, nil
}
