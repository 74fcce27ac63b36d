package main

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3" // import sqlite3 driver
)

// mbtilesStore MBTiles 单文件存储
type mbtilesStore struct {
	mu sync.Mutex
	db *sql.DB
}

func newMBTilesStore(path string, tm TileMap) (*mbtilesStore, error) {
	db, err := mbtilesOpen(path)
	if err != nil {
		return nil, err
	}
	s := &mbtilesStore{db: db}
	if err := s.writeMetadata(tm); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// mbtilesOpen 初始化配置MBTile库
func mbtilesOpen(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		"PRAGMA synchronous=0",
		"PRAGMA journal_mode=DELETE",
		"create table if not exists tiles (zoom_level integer, tile_column integer, tile_row integer, tile_data blob);",
		"create table if not exists metadata (name text, value text);",
		"create unique index if not exists name on metadata (name);",
		"create unique index if not exists tile_index on tiles(zoom_level, tile_column, tile_row);",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return db, nil
}

func (s *mbtilesStore) writeMetadata(tm TileMap) error {
	layers, err := tm.VectorLayersJSON()
	if err != nil {
		return err
	}
	meta := [][2]string{
		{"name", tm.Name},
		{"format", tm.Format},
		{"type", "overlay"},
		{"minzoom", fmt.Sprint(tm.Min)},
		{"maxzoom", fmt.Sprint(tm.Max)},
		{"json", layers},
	}
	for _, kv := range meta {
		if _, err := s.db.Exec("insert or replace into metadata (name, value) values (?, ?);", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Save 写入瓦片, MBTiles 使用 TMS 行号
func (s *mbtilesStore) Save(tile Tile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("insert or replace into tiles (zoom_level, tile_column, tile_row, tile_data) values (?, ?, ?, ?);",
		tile.T.Z, tile.T.X, tile.flipY(), tile.C)
	return err
}

func (s *mbtilesStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("ANALYZE;"); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
