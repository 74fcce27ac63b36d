package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/maptile"
	"github.com/spf13/viper"

	"gridtiler/internal/graticule"
)

var conf *Conf

type Conf struct {
	App struct {
		Version string `toml:"version"`
		Title   string `toml:"title"`
	} `toml:"app"`
	Output struct {
		Directory      string `toml:"directory"`
		LogDir         string `toml:"logDir"`
		OutputTerminal bool   `toml:"outputTerminal"`
		Format         string `toml:"format"`
		Gzip           bool   `toml:"gzip"`
	} `toml:"output"`
	Task struct {
		Workers   int `toml:"workers"`
		Timedelay int `toml:"timedelay"`
		BufSize   int `toml:"bufSize"`
	} `toml:"task"`
	BreakPoint struct {
		SaveFilePath string `toml:"saveFilePath"`
	} `toml:"breakPoint"`
	Tm struct {
		Name   string `toml:"name"`
		Min    int    `toml:"min"`
		Max    int    `toml:"max"`
		Format string `toml:"format"`
		URL    string `toml:"url"`
	} `toml:"tm"`
	Grid struct {
		Extent     int `toml:"extent"`
		DegreeZoom int `toml:"degreeZoom"`
		MinuteZoom int `toml:"minuteZoom"`
	} `toml:"grid"`
	Lrs []struct {
		Min     int    `toml:"min"`
		Max     int    `toml:"max"`
		Geojson string `toml:"geojson"`
	} `toml:"lrs"`
}

// InitConf 初始化配置
func InitConf(cfgFile string) {
	if cfgFile == "" {
		cfgFile = "conf.toml"
	}
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("config file(%s) not exist", cfgFile)
		os.Exit(1)
	}
	c, err := loadConf(cfgFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	conf = c
}

func loadConf(cfgFile string) (*Conf, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(cfgFile)
	v.AutomaticEnv() // read in environment variables that match
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file(%s) error, details: %w", v.ConfigFileUsed(), err)
	}
	// 设置默认值
	v.SetDefault("app.version", "v 0.1.0")
	v.SetDefault("app.title", "Graticule Tiler")
	v.SetDefault("output.format", FILES)
	v.SetDefault("output.directory", "output")
	v.SetDefault("task.workers", 4)
	v.SetDefault("task.timedelay", 0)
	v.SetDefault("task.bufSize", 64)
	v.SetDefault("breakPoint.saveFilePath", "breakpoint")
	v.SetDefault("tm.name", "graticule")
	v.SetDefault("tm.format", PBF)
	v.SetDefault("tm.url", "grid/{z}/{x}/{y}.pbf")
	v.SetDefault("grid.extent", graticule.DefaultExtent)
	v.SetDefault("grid.degreeZoom", 5)
	v.SetDefault("grid.minuteZoom", 10)

	c := &Conf{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("配置文件解析失败: %w", err)
	}
	return c, nil
}

// GridConfig 经纬网生成配置
func (c *Conf) GridConfig() graticule.Config {
	cfg := graticule.DefaultConfig()
	cfg.Extent = c.Grid.Extent
	cfg.Interval = graticule.ZoomIntervals{
		DegreeBelow: maptile.Zoom(c.Grid.DegreeZoom),
		MinuteBelow: maptile.Zoom(c.Grid.MinuteZoom),
	}.Interval
	return cfg
}
