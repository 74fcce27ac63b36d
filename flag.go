package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	hf         bool
	configPath string
	logLevel   string
	tileRef    string
)

func InitFlag() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.StringVar(&configPath, "c", "./conf/conf.toml", "set config `file`")
	flag.StringVar(&logLevel, "l", "info", "set log level (default: info)")
	flag.StringVar(&tileRef, "t", "", "render a single `z/x/y` tile and exit")
	flag.Usage = usage
	flag.Parse()

	if hf {
		flag.Usage()
		os.Exit(0)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `gridtiler version: gridtiler/v0.1.0
Usage: gridtiler [-h] [-c filename] [-l logLevel] [-t z/x/y]
`)
	flag.PrintDefaults()
}
