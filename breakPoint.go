package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/paulmach/orb/maptile"
)

var BreakPointInst *BreakPoint

func InitBreakPoint() {
	bp, err := NewBreakPoint(conf.BreakPoint.SaveFilePath, conf.Tm.Name, conf.Task.Workers)
	if err != nil {
		log.Fatalf("break point file open is error: %s", err)
	}
	BreakPointInst = bp
	SafeExitInst.Register(BreakPointInst.Close)
}

// BreakPoint 断点记录, 已生成的瓦片逐行写入文件, 重启后跳过
type BreakPoint struct {
	file       *os.File
	saveChan   chan maptile.Tile
	successMap map[string]struct{}
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once
	fileOnce   sync.Once
	closeErr   error
}

// NewBreakPoint 打开断点文件并开始断点任务
func NewBreakPoint(dir, name string, bufSize int) (*BreakPoint, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.log", name))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	// 获取断点记录
	successMap, err := getBackPoint(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	b := &BreakPoint{
		file:       file,
		saveChan:   make(chan maptile.Tile, bufSize),
		successMap: successMap,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go b.Start()
	return b, nil
}

// 初始化断点文件
func getBackPoint(file *os.File) (map[string]struct{}, error) {
	res := make(map[string]struct{})
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			res[line] = struct{}{}
		}
	}
	return res, sc.Err()
}

func breakPointKey(tile maptile.Tile) string {
	return fmt.Sprintf("%d-%d-%d", tile.X, tile.Y, tile.Z)
}

// IsSuccessed 是否已生成
func (b *BreakPoint) IsSuccessed(tile maptile.Tile) bool {
	_, ok := b.successMap[breakPointKey(tile)]
	return ok
}

// SetSuccessed 记录已生成瓦片
func (b *BreakPoint) SetSuccessed(tile maptile.Tile) {
	select {
	case <-b.done:
	case b.saveChan <- tile:
	}
}

// Start 断点写入循环
func (b *BreakPoint) Start() {
	log.Infof("断点记录任务已开始")
	w := bufio.NewWriter(b.file)
	defer close(b.stopped)
	defer w.Flush()
	for {
		select {
		case tile := <-b.saveChan:
			w.WriteString(breakPointKey(tile) + "\n")
			if len(b.saveChan) == 0 {
				w.Flush()
			}
		case <-b.done:
			for {
				select {
				case tile := <-b.saveChan:
					w.WriteString(breakPointKey(tile) + "\n")
				default:
					return
				}
			}
		}
	}
}

func (b *BreakPoint) stop() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

// Close 停止断点任务并关闭文件
func (b *BreakPoint) Close() error {
	b.stop()
	// 等待写入循环退出
	<-b.stopped
	b.fileOnce.Do(func() {
		b.closeErr = b.file.Close()
		log.Infof("断点记录任务已安全退出")
	})
	return b.closeErr
}
