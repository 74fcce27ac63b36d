package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/maptile/tilecover"
	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"

	"gridtiler/internal/geodesy"
	"gridtiler/internal/graticule"
)

func InitTask() {
	start := time.Now()

	tm := tileMapFromConf(conf)
	layers, err := loadLayers(conf)
	if err != nil {
		log.Fatal(err)
	}
	gen, err := newGenerator(conf)
	if err != nil {
		log.Fatal(err)
	}
	if err := checkTemplate(tm); err != nil {
		log.Fatal(err)
	}
	store, err := openStore(conf.Output.Format, conf.Output.Directory, tm)
	if err != nil {
		log.Fatalf("open %s store error, details: %s", conf.Output.Format, err)
	}
	SafeExitInst.Register(store.Close)

	task := NewTask(layers, tm, gen, store, TaskOptions{
		Workers:    conf.Task.Workers,
		TimeDelay:  conf.Task.Timedelay,
		BufSize:    conf.Task.BufSize,
		Gzip:       conf.Output.Gzip,
		Progress:   true,
		BreakPoint: BreakPointInst,
	})
	if task == nil {
		log.Warn("nothing to render")
		SafeExitInst.Run()
		return
	}
	// 注册安全退出
	SafeExitInst.Register(task.AbortFun)

	// 开始生成
	task.Render()
	SafeExitInst.Run()

	secs := time.Since(start).Seconds()
	log.Printf("%.3fs finished, %d tiles rendered, %d failed", secs, task.Current, task.Failed)
}

// RenderOne 生成单个瓦片
func RenderOne(ref string) {
	tm := tileMapFromConf(conf)
	gen, err := newGenerator(conf)
	if err != nil {
		log.Fatal(err)
	}
	t, err := graticule.ParseTileID(ref)
	if err != nil {
		log.Fatal(err)
	}
	data, err := gen.Generate(ref)
	if err != nil {
		log.Fatal(err)
	}
	if conf.Output.Gzip {
		if data, err = gzipTile(data); err != nil {
			log.Fatal(err)
		}
	}
	store, err := openStore(conf.Output.Format, conf.Output.Directory, tm)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()
	if err := store.Save(Tile{T: t, C: data}); err != nil {
		log.Fatal(err)
	}
	log.Infof("tile(z:%d, x:%d, y:%d) saved, %s", t.Z, t.X, t.Y, humanize.Bytes(uint64(len(data))))
}

func tileMapFromConf(c *Conf) TileMap {
	return TileMap{
		Name:   c.Tm.Name,
		Min:    c.Tm.Min,
		Max:    c.Tm.Max,
		Format: c.Tm.Format,
		URL:    c.Tm.URL,
	}
}

func newGenerator(c *Conf) (*graticule.Generator, error) {
	return graticule.New(c.GridConfig(), geodesy.WebMercator{}, graticule.WithLogger(log))
}

// checkTemplate 确认瓦片模板能解析回原瓦片
func checkTemplate(tm TileMap) error {
	probe := maptile.New(3, 5, 7)
	got, err := graticule.ParseTileID(tm.GetTileURL(probe))
	if err != nil {
		return fmt.Errorf("tile url template %q: %w", tm.URL, err)
	}
	if got != probe {
		return fmt.Errorf("tile url template %q must end with {z}/{x}/{y}", tm.URL)
	}
	return nil
}

// loadLayers 按配置展开各级别的覆盖范围, 未配置时覆盖全图
func loadLayers(c *Conf) ([]Layer, error) {
	var layers []Layer
	if len(c.Lrs) == 0 {
		world := worldCollection()
		for z := c.Tm.Min; z <= c.Tm.Max; z++ {
			layers = append(layers, Layer{Zoom: z, Collection: world})
		}
		return layers, nil
	}
	for _, lrs := range c.Lrs {
		collection := worldCollection()
		if lrs.Geojson != "" {
			var err error
			if collection, err = loadCollection(lrs.Geojson); err != nil {
				return nil, fmt.Errorf("%s: %w", lrs.Geojson, err)
			}
		}
		for z := lrs.Min; z <= lrs.Max; z++ {
			layers = append(layers, Layer{Zoom: z, Collection: collection})
		}
	}
	return layers, nil
}

// TaskOptions 任务参数
type TaskOptions struct {
	Workers    int
	TimeDelay  int
	BufSize    int
	Gzip       bool
	Progress   bool
	BreakPoint *BreakPoint
}

// Task 生成任务
type Task struct {
	ID      string
	Name    string
	Min     int
	Max     int
	Layers  []Layer
	TileMap TileMap
	Total   int64
	Current int64
	Failed  int64

	gen        *graticule.Generator
	store      TileStore
	breakPoint *BreakPoint
	opts       TaskOptions
	tileWG     sync.WaitGroup
	abort      chan struct{}
	abortOnce  sync.Once
	workers    chan struct{}
}

// NewTask 创建生成任务
func NewTask(layers []Layer, m TileMap, gen *graticule.Generator, store TileStore, opts TaskOptions) *Task {
	if len(layers) == 0 {
		return nil
	}
	id, _ := shortid.Generate()

	task := Task{
		ID:         id,
		Name:       m.Name,
		Layers:     layers,
		Min:        m.Min,
		Max:        m.Max,
		TileMap:    m,
		gen:        gen,
		store:      store,
		breakPoint: opts.BreakPoint,
		opts:       opts,
	}

	for i := 0; i < len(layers); i++ {
		layers[i].Count = tilecover.CollectionCount(layers[i].Collection, maptile.Zoom(layers[i].Zoom))
		log.Infof("zoom: %d, tiles: %d", layers[i].Zoom, layers[i].Count)
		task.Total += layers[i].Count
	}

	if task.opts.Workers < 1 {
		task.opts.Workers = 1
	}
	task.abort = make(chan struct{})
	task.workers = make(chan struct{}, task.opts.Workers)

	return &task
}

// AbortFun 结束任务
func (task *Task) AbortFun() error {
	task.abortOnce.Do(func() {
		close(task.abort)
	})
	return nil
}

func (task *Task) aborted() bool {
	select {
	case <-task.abort:
		return true
	default:
		return false
	}
}

// Render 开启生成任务
func (task *Task) Render() {
	for _, layer := range task.Layers {
		if task.aborted() {
			return
		}
		task.renderLayer(layer)
	}
}

// tileRenderer 瓦片生成器
func (task *Task) tileRenderer(mt maptile.Tile) {
	start := time.Now()
	//workers完成并清退
	defer func() {
		task.tileWG.Done()
		<-task.workers
	}()

	ref := task.TileMap.GetTileURL(mt)
	data, err := task.gen.Generate(ref)
	if err != nil {
		atomic.AddInt64(&task.Failed, 1)
		log.Errorf("render %s error, details: %s", ref, err)
		return
	}
	td := Tile{
		T: mt,
		C: data,
	}
	if task.opts.Gzip {
		if td.C, err = gzipTile(data); err != nil {
			atomic.AddInt64(&task.Failed, 1)
			log.Errorf("gzip %s error, details: %s", ref, err)
			return
		}
	}

	if err := task.store.Save(td); err != nil {
		atomic.AddInt64(&task.Failed, 1)
		log.Errorf("save %v tile error ~ %s", mt, err)
		return
	}
	if task.breakPoint != nil {
		task.breakPoint.SetSuccessed(mt)
	}
	atomic.AddInt64(&task.Current, 1)

	cost := time.Since(start).Milliseconds()
	log.Debugf("tile(z:%d, x:%d, y:%d), %dms , %s , %s ...", mt.Z, mt.X, mt.Y, cost, humanize.Bytes(uint64(len(td.C))), ref)
}

// renderLayer 生成指定层级
func (task *Task) renderLayer(layer Layer) {
	log.Infof("Task %s zoom %d starting", task.ID, layer.Zoom)
	bar := pb.New64(layer.Count).Prefix(fmt.Sprintf("Zoom %d : ", layer.Zoom)).Postfix("\n")
	bar.NotPrint = !task.opts.Progress
	bar.SetRefreshRate(time.Second)
	bar.Start()

	var tilelist = make(chan maptile.Tile, task.opts.BufSize)

	go tilecover.CollectionChannel(layer.Collection, maptile.Zoom(layer.Zoom), tilelist)

loop:
	for tile := range tilelist {
		// 覆盖范围贴近 ±180 时会多出越界的列
		if !validTile(tile) {
			log.Debugf("tile %v out of range, skip", tile)
			continue
		}
		// 如果已经在成功列表里
		if task.breakPoint != nil && task.breakPoint.IsSuccessed(tile) {
			log.Debugf("tile %v already rendered, skip", tile)
			bar.Increment()
			continue
		}
		select {
		case task.workers <- struct{}{}:
			bar.Increment()
			//设置生成间隔时间
			if task.opts.TimeDelay > 0 {
				time.Sleep(time.Duration(task.opts.TimeDelay) * time.Millisecond)
			}
			task.tileWG.Add(1)
			go task.tileRenderer(tile)
		case <-task.abort:
			log.Infof("Task %s got canceled.", task.Name)
			go func() {
				for range tilelist {
				}
			}()
			break loop
		}
	}
	//等待该层结束
	task.tileWG.Wait()
	bar.FinishPrint(fmt.Sprintf("Task %s Zoom %d finished ~", task.ID, layer.Zoom))
}
