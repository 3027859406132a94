// Package config holds the settings shared by the local server and the mobile
// entry point.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr          string        // 监听地址
	WebDir        string        // 静态页面目录，空则不提供
	DataDir       string        // 战绩库目录，空则只放内存
	EngineDepth   int           // 引擎搜索深度（ply）
	EngineTimeout time.Duration // 每步思考时间上限
	VCFDepth      int           // 连将杀搜索深度，0 关闭
	OpenBrowser   bool
}

func Default() Config {
	return Config{
		Addr:          ":2888",
		WebDir:        "./web",
		DataDir:       "./data",
		EngineDepth:   3,
		EngineTimeout: 5 * time.Second,
		VCFDepth:      7,
		OpenBrowser:   true,
	}
}

// RegisterFlags binds the fields of c to fs, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.StringVar(&c.WebDir, "web", c.WebDir, "directory with index.html / js / svg")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "results database directory (empty: in memory)")
	fs.IntVar(&c.EngineDepth, "depth", c.EngineDepth, "engine search depth in plies")
	fs.DurationVar(&c.EngineTimeout, "think", c.EngineTimeout, "engine time limit per move")
	fs.IntVar(&c.VCFDepth, "vcf", c.VCFDepth, "forced-check mate search depth in plies (0: off)")
	fs.BoolVar(&c.OpenBrowser, "open", c.OpenBrowser, "open the default browser on start")
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.EngineDepth < 1 || c.EngineDepth > 8 {
		return fmt.Errorf("%w: engine depth %d out of range 1-8", ErrInvalidConfig, c.EngineDepth)
	}
	if c.VCFDepth < 0 || c.VCFDepth > 15 {
		return fmt.Errorf("%w: vcf depth %d out of range 0-15", ErrInvalidConfig, c.VCFDepth)
	}
	if c.EngineTimeout <= 0 {
		return fmt.Errorf("%w: engine timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
