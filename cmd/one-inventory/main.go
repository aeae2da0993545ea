package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jimyag/one-inventory/pkg/cache"
	"github.com/jimyag/one-inventory/pkg/config"
	"github.com/jimyag/one-inventory/pkg/inventory"
	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/one"
)

func main() {
	// 定义命令行参数
	list := flag.Bool("list", true, "Output the full inventory as JSON")
	refresh := flag.Bool("refresh-cache", false, "Ignore cached data and query the server")
	verbosity := flag.Int("v", 0, "Verbosity level (0-4)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("Usage: one-inventory [-refresh-cache] [-v <level>] <source.one.yml>")
		fmt.Println("Example: one-inventory -v 2 production.one.yml")
		os.Exit(1)
	}
	path := args[0]

	// 只接受可识别的源文件
	if !config.VerifyFile(path) {
		fmt.Fprintf(os.Stderr, "ERROR: %s is not a recognized inventory source (must end in one.yml or one.yaml)\n", path)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load inventory source: %v\n", err)
		os.Exit(1)
	}

	level := logger.InfoLevel
	if *verbosity > 0 {
		level = logger.DebugLevel
	}
	log := logger.New(&logger.Config{
		Level:     level,
		Output:    os.Stderr,
		Pretty:    true,
		Verbosity: *verbosity,
	})

	client, err := one.NewClient(cfg.URL, cfg.Username, cfg.Password, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	var cacheMgr *cache.Manager
	if cfg.Cache {
		cacheMgr = cache.NewManager(&cache.FileStore{Dir: cfg.CacheDir}, log)
	}

	source := inventory.NewSource(client, cacheMgr, inventory.SourceOptions{
		Cache:              cfg.Cache,
		HostnamePreference: cfg.HostnamePreference,
		Strict:             cfg.Strict,
		Compose:            cfg.Compose,
		Groups:             cfg.Groups,
		KeyedGroups:        cfg.KeyedGroups,
	}, log)

	inv, err := source.Parse(path, !*refresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if *list {
		data, err := json.MarshalIndent(inv.ToList(), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to encode inventory: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	}
}
