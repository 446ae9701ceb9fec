package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"MaskBoard/internal/config"
	"MaskBoard/internal/control"
	"MaskBoard/internal/export"
	"MaskBoard/internal/logging"
	"MaskBoard/internal/net"
	"MaskBoard/internal/state"
	"MaskBoard/internal/ui"
)

type options struct {
	configPath string
	exportDir  string
	feed       bool
	browse     bool
	verbose    bool
}

func parseOptions() options {
	var opt options
	flag.StringVar(&opt.configPath, "config", config.Path(), "Path to the TOML config file")
	flag.StringVar(&opt.exportDir, "out", "", "Directory exports are written to (overrides the config)")
	flag.BoolVar(&opt.feed, "feed", false, "Serve the live mask feed to WebSocket viewers")
	flag.BoolVar(&opt.browse, "browse", false, "List live mask feeds advertised on the local network and exit")
	flag.BoolVar(&opt.verbose, "log", false, "Print debugging output to stderr")
	flag.Parse()
	return opt
}

func main() {
	opt := parseOptions()
	if opt.browse {
		browseFeeds()
		return
	}

	cfg, err := config.Load(opt.configPath)
	if err != nil {
		log.Fatalf("Couldn't load config: %v", err)
	}
	logging.SetDebug(opt.verbose || cfg.Log.Debug)
	if opt.exportDir != "" {
		cfg.Export.Dir = opt.exportDir
	}
	if opt.feed {
		cfg.Feed.Enabled = true
	}

	store := state.NewStore(cfg.Style)
	session := control.NewSession(store, control.Options{
		ExportDir:        cfg.Export.Dir,
		RasterFormat:     cfg.Format(),
		ClearOnImageLoad: cfg.Session.ClearOnImageLoad,
	})

	var extra []control.Surface
	if cfg.Feed.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		extra = append(extra, startFeed(ctx, cfg.Feed))
	}

	log.Printf("Starting mask editor, exports go to %s (%s)", cfg.Export.Dir, export.RasterName(cfg.Format()))
	ui.RunApp(cfg, session, extra...)
}

func startFeed(ctx context.Context, fc config.Feed) *net.Feed {
	feed := net.NewFeed()
	go func() {
		if err := feed.Serve(ctx, fc.Port); err != nil {
			log.Printf("Feed stopped: %v", err)
		}
	}()
	log.Printf("Live mask feed at %s", net.FeedURL(net.OutgoingIP(), fc.Port))

	if fc.Advertise {
		server, err := net.Advertise(fc.Port)
		if err != nil {
			log.Printf("mDNS advertisement failed: %v", err)
			return feed
		}
		go func() {
			<-ctx.Done()
			server.Shutdown()
		}()
	}
	return feed
}

// browseFeeds prints every feed advertised on the LAN.
func browseFeeds() {
	err := net.Browse(func(url string) {
		fmt.Println(url)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Browsing for feeds failed: %v\n", err)
		os.Exit(1)
	}
}
