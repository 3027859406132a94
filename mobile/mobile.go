// Package mobile is the entry point bound into the Android shell.
package mobile

import (
	"context"
	"log"

	"xiangqi/internal/config"
	"xiangqi/internal/server/app"
)

// StartServer starts the local HTTP server on 127.0.0.1:port in the
// background.
// webDir: physical path to the extracted web assets
// dataDir: writable directory for the results database, empty keeps it in memory
func StartServer(webDir string, dataDir string, port string) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:" + port
	cfg.WebDir = webDir
	cfg.DataDir = dataDir
	cfg.OpenBrowser = false

	a, err := app.New(cfg)
	if err != nil {
		log.Printf("Server Error: %v", err)
		return
	}
	// 放到后台，不阻塞 Android UI 线程
	go func() {
		if err := a.Run(context.Background()); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
