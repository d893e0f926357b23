// flickerd - local preview daemon for chipTAN optical challenges
//
// Serves a small browser page that plays a flicker challenge: the browser
// is the presentation surface, the daemon owns the sessions, timers and
// encoding. Intended for 127.0.0.1 use only; nothing here authenticates.
//
// Usage:
//
//	flickerd [--addr=127.0.0.1:8347] [--state=PATH]
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Neumenon/flicker/anim"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8347", "listen address")
	statePath := flag.String("state", defaultStatePath(), "settings file")
	flag.Parse()

	srv := newServer(anim.NewFileStore(*statePath))

	httpSrv := &http.Server{
		Addr:    *addr,
		Handler: srv.router(),
	}

	go func() {
		log.Printf("flickerd listening on http://%s", *addr)
		if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("flickerd: %v", err)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	log.Println("flickerd: shutting down")
	srv.shutdown()
	httpSrv.Close()
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "flicker-state.json"
	}
	return filepath.Join(dir, "flicker", "state.json")
}
