package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/cache"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/route"
	"github.com/fragmede/tutor/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [start-url]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "start-url is where the app opens, for example '/tutor?topic=math'\n")
		fmt.Fprintf(os.Stderr, "or the address the login page redirected to.\n")
	}
	flag.Parse()

	cfg := config.Load()

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		log.Fatalf("creating cache dir: %v", err)
	}

	logFile, err := tea.LogToFile(cfg.LogPath, "tutor")
	if err != nil {
		log.Fatalf("opening log: %v", err)
	}
	defer logFile.Close()

	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening cache: %v", err)
	}
	defer db.Close()

	client := api.NewClient(cfg.APIBase(), cfg.RequestTimeout)
	if cookies, err := db.LoadCookies(); err != nil {
		log.Printf("loading saved session: %v", err)
	} else {
		client.RestoreCookies(cookies)
	}

	start := route.At(string(route.Landing))
	if flag.NArg() > 0 {
		start = route.Parse(flag.Arg(0))
	}

	app := ui.NewApp(cfg, client, db, start, log.Default())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
