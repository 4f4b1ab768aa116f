package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/stewi1014/glhello/config"
	"github.com/stewi1014/glhello/programs"
	"github.com/stewi1014/glhello/window"
)

var (
	configPath  = flag.String("config", "", "path to a TOML config file")
	programName = flag.String("program", "", "scene to draw, overrides the config")
	shaderDir   = flag.String("shaders", "", "load shader sources from this directory instead of the built in copies")
	watch       = flag.Bool("watch", false, "reload shaders when their sources change, requires -shaders")
	list        = flag.Bool("list", false, "list the available scenes and exit")
)

func main() {
	flag.Parse()

	if *list {
		for _, name := range programs.Names() {
			p, _ := programs.Lookup(name)
			fmt.Printf("%-14s %s\n", p.Name, p.Description)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))

	if err := run(cfg); err != nil {
		slog.Error("glhello failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}

	if *programName != "" {
		cfg.Program = *programName
	}
	if *shaderDir != "" {
		cfg.ShaderDir = *shaderDir
	}
	if *watch {
		cfg.Watch = true
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	program, err := programs.Lookup(cfg.Program)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, quit := context.WithCancelCause(ctx)
	defer quit(nil)

	return window.Run(ctx, window.Config{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	}, newRenderer(cfg, program, quit))
}
