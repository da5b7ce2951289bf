// Command voiced runs the voice transformation daemon: a streaming pipeline
// over a synthetic audio driver plus the REST control API.
//
// Usage:
//
//	voiced [flags]
//
// Examples:
//
//	voiced
//	voiced -config voiced.yaml
//	voiced -listen :9090 -no-watermark
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-voice/demo"
	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/internal/config"
	"github.com/cwbudde/algo-voice/internal/httpapi"
	"github.com/cwbudde/algo-voice/pipeline"
	"github.com/cwbudde/algo-voice/voice"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	listen := flag.String("listen", "", "HTTP listen address (overrides config)")
	noWatermark := flag.Bool("no-watermark", false, "disable provenance watermarking")
	flag.Parse()

	if err := run(*configPath, *listen, *noWatermark); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, listen string, noWatermark bool) error {
	logger := log.New(os.Stderr, "voiced: ", log.LstdFlags)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if listen != "" {
		cfg.ListenAddr = listen
	}
	if noWatermark {
		cfg.Watermarking = false
	}

	registry := voice.NewRegistry()
	if cfg.ProfilesPath != "" {
		if err := registry.Load(cfg.ProfilesPath); err != nil {
			return err
		}
		logger.Printf("loaded profiles from %s", cfg.ProfilesPath)
	}

	coreOpts := []core.ProcessorOption{
		core.WithSampleRate(cfg.SampleRate),
		core.WithBlockSize(cfg.BlockSize),
	}
	gen := demo.NewSpeechGenerator(coreOpts)
	driver := demo.NewSyntheticDriver(gen, 4.0)

	pipe, err := pipeline.New(driver,
		pipeline.WithProcessorOptions(coreOpts...),
		pipeline.WithQueueCapacity(cfg.QueueCapacity),
		pipeline.WithWatermarking(cfg.Watermarking),
	)
	if err != nil {
		return err
	}

	server := httpapi.New(registry, pipe, logger)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Printf("received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	if err := pipe.Stop(); err != nil {
		logger.Printf("pipeline stop: %v", err)
	}
	return nil
}
