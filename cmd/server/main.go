package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightpulse/social-monitor/internal/api"
	"github.com/brightpulse/social-monitor/internal/config"
	"github.com/brightpulse/social-monitor/internal/pkg/logger"
	"github.com/brightpulse/social-monitor/internal/report"
	"github.com/brightpulse/social-monitor/internal/storage"
	"github.com/brightpulse/social-monitor/internal/windsor"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := "config/config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Windsor.APIKey == "" {
		log.Fatal("WINDSOR_API_KEY is not set (env or config)")
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logger.DEBUG)
	}

	// Pre-flight check: verify the target port is available
	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	// Windsor connector client and the per-report stream fetcher
	client := windsor.NewClient(cfg.Windsor)
	fetcher := windsor.NewFetcher(client)

	assembler := report.NewAssembler(fetcher)
	assembler.SetTopN(cfg.Report.TopN)

	// Optional Redis report cache; without it every request recomputes
	var cache api.ReportCache
	var redisCache *storage.Cache
	if cfg.Cache.Enabled {
		redisCache, err = storage.NewCache(cfg.Cache)
		if err != nil {
			log.Fatalf("Failed to connect report cache: %v", err)
		}
		cache = redisCache
		log.Printf("Report cache enabled (redis %s, ttl %s)", cfg.Cache.RedisAddr, cfg.Cache.TTL())
	} else {
		log.Println("Report cache disabled")
	}

	handlers := api.NewHandlers(cfg, assembler, fetcher, cache)
	router := api.SetupRoutes(handlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s (%d companies configured)", addr, len(cfg.Companies))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if redisCache != nil {
		redisCache.Close()
	}

	log.Println("Server stopped")
}
