package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/neural-glass/internal/assistant"
	"github.com/Zachkp/neural-glass/internal/config"
	"github.com/Zachkp/neural-glass/internal/health"
	"github.com/Zachkp/neural-glass/internal/store"
	"github.com/Zachkp/neural-glass/internal/web"
)

func main() {
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()
	log.Printf("Database ready at %s", cfg.DatabasePath)

	client := assistant.NewClient(cfg.AssistantURL, cfg.AssistantTimeout)
	poller := health.NewPoller(client.Health, cfg.HealthInterval)
	go poller.Run(ctx)

	srv := web.New(cfg, st, client, poller, web.NewSMTPMailer(cfg.SMTP))
	srv.StartCleanup(ctx)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}
	go func() {
		log.Printf("Listening on :%s (assistant at %s)", cfg.Port, client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	srv.Wait()
}
