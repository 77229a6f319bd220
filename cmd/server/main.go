package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cattery-backend-go/internal/config"
	"cattery-backend-go/internal/db"
	httpapi "cattery-backend-go/internal/http"
	"cattery-backend-go/internal/migrations"
	"cattery-backend-go/internal/services"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	closeLogs, err := setupLogger(cfg)
	if err != nil {
		log.Printf("logger setup failed: %v", err)
	} else {
		defer closeLogs()
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.EphemeralSecret {
		log.Printf("WARNING: SECRET_KEY not set, using a generated secret; tokens will not survive a restart")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()
	if err := migrations.Apply(database); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.EnsureDefaultContent(ctx, database); err != nil {
		log.Fatalf("seed: %v", err)
	}
	server := httpapi.NewServer(database, cfg)
	created, err := server.Credentials.EnsureAdminCredential(ctx, cfg.DefaultAdminPassword)
	if err != nil {
		log.Fatalf("admin credential: %v", err)
	}
	if created {
		log.Printf("WARNING: admin password initialised from DEFAULT_ADMIN_PASSWORD; change it after first login")
	}

	addr := ":" + cfg.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (%s)", addr, cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	log.Printf("shutdown complete")
}

// setupLogger tees the standard logger into a size-rotated file under LogDir.
func setupLogger(cfg config.Config) (func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}
	retention := cfg.LogRetentionDays
	if retention <= 0 {
		retention = 7
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "app.log"),
		MaxSize:    64,
		MaxBackups: retention,
		MaxAge:     retention,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	return func() {
		log.SetOutput(os.Stdout)
		_ = file.Close()
	}, nil
}
