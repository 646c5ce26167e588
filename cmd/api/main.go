package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight"
	fightrepo "github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/repo"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting fight tracker api")

	tokens, err := auth.NewTokenService(auth.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("token service: %v (set JWT_SECRET)", err)
	}

	// init db
	sqlDB, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, sqlDB)
	cancelMigrate()
	if err != nil {
		sugar.Fatalf("db migrate: %v", err)
	}

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	userSvc := user.NewUserService(userrepo.NewUserRepo(sqlxDB), user.BcryptHasher{Cost: 10}, tokens)
	fightSvc := fight.NewService(fightrepo.NewFightRepo(sqlxDB))

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := router.ConfigFromEnv()
	handler := router.RegisterRoutes(sugar, cfg, router.Deps{
		Users:  user.NewHandler(userSvc, sugar),
		Fights: fight.NewHandler(fightSvc, sugar),
		Tokens: tokens,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
