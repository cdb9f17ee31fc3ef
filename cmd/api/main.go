package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"credit-approval-backend/internal/adapter/excel"
	httpadp "credit-approval-backend/internal/adapter/http"
	mw "credit-approval-backend/internal/adapter/middleware"
	"credit-approval-backend/internal/adapter/repository/gormrepo"
	"credit-approval-backend/internal/config"
	"credit-approval-backend/internal/infrastructure/cache"
	infraDB "credit-approval-backend/internal/infrastructure/db"
	"credit-approval-backend/internal/infrastructure/logging"
	"credit-approval-backend/internal/infrastructure/scheduler"
	ucScore "credit-approval-backend/internal/usecase/creditscore"
	ucCustomer "credit-approval-backend/internal/usecase/customer"
	"credit-approval-backend/internal/usecase/ingest"
	ucLoan "credit-approval-backend/internal/usecase/loan"
	ucStatus "credit-approval-backend/internal/usecase/status"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := infraDB.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		if err := infraDB.Migrate(gdb); err != nil {
			logger.WithError(err).Fatal("migrate")
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		// idempotency is optional; serve without it
		logger.WithError(err).Warn("redis unavailable, idempotency disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// repositories + usecases
	customers := gormrepo.NewCustomerRepository(gdb)
	loans := gormrepo.NewLoanRepository(gdb)
	scores := gormrepo.NewCreditScoreRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	scoreUC := ucScore.NewUsecase(customers, loans, scores)

	if cfg.LoadDataOnStart {
		loader := ingest.NewUsecase(excel.NewReader(), tx)
		if _, err := loader.LoadAll(ctx, cfg.DataDir); err != nil {
			logger.WithError(err).Error("initial data load failed")
		}
	}

	sched := scheduler.New()
	if cfg.CreditScoreCron != "" {
		err := sched.Add("credit-score-refresh", cfg.CreditScoreCron, func(ctx context.Context) error {
			_, err := scoreUC.RecalculateAll(ctx)
			return err
		})
		if err != nil {
			logger.WithError(err).Fatal("schedule credit score refresh")
		}
		sched.Start()
	}

	handlers := httpadp.Handlers{
		System:       httpadp.NewHandler(ucStatus.NewUsecase(sqlDB, customers, loans, scores, cfg.AppVersion)),
		Customers:    httpadp.NewCustomerHandler(ucCustomer.NewUsecase(customers)),
		Loans:        httpadp.NewLoanHandler(ucLoan.NewUsecase(customers, loans, scores, tx)),
		CreditScores: httpadp.NewCreditScoreHandler(scoreUC),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover(), mw.RequestLogger(logger))
	httpadp.RegisterRoutes(e, handlers, mw.Idempotency(rdb, cfg.IdempotencyTTL()))

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      e,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
	go func() {
		logger.WithFields(logrus.Fields{"addr": srv.Addr, "driver": cfg.DBDriver}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("http shutdown")
	}
	sched.Stop(shutdownCtx)
}
