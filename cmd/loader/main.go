package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"credit-approval-backend/internal/adapter/excel"
	"credit-approval-backend/internal/adapter/repository/gormrepo"
	"credit-approval-backend/internal/config"
	infraDB "credit-approval-backend/internal/infrastructure/db"
	"credit-approval-backend/internal/infrastructure/logging"
	ucScore "credit-approval-backend/internal/usecase/creditscore"
	"credit-approval-backend/internal/usecase/ingest"
)

func main() {
	cfg := config.Load()

	dir := flag.String("dir", cfg.DataDir, "directory holding customer_data.xlsx and loan_data.xlsx")
	customersPath := flag.String("customers", "", "customer workbook (default <dir>/customer_data.xlsx)")
	loansPath := flag.String("loans", "", "loan workbook (default <dir>/loan_data.xlsx)")
	customersOnly := flag.Bool("customers-only", false, "load customers only")
	loansOnly := flag.Bool("loans-only", false, "load loans only")
	recalc := flag.Bool("recalculate-scores", false, "recalculate every customer's credit score after loading")
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid config")
	}
	if *customersOnly && *loansOnly {
		logger.Fatal("-customers-only and -loans-only are mutually exclusive")
	}
	if *customersPath == "" {
		*customersPath = filepath.Join(*dir, ingest.CustomerFile)
	}
	if *loansPath == "" {
		*loansPath = filepath.Join(*dir, ingest.LoanFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := infraDB.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := infraDB.Migrate(gdb); err != nil {
		logger.WithError(err).Fatal("migrate")
	}

	loader := ingest.NewUsecase(excel.NewReader(), gormrepo.NewGormUoW(gdb))

	var results []ingest.Result
	if !*loansOnly {
		res, err := loader.LoadCustomers(ctx, *customersPath)
		if err != nil {
			logger.WithError(err).Fatal("load customers")
		}
		results = append(results, res)
	}
	if !*customersOnly {
		res, err := loader.LoadLoans(ctx, *loansPath)
		if err != nil {
			logger.WithError(err).Fatal("load loans")
		}
		results = append(results, res)
	}

	if *recalc {
		scores := ucScore.NewUsecase(
			gormrepo.NewCustomerRepository(gdb),
			gormrepo.NewLoanRepository(gdb),
			gormrepo.NewCreditScoreRepository(gdb),
		)
		res, err := scores.RecalculateAll(ctx)
		if err != nil {
			logger.WithError(err).Fatal("recalculate credit scores")
		}
		logger.WithFields(logrus.Fields{"updated": res.Updated, "failed": res.Failed}).Info("scores refreshed")
	}

	for _, r := range results {
		if r.Errors > 0 {
			logger.WithFields(logrus.Fields{"file": r.File, "errors": r.Errors}).Warn("rows skipped")
		}
	}
}
