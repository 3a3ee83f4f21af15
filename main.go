package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pinklegion-contracts/config"
	"pinklegion-contracts/domain"
	httpLayer "pinklegion-contracts/http"
	"pinklegion-contracts/pdf"
	"pinklegion-contracts/repository"
	"pinklegion-contracts/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	templates, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		logger.Fatal("failed to load contract templates", zap.Error(err))
	}

	var installmentRepo repository.InstallmentRepository
	if cfg.SQLitePath != "" {
		sqliteRepo, err := repository.NewInstallmentRepositorySQLite(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open installment database", zap.Error(err))
		}
		defer func() { _ = sqliteRepo.Close() }()
		installmentRepo = sqliteRepo
		logger.Info("using sqlite installment repository", zap.String("path", cfg.SQLitePath))
	} else {
		installmentRepo = repository.NewInstallmentRepositoryMemory()
		logger.Info("using in-memory installment repository")
	}

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
		logger.Info("using redis document cache", zap.String("addr", cfg.RedisAddr))
	} else {
		cache = repository.NewMockCache()
		logger.Info("using in-process document cache")
	}

	engine, err := pdf.NewChromeEngine(cfg.ChromeBin, logger)
	if err != nil {
		logger.Fatal("failed to start pdf engine", zap.Error(err))
	}
	defer func() { _ = engine.Close() }()

	contractService := service.NewContractService(templates, engine, cache, logger)
	contractHandler := httpLayer.NewContractHandler(contractService, logger)

	installmentService := service.NewInstallmentService(installmentRepo, logger)
	installmentHandler := httpLayer.NewInstallmentHandler(installmentService, logger)

	bankHandler := httpLayer.NewBankHandler()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/contracts/generate", limited(contractHandler.GenerateContract))
	mux.Handle("/installments/plan", limited(installmentHandler.ComputePlan))
	mux.Handle("/installments/schedule", limited(installmentHandler.Schedule))
	mux.Handle("/installments/mark", limited(installmentHandler.MarkPaid))
	mux.Handle("/bank/resolve", limited(bankHandler.Resolve))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Chromium renders can be slow
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("server exited")
}

// loadTemplates reads the tokenized HTML templates once at startup.
func loadTemplates(dir string) (map[domain.ContractType]string, error) {
	files := map[domain.ContractType]string{
		domain.ContractSale:           "sale.html",
		domain.ContractDebtConfession: "debt_confession.html",
	}

	templates := make(map[domain.ContractType]string, len(files))
	for contractType, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates[contractType] = string(raw)
	}
	return templates, nil
}
