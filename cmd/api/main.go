package main

import (
	"context"
	"fmt"
	"greenmart-api/internal/client"
	"greenmart-api/internal/config"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"greenmart-api/internal/server"
	"greenmart-api/internal/service"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	faqRepo := repository.NewFAQRepository(db)

	ctx := context.Background()
	if err := categoryRepo.Seed(ctx); err != nil {
		log.Fatal("seed categories:", err)
	}
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		err = adminRepo.Seed(ctx, &model.Admin{
			ID:       uuid.NewString(),
			Name:     "Administrator",
			Email:    cfg.Admin.Email,
			Password: string(hashed),
		})
		if err != nil {
			log.Fatal("seed admin:", err)
		}
	}

	authService := service.NewAuthService(cfg.JWT, userRepo, adminRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, faqRepo)
	cartService := service.NewCartService(db, userRepo, productRepo)
	orderService := service.NewOrderService(db, orderRepo, productRepo, userRepo)
	adminOrderService := service.NewAdminOrderService(db, orderRepo)
	reviewService := service.NewReviewService(reviewRepo, orderRepo, productRepo, userRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		cfg,
		authService,
		catalogService,
		cartService,
		orderService,
		adminOrderService,
		reviewService,
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
