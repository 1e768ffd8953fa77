package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qrmenu/config"
	"qrmenu/internal/database"
	"qrmenu/internal/router"
	"qrmenu/pkg/cloudinary"
	"qrmenu/pkg/gateway"
	"qrmenu/pkg/genai"
	"qrmenu/pkg/sms"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	database.SeedCoupons(db)

	deps := router.Deps{}
	if cfg.Gateway.KeyID != "" {
		deps.Gateway = gateway.NewRazorpayClient(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret)
	} else {
		log.Println("razorpay credentials not set, using stub gateway")
	}
	if cfg.SMS.APIKey != "" {
		deps.SMS = sms.NewVonageSender(cfg.SMS.APIKey, cfg.SMS.APISecret, cfg.SMS.FromNumber)
	} else {
		log.Println("vonage credentials not set, otp codes will be logged")
	}
	if cfg.GenAI.APIKey != "" {
		deps.GenAI = genai.NewGeminiClient(cfg.GenAI.APIKey, cfg.GenAI.Model)
	}
	if cfg.Cloudinary.CloudName != "" {
		images, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalf("init cloudinary: %v", err)
		}
		deps.Images = images
	}

	engine, reaper := router.Setup(cfg, db, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go reaper.Run(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
