package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"warung/internal/cart"
	"warung/internal/config"
	"warung/internal/db"
	"warung/internal/httpserver"
	categoryrepo "warung/internal/repository/category"
	discountrepo "warung/internal/repository/discount"
	dishrepo "warung/internal/repository/dish"
	orderrepo "warung/internal/repository/order"
	taxrepo "warung/internal/repository/tax"
	userrepo "warung/internal/repository/user"
	variantrepo "warung/internal/repository/variant"
	authsvc "warung/internal/service/auth"
	categorysvc "warung/internal/service/category"
	discountsvc "warung/internal/service/discount"
	dishsvc "warung/internal/service/dish"
	ordersvc "warung/internal/service/order"
	taxsvc "warung/internal/service/tax"
	variantsvc "warung/internal/service/variant"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	categoryRepo := categoryrepo.NewPostgres(dbpool)
	dishRepo := dishrepo.NewPostgres(dbpool, logger)
	variantRepo := variantrepo.NewPostgres(dbpool)
	taxRepo := taxrepo.NewPostgres(dbpool)
	discountRepo := discountrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool)

	cartSvc, err := cart.NewReconciler(cart.Config{
		Secret: []byte(cfg.CartSecret),
		MaxAge: cfg.CartMaxAge,
	}, dishRepo)
	if err != nil {
		logger.Fatalf("init cart: %v", err)
	}

	authService, err := authsvc.New(userRepo, []byte(cfg.JWTSecret), cfg.SessionTTL)
	if err != nil {
		logger.Fatalf("init auth: %v", err)
	}

	taxService := taxsvc.New(taxRepo)

	srv, err := httpserver.New(logger, dbpool, httpserver.Deps{
		CategorySvc: categorysvc.New(categoryRepo),
		DishSvc:     dishsvc.New(dishRepo),
		VariantSvc:  variantsvc.New(variantRepo, dishRepo),
		TaxSvc:      taxService,
		DiscountSvc: discountsvc.New(discountRepo),
		AuthSvc:     authService,
		CartSvc:     cartSvc,
		OrderSvc:    ordersvc.New(orderRepo, cartSvc, taxService),
	}, cfg)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
