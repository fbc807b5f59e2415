package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mytheresa/bilingual-catalog/app/catalog"
	"github.com/mytheresa/bilingual-catalog/app/catalogsync"
	"github.com/mytheresa/bilingual-catalog/app/categories"
	"github.com/mytheresa/bilingual-catalog/app/config"
	"github.com/mytheresa/bilingual-catalog/app/media"
	"github.com/mytheresa/bilingual-catalog/app/slug"
	"github.com/mytheresa/bilingual-catalog/app/translate"
	"github.com/mytheresa/bilingual-catalog/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log, err := cfg.Logger()
	if err != nil {
		logrus.WithError(err).Fatal("configure logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: cfg.DatabaseDriver,
		DSN:        cfg.DatabaseDSN,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}
	if err := models.AutoMigrate(db); err != nil {
		return err
	}
	log.WithField("driver", cfg.DatabaseDriver).Info("database ready")

	translator, err := translate.New(ctx, translate.Options{
		Provider:     cfg.TranslatorProvider,
		DeepLAPIKey:  cfg.DeepLAPIKey,
		DeepLAPIURL:  cfg.DeepLAPIURL,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		Timeout:      cfg.TranslateTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer translator.Close()

	var images catalogsync.ImageRemover
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			return err
		}
		images = cld
	} else {
		log.Warn("CLOUDINARY_URL not set, product images will not be cleaned up")
	}

	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)
	sync := catalogsync.NewService(catalogsync.Dependencies{
		Categories:   categoriesRepo,
		Products:     productsRepo,
		Translations: models.NewTranslationsRepository(db),
		Translator:   translator,
		Slugs:        slug.New(cfg.SlugMaxProbes),
		Images:       images,
		Log:          log,
	})

	catHandler := categories.NewCategoryHandler(categoriesRepo, sync, log)
	catalogHandler := catalog.NewCatalogHandler(productsRepo, sync, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("GET /catalog/{slug}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("POST /products", catalogHandler.HandleCreateProduct)
	mux.HandleFunc("PUT /products/{id}/translations/{lang}", catalogHandler.HandlePutTranslation)
	mux.HandleFunc("DELETE /products/{id}", catalogHandler.HandleDeleteProduct)
	mux.HandleFunc("GET /categories", catHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", catHandler.HandleCreate)
	mux.HandleFunc("PUT /categories/{id}", catHandler.HandleUpdate)
	mux.HandleFunc("DELETE /categories/{id}", catHandler.HandleDelete)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
