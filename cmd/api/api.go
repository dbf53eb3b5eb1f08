package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"extreme/docs" //this is required to generate swagger docs
	"extreme/internal/auth"
	"extreme/internal/catalog"
	"extreme/internal/ratelimiter"
	"extreme/internal/store"
	"extreme/internal/whatsapp"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	authenticator *auth.JWTAuthenticator
	rateLimiter   ratelimiter.Limiter
	composer      *catalog.Composer
	links         *whatsapp.LinkBuilder
	references    *whatsapp.ReferenceGenerator
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	auth        authConfig
	whatsapp    whatsappConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
	admin adminConfig
}

type tokenConfig struct {
	secret        string
	refreshSecret string
	iss           string
}

type basicConfig struct {
	user string
	pass string
}

// adminConfig holds the single back-office login. passwordHash is a bcrypt
// hash, never the plain password.
type adminConfig struct {
	email        string
	passwordHash string
}

type whatsappConfig struct {
	checkoutPhone string
	inquiryPhone  string
	referenceSalt string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Storefront: public, read-only.
		r.Get("/catalog", app.getCatalogHandler)
		r.Get("/catalog/export.csv", app.exportCatalogCSVHandler)
		r.Get("/catalog/export.html", app.exportCatalogHTMLHandler)
		r.Get("/categories/{categoryID}/tree", app.getCategoryTreeHandler)
		r.Get("/products/{productID}", app.getProductHandler)
		r.Get("/products/{productID}/inquiry", app.getProductInquiryHandler)
		r.Get("/banners", app.listBannersHandler)
		r.Get("/footer", app.getFooterHandler)
		r.Get("/theme", app.getActiveThemeHandler)
		r.Post("/checkout", app.checkoutHandler)

		r.Route("/authentication", func(r chi.Router) {
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		// Back office: everything behind the admin token.
		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", app.adminListProductsHandler)
				r.Post("/", app.createProductHandler)
				r.Put("/{productID}", app.updateProductHandler)
				r.Delete("/{productID}", app.deleteProductHandler)
				r.Post("/{productID}/duplicate", app.duplicateProductHandler)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", app.adminListCategoriesHandler)
				r.Post("/", app.createCategoryHandler)
				r.Put("/{categoryID}", app.updateCategoryHandler)
				r.Delete("/{categoryID}", app.deleteCategoryHandler)
			})

			r.Route("/subcategories", func(r chi.Router) {
				r.Get("/", app.adminListSubcategoriesHandler)
				r.Post("/", app.createSubcategoryHandler)
				r.Put("/{subcategoryID}", app.updateSubcategoryHandler)
				r.Delete("/{subcategoryID}", app.deleteSubcategoryHandler)
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", app.adminListBannersHandler)
				r.Post("/", app.createBannerHandler)
				r.Put("/{bannerID}", app.updateBannerHandler)
				r.Delete("/{bannerID}", app.deleteBannerHandler)
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", app.adminListPromotionsHandler)
				r.Post("/", app.createPromotionHandler)
				r.Put("/{promotionID}", app.updatePromotionHandler)
				r.Delete("/{promotionID}", app.deletePromotionHandler)
			})

			r.Route("/footer", func(r chi.Router) {
				r.Get("/", app.adminGetFooterHandler)
				r.Put("/", app.updateFooterHandler)
			})

			r.Route("/themes", func(r chi.Router) {
				r.Get("/", app.listThemesHandler)
				r.Post("/", app.createThemeHandler)
				r.Put("/{themeID}", app.updateThemeHandler)
				r.Post("/{themeID}/activate", app.activateThemeHandler)
				r.Delete("/{themeID}", app.deleteThemeHandler)
			})

			r.Post("/uploads", app.uploadImageHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
