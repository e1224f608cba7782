package http

import (
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"github.com/flexibill/internal/application/auth"
	"github.com/flexibill/internal/application/license"
	"github.com/flexibill/internal/config"
	"github.com/flexibill/internal/transport/http/handler"
	appmiddleware "github.com/flexibill/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

var defaultCORSHeaders = []string{"Accept", "Authorization", "Content-Type"}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(corsOptions(cfg.CORS)))

	// 5 requests/second, burst of 10 on the public OTP endpoints.
	otpRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		Store:     deps.OTPStore,
		Issuer:    deps.JWTProvider,
		SMSSender: deps.SMSSender,
	})
	licenseSvc := license.NewService(license.ServiceDeps{Users: deps.UserRepo, Licenses: deps.LicenseRepo})

	healthH := handler.NewHealthHandler(cfg.Version)
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(licenseSvc)

	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Get("/", healthH.Root)
		r.Get("/version", healthH.Version)

		r.Route("/auth", func(r chi.Router) {
			r.Use(otpRL.Limit)
			r.Post("/send-otp", authH.SendOTP)
			r.Post("/verify-otp", authH.VerifyOTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))
			r.Get("/users/me", userH.Me)
			r.Get("/licenses", userH.Licenses)
		})
	})

	return r
}

// corsOptions allows an origin that is listed explicitly or matches the
// optional origin regex.
func corsOptions(c config.CORS) cors.Options {
	headers := c.Headers
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	opts := cors.Options{
		AllowedOrigins:   c.Origins,
		AllowedMethods:   c.Methods,
		AllowedHeaders:   headers,
		AllowCredentials: c.Credentials,
		MaxAge:           300,
	}
	if c.OriginRegex == "" {
		return opts
	}
	re, err := regexp.Compile(c.OriginRegex)
	if err != nil {
		slog.Warn("ignoring invalid CORS_ORIGIN_REGEX", "regex", c.OriginRegex, "err", err)
		return opts
	}
	opts.AllowOriginFunc = func(_ *http.Request, origin string) bool {
		return slices.Contains(c.Origins, origin) || slices.Contains(c.Origins, "*") || re.MatchString(origin)
	}
	return opts
}
