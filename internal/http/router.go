package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gayratjon-02/AD-sub001/internal/http/handlers"
	"github.com/gayratjon-02/AD-sub001/internal/middleware"
)

// RouterOptions carries the cross-cutting pieces the router wires around the
// handlers.
type RouterOptions struct {
	Logger         zerolog.Logger
	DefaultLocale  string
	CountryLookup  middleware.CountryLookup
	AllowedOrigins []string
	StaticDir      string
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/healthz", app.Health)

	if opts.StaticDir != "" {
		fs := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(opts.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.UserIdentity)

		r.Route("/generations", func(r chi.Router) {
			r.Post("/", app.GenerationsCreate)
			r.Get("/active", app.GenerationsActive)
			r.Get("/{id}", app.GenerationsGet)
			r.Post("/{id}/rerender", app.GenerationsRerender)
		})

		r.Post("/analyses/validate", app.AnalysesValidate)

		r.Route("/reference", func(r chi.Router) {
			r.Get("/angles", app.ReferenceAngles)
			r.Get("/formats", app.ReferenceFormats)
		})
	})

	return r
}
