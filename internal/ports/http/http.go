package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	userapp "gitlab.com/garageonwheels/gow-web/internal/application/user"
	"gitlab.com/garageonwheels/gow-web/internal/ports/http/middlewares"
	"gitlab.com/garageonwheels/gow-web/internal/ports/http/render"
	userhttp "gitlab.com/garageonwheels/gow-web/internal/ports/http/user"
	"gitlab.com/garageonwheels/gow-web/pkg/httpx"
)

type Port struct {
	user    *userhttp.HTTP
	origins []string
}

type Args struct {
	UserApp        *userapp.App
	Secret         []byte
	AllowedOrigins []string
}

func NewPort(args Args) (*Port, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	errhandler := httpx.NewErrorHandler()
	mw := middlewares.NewMiddleware(middlewares.Args{
		Secret:     args.Secret,
		Errhandler: errhandler,
	})

	return &Port{
		user: userhttp.NewHTTP(userhttp.Args{
			App:        args.UserApp,
			Middleware: mw,
			Renderer:   renderer,
			Errhandler: errhandler,
		}),
		origins: args.AllowedOrigins,
	}, nil
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	r.Use(middlewares.OTel)
	r.Use(middlewares.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   p.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	p.user.Route(r)

	return r
}
