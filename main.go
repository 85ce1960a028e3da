package main

import (
	"net/http"
	"os"

	appmod "github.com/km-arc/go-angular/app"
	"github.com/km-arc/go-angular/framework/app"
	gohttp "github.com/km-arc/go-angular/framework/http"
	"github.com/km-arc/go-angular/framework/inject"
	"github.com/km-arc/go-angular/framework/routing"
)

func main() {
	application := app.New() // loads .env, registers core tokens

	if err := application.Register(&appmod.Module{}); err != nil {
		logger := application.Logger()
		logger.Fatal().Err(err).Msg("module registration failed")
	}

	r := application.Router()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		res.Success(map[string]any{"message": "Welcome to go-angular!"})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {

		// GET /api/v1/greet/{name} — resolves the class-provided greeter
		api.Get("/greet/{name}", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			greeter, err := inject.Inject(appmod.Greeter)
			if err != nil {
				res.ServerError(err.Error())
				return
			}
			res.Success(map[string]any{
				"greeting": greeter.Greet(routing.Param(req, "name")),
			})
		})

		// GET /api/v1/health
		api.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			res.Success(map[string]any{
				"status":  "ok",
				"env":     application.Environment(),
				"version": application.Version(),
			})
		})
	})

	if err := application.Run(); err != nil {
		logger := application.Logger()
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
