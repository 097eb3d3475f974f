package routers

import (
	"healthmate-service/internal/app/delivery/http/controllers"
	"healthmate-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAccessRoutes(router chi.Router, middlewares *middlewares.Middlewares, accessController *controllers.AccessController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate, middlewares.RateLimitByActor())

		r.Post("/check", accessController.Check)
		r.Post("/check-batch", accessController.CheckBatch)
	})
}
