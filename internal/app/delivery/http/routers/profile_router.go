package routers

import (
	"healthmate-service/internal/app/delivery/http/controllers"
	"healthmate-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachProfileRoutes(router chi.Router, middlewares *middlewares.Middlewares, profileController *controllers.ProfileController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate, middlewares.RateLimitByActor())

		r.Post("/{kind}", profileController.CreateProfile)
		r.Get("/{kind}/me", profileController.GetMyProfile)
		r.Put("/{kind}/me", profileController.UpdateMyProfile)
		r.Delete("/{kind}/me", profileController.DeleteMyProfile)
		r.Get("/{kind}/{profileId}", profileController.GetProfileByID)
	})
}
