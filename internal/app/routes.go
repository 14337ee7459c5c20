package app

import (
	"github.com/agenda-br/core/internal/middleware"
	"github.com/agenda-br/core/internal/modules/auth"
	"github.com/agenda-br/core/internal/modules/contact"
	"github.com/agenda-br/core/internal/modules/lookup"
	pkgmail "github.com/agenda-br/core/internal/pkg/mail"
	pkgredis "github.com/agenda-br/core/internal/pkg/redis"
	"github.com/agenda-br/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Rota não encontrada.")
	})

	authMW := middleware.Auth(a.sessions)
	loginMW := middleware.LoginRateLimit(rc.Raw())

	api := r.Group("/api")

	mailer := pkgmail.New(a.cfg.Mail)
	authSvc := auth.NewService(a.db, a.sessions, mailer)
	auth.NewHandler(authSvc, a.logger).RegisterRoutes(api, authMW, loginMW)

	contactSvc := contact.NewService(a.db)
	contact.NewHandler(contactSvc, a.logger).RegisterRoutes(api, authMW)

	lookup.NewHandler(a.cfg.GoogleMapsKey, a.logger).RegisterRoutes(api, authMW)
}
