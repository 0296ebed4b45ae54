package router

import (
	authsvc "github.com/euRezerv/api-sub000/internal/application/auth"
	compsvc "github.com/euRezerv/api-sub000/internal/application/companies"
	invsvc "github.com/euRezerv/api-sub000/internal/application/invitations"
	ressvc "github.com/euRezerv/api-sub000/internal/application/resources"
	usersvc "github.com/euRezerv/api-sub000/internal/application/user"
	"github.com/euRezerv/api-sub000/internal/config"
	"github.com/euRezerv/api-sub000/internal/infrastructure/database"
	"github.com/euRezerv/api-sub000/internal/infrastructure/repository"
	authhandler "github.com/euRezerv/api-sub000/internal/interfaces/handlers/auth"
	comphandler "github.com/euRezerv/api-sub000/internal/interfaces/handlers/companies"
	healthhandler "github.com/euRezerv/api-sub000/internal/interfaces/handlers/health"
	invhandler "github.com/euRezerv/api-sub000/internal/interfaces/handlers/invitations"
	reshandler "github.com/euRezerv/api-sub000/internal/interfaces/handlers/resources"
	userhandler "github.com/euRezerv/api-sub000/internal/interfaces/handlers/user"
	"github.com/euRezerv/api-sub000/internal/middleware"
	"github.com/euRezerv/api-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp connects to the database and Redis named in cfg and builds the app on top of them.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		log.Info().Msg("database migrated")
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redis.NewClient(opt)

	app, err := Build(cfg, db, rdb)
	if err != nil {
		return nil, nil, nil, err
	}
	return app, db, rdb, nil
}

// Build wires middleware, services and routes over an open database and Redis client.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*fiber.App, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Session(sessionCfg, rdb))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb, DB: sqlDB, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)
	app.Get("/health/errors", hh.Errors)

	store := repository.New(db)
	v1 := app.Group("/v1")

	ah := &authhandler.Handlers{Service: &authsvc.Service{Store: store}, Rdb: rdb, Config: sessionCfg}
	ag := v1.Group("/auth")
	ag.Post("/login", ah.Login)
	ag.Get("/me", ah.Me)
	ag.Delete("/logout", ah.Logout)

	uh := &userhandler.Handlers{Service: &usersvc.Service{Store: store}}
	v1.Post("/users", uh.CreateUser)
	v1.Get("/users/:userId", middleware.RequireAuth(), uh.ViewUser)

	ch := &comphandler.Handlers{Service: &compsvc.Service{Store: store}}
	cg := v1.Group("/companies", middleware.RequireAuth())
	cg.Get("/", ch.ListCompanies)
	cg.Post("/", ch.CreateCompany)
	cg.Get("/:companyId", ch.GetCompany)

	ih := &invhandler.Handlers{Service: invsvc.NewService(store)}
	ig := cg.Group("/:companyId/invitations")
	ig.Get("/", ih.ListInvitations)
	ig.Post("/", ih.CreateInvitation)
	ig.Get("/:invitationId", ih.GetInvitation)
	ig.Patch("/:invitationId/accept", ih.AcceptInvitation)
	ig.Patch("/:invitationId/decline", ih.DeclineInvitation)
	ig.Patch("/:invitationId/cancel", ih.CancelInvitation)

	rh := &reshandler.Handlers{Service: ressvc.NewService(store)}
	rg := cg.Group("/:companyId/resources")
	rg.Get("/", rh.ListResources)
	rg.Post("/", rh.CreateResource)
	rg.Get("/:resourceId", rh.GetResource)

	app.Use(func(c *fiber.Ctx) error {
		return response.Error(c, "Route not found", fiber.StatusNotFound, nil)
	})
	return app, nil
}
