package server

import (
	"errors"

	"github.com/Glaser1/Yatube/internal/auth"
	"github.com/Glaser1/Yatube/internal/cache"
	"github.com/Glaser1/Yatube/internal/config"
	"github.com/Glaser1/Yatube/internal/posts"
	"github.com/Glaser1/Yatube/internal/social"
	"github.com/Glaser1/Yatube/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Cache *cache.PageCache
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layout",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Cache: cache.New(redisClient, cfg.IndexCacheTTL),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.App.Use(auth.LoadUser(s.Cfg.SessionSecret))
	requireUser := auth.RequireUser(s.Cfg.SessionSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.SessionSecret, s.DB))

	postSvc := posts.NewService(s.DB)
	store := storage.NewService(s.Cfg.MediaDir)
	posts.RegisterRoutes(s.App, postSvc, store, s.Cfg.PageSize, requireUser, s.Cache.Middleware())
	social.RegisterRoutes(s.App, social.NewService(s.DB), postSvc, s.Cfg.PageSize, requireUser)

	s.App.Static("/static", s.Cfg.StaticDir)
	s.App.Static("/media", s.Cfg.MediaDir)

	s.App.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	c.Status(code)
	if code == fiber.StatusNotFound {
		if rerr := c.Render("404", fiber.Map{"Path": c.Path()}); rerr == nil {
			return nil
		}
		return c.SendString("Page not found")
	}
	if rerr := c.Render("error", fiber.Map{"Code": code}); rerr == nil {
		return nil
	}
	return c.SendString(err.Error())
}
