package server

import (
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/alert"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/auth"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/comment"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/config"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/favorite"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/geocode"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/i18n"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/profile"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/recognition"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/reference"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/savedsearch"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/search"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Alert *alert.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Alert: alert.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	tr := i18n.New(s.Cfg.Language)
	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	optionalJWT := auth.OptionalJWTMiddleware(s.Cfg.JWTSecret)

	savedSearches := savedsearch.NewService(s.DB, tr)
	dispatcher := alert.NewDispatcher(s.Alert, savedSearches)

	posts := post.NewService(s.DB, dispatcher)
	favorites := favorite.NewService(s.DB, posts)
	profiles := profile.NewService(s.DB, tr)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB, tr))
	reference.RegisterRoutes(s.App.Group("/reference"), reference.NewService(s.DB))
	post.RegisterRoutes(s.App.Group("/posts"), posts, jwtMiddleware)
	search.RegisterRoutes(
		s.App.Group("/search"),
		search.NewService(s.DB, posts, favorites, profiles),
		optionalJWT,
	)
	profile.RegisterRoutes(s.App.Group("/profiles", jwtMiddleware), profiles)
	favorite.RegisterRoutes(s.App.Group("/favorites", jwtMiddleware), favorites)

	comment.RegisterRoutes(s.App, comment.NewService(s.DB, tr), jwtMiddleware)

	savedsearch.RegisterRoutes(s.App.Group("/saved-searches", jwtMiddleware), savedSearches)
	geocode.RegisterRoutes(
		s.App.Group("/geocode"),
		geocode.NewClient(s.Cfg.MapboxToken, s.Cfg.MapboxCountry, s.Cfg.MapboxLang, s.Redis),
	)
	recognition.RegisterRoutes(
		s.App.Group("/recognition", jwtMiddleware),
		recognition.NewRunner(recognition.NewClient(s.Cfg.RecognizerURL)),
	)
	storage.RegisterRoutes(s.App.Group("/storage", jwtMiddleware), storage.NewService(s.DB, s.Cfg.StorageURL))
	alert.RegisterRoutes(s.App.Group("/alerts", jwtMiddleware), s.Alert)
}
