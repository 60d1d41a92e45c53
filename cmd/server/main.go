package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/teamup/backend/internal/config"
	"github.com/teamup/backend/internal/database"
	"github.com/teamup/backend/internal/handlers"
	"github.com/teamup/backend/internal/messaging"
	"github.com/teamup/backend/internal/middleware"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/internal/store"
	"github.com/teamup/backend/pkg/logger"
	"github.com/teamup/backend/pkg/utils"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer st.Close()

	refDB, err := database.Connect(cfg.RefData)
	if err != nil {
		log.Fatalf("refdata connection failed: %v", err)
	}

	var notifier services.Notifier
	if cfg.NATS.URL != "" {
		natsNotifier, err := messaging.NewNATSNotifier(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			log.Fatalf("nats connection failed: %v", err)
		}
		defer natsNotifier.Close()
		notifier = natsNotifier
	} else {
		logger.Warn("nats_disabled", map[string]interface{}{
			"reason": "NATS_URL not set, notifications go to the log",
		})
		notifier = messaging.LogNotifier{}
	}

	registry := services.NewRegistry(st, refDB, notifier, cfg.Dispatch.QueueSize)
	defer registry.Close()

	groupsHandler := handlers.NewGroupsHandler(registry.Groups)
	postsHandler := handlers.NewPostsHandler(registry.Posts)
	likesHandler := handlers.NewLikesHandler(registry.Likes)
	refDataHandler := handlers.NewRefDataHandler(registry.RefData)

	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.WithUser)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Get("/regions", refDataHandler.Regions)
	api.Get("/regions/:id/localities", refDataHandler.Localities)

	groupRoutes := api.Group("/groups")
	groupRoutes.Post("/", middleware.RequireUser, groupsHandler.Create)
	groupRoutes.Get("/", groupsHandler.Filter)
	groupRoutes.Get("/:id", groupsHandler.Get)
	groupRoutes.Delete("/:id", middleware.RequireUser, groupsHandler.Delete)
	groupRoutes.Get("/:id/subclubs", groupsHandler.SubClubs)
	groupRoutes.Get("/:id/members", groupsHandler.Members)
	groupRoutes.Post("/:id/join", middleware.RequireUser, groupsHandler.Join)
	groupRoutes.Post("/:id/leave", middleware.RequireUser, groupsHandler.Leave)
	groupRoutes.Get("/:id/posts", postsHandler.GroupPosts)

	postRoutes := api.Group("/posts")
	postRoutes.Post("/", middleware.RequireUser, postsHandler.Create)
	postRoutes.Get("/:id", postsHandler.Get)
	postRoutes.Put("/:id", middleware.RequireUser, postsHandler.Update)
	postRoutes.Delete("/:id", middleware.RequireUser, postsHandler.Delete)
	postRoutes.Post("/:id/read", middleware.RequireUser, postsHandler.MarkRead)
	postRoutes.Get("/:id/likes", likesHandler.PostLikes)

	api.Get("/users/:id/posts", postsHandler.UserPosts)

	likeRoutes := api.Group("/likes")
	likeRoutes.Post("/", middleware.RequireUser, likesHandler.Like)
	likeRoutes.Delete("/", middleware.RequireUser, likesHandler.Unlike)

	meRoutes := api.Group("/me", middleware.RequireUser)
	meRoutes.Get("/groups", groupsHandler.MyGroups)
	meRoutes.Get("/posts", postsHandler.MyPosts)
	meRoutes.Get("/unseen-posts", postsHandler.Unseen)
	meRoutes.Get("/likes", likesHandler.MyLikes)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
