package app

import (
	"context"
	"os"
	"time"

	"feed-sync-backend/internal/handlers"
	"feed-sync-backend/internal/room"
	"feed-sync-backend/internal/services"
	"feed-sync-backend/internal/utils"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	utils.LoadEnv()
	log := utils.NewLogger()

	// Core state: every room's store and registry behind one service, the
	// broadcaster alongside it. All state is in-memory and dies with the
	// process.
	svc := services.NewRoomService(
		log,
		utils.GetEnvInt("MAX_TEXT_LEN", room.DefaultMaxTextLen),
		utils.GetEnvInt("MAX_NAME_LEN", room.DefaultMaxNameLen),
	)
	mgr := handlers.NewRoomManager(log, utils.GetEnvInt("SEND_QUEUE_SIZE", handlers.DefaultSendQueueSize))
	dispatcher := handlers.NewDispatcher(log, svc, mgr)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Read-only REST surface
	api := app.Group("/api")
	api.Get("/rooms", handlers.ListRoomsHandler(svc))
	api.Get("/rooms/:id/items", handlers.RoomSnapshotHandler(svc))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// WebSocket route
	app.Use("/ws", handlers.WSUpgradeMiddleware)
	app.Get("/ws", handlers.WebSocketHandler(log, dispatcher))

	port := utils.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()
	log.Info("server listening", "port", port)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return app.Shutdown()
			},
		},
	)
	exitCode := <-wait
	log.Info("server shutdown complete", "code", exitCode)
	os.Exit(exitCode)
}
