package main

import (
	"askai"
	"askai/internal/api/handler/endpoints"
	"askai/internal/api/models"
	"askai/internal/api/service"
	"askai/internal/api/websocket"
	"askai/internal/ask"
	"askai/pkg"
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	askai.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if askai.GetConfig().Mode == "dev" {
		if err := askai.DB.AutoMigrate(
			&models.Workflow{},
			&models.Node{},
			&models.Connection{},
		); err != nil {
			askai.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		askai.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(askai.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hub := websocket.NewHub(askai.Logger)
	go hub.Run()
	askai.Logger.Info().Msg("WebSocket hub started")

	telemetry := ask.NewTelemetryReporter(askai.GetConfig().NatsURL, askai.Logger)
	defer telemetry.Close()

	notifier := websocket.NewEditorNotifier(hub)
	generator := pkg.NewCodegenClient(askai.GetConfig().Codegen.Host)
	askService := service.NewAskService(
		askai.GetConfig(),
		service.NewWorkflowService(),
		service.NewRunDataService(),
		notifier,
		notifier,
		generator,
		telemetry,
	)

	initAPI(router, hub, askService)

	askai.Logger.Debug().Msgf("Starting ASK API on port %s", askai.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		askai.Logger.Fatal().Msg(err.Error())
		panic(err)
	}

}

func initAPI(router *graceful.Graceful, hub *websocket.Hub, askService *service.AskService) {
	endpoints.AskHandler(router, askService)
	endpoints.WorkflowHandler(router)
	endpoints.WebSocketHandler(router, hub)
}
