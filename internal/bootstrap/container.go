package bootstrap

import (
	"context"
	"log"
	"time"

	"stayops-be/internal/config"
	"stayops-be/internal/controller"
	"stayops-be/internal/entity"
	"stayops-be/internal/handler"
	"stayops-be/internal/pkg/logger"
	"stayops-be/internal/pkg/mailer"
	"stayops-be/internal/refresh"
	"stayops-be/internal/repository/memory"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/internal/service"
	"stayops-be/internal/websocket"

	pktNats "stayops-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	ContextController   controller.IContextController
	PropertyController  controller.IPropertyController
	RequestController   controller.IRequestController
	AnalyticsController controller.IAnalyticsController
	IngestController    controller.IIngestController
	BillingController   controller.IBillingController

	// Background services (exposed for main.go to run)
	IngestService service.IIngestService
	Refresher     *refresh.Refresher
	SlaMonitor    *service.SlaMonitor

	// WebSockets
	QueueHandler *handler.QueueHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Ingest queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	selections := memory.NewSelectionStore(rdb)
	snapshots := memory.NewSnapshotCache(rdb)

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/queue.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	// The refresher and the request service are mutually dependent: the
	// refresher loads queues through the service, and the service triggers
	// refreshes on writes. The loader closure resolves the cycle; it binds
	// before the refresher ever runs.
	var requestService service.IRequestService
	refresher := refresh.NewRefresher(
		func(ctx context.Context, propertyID uuid.UUID) ([]*entity.Request, *time.Location, error) {
			return requestService.LoadQueue(ctx, propertyID)
		},
		wsHub,
		snapshots,
		sysLogger,
		time.Duration(cfg.Refresh.IntervalSeconds)*time.Second,
	)

	authService := service.NewAuthService(uowFactory, emailService, selections)
	oauthService := service.NewOAuthService(uowFactory)
	resolverService := service.NewResolverService(uowFactory, selections, sysLogger)
	propertyService := service.NewPropertyService(uowFactory)
	requestService = service.NewRequestService(uowFactory, natsPub, refresher)
	analyticsService := service.NewAnalyticsService(uowFactory, propertyService)
	ingestService := service.NewIngestService(pubSub, uowFactory, natsPub, refresher)
	billingService := service.NewBillingService(uowFactory, natsPub)

	slaMonitor := service.NewSlaMonitor(
		uowFactory,
		emailService,
		natsPub,
		refresher,
		sysLogger,
		time.Duration(cfg.Refresh.SlaCheckSeconds)*time.Second,
	)

	// Bus-to-websocket bridge
	if natsSub != nil {
		notifierService := service.NewNotifierService(natsSub, wsHub, wsLogger)
		go func() {
			if err := notifierService.Start(); err != nil {
				log.Printf("[WARN] Failed to start queue notifier: %v", err)
			}
		}()
	}

	// WebSocket handler
	queueHandler := handler.NewQueueHandler(wsHub, propertyService, snapshots, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		ContextController:   controller.NewContextController(resolverService),
		PropertyController:  controller.NewPropertyController(propertyService),
		RequestController:   controller.NewRequestController(requestService, propertyService),
		AnalyticsController: controller.NewAnalyticsController(analyticsService, propertyService),
		IngestController:    controller.NewIngestController(ingestService, cfg.Keys.IngestSecret),
		BillingController:   controller.NewBillingController(billingService),

		IngestService: ingestService,
		Refresher:     refresher,
		SlaMonitor:    slaMonitor,

		QueueHandler: queueHandler,
		WebSocketHub: wsHub,
	}
}
