package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/casbin/casbin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/NakibIheb20/carthatamaz-platform/cache"
	"github.com/NakibIheb20/carthatamaz-platform/config"
	"github.com/NakibIheb20/carthatamaz-platform/handlers"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
	"github.com/NakibIheb20/carthatamaz-platform/routes"
	"github.com/NakibIheb20/carthatamaz-platform/services"
	"github.com/NakibIheb20/carthatamaz-platform/utils"
)

var (
	server      *gin.Engine
	ctx         context.Context
	mongoclient *mongo.Client
	logger      *logrus.Logger
	cfg         *config.Config

	AuthRouteHandler           routes.AuthRouteHandler
	UserRouteHandler           routes.UserRouteHandler
	GuesthouseRouteHandler     routes.GuesthouseRouteHandler
	ReservationRouteHandler    routes.ReservationRouteHandler
	MessageRouteHandler        routes.MessageRouteHandler
	AdminRouteHandler          routes.AdminRouteHandler
	RecommendationRouteHandler routes.RecommendationRouteHandler
)

func init() {
	ctx = context.TODO()

	logger = logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	lumberjackLog := &lumberjack.Logger{
		Filename:  "logs/logfile.log",
		MaxSize:   1,
		LocalTime: true,
	}
	logger.SetOutput(lumberjackLog)

	cfg = config.LoadConfig()

	mongoconn := options.Client().ApplyURI(cfg.MongoURI)
	var err error
	mongoclient, err = mongo.Connect(ctx, mongoconn)
	if err != nil {
		panic(err)
	}
	if err := mongoclient.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}
	logger.Info("MongoDB successfully connected...")

	tracerProvider, err := NewTracerProvider(cfg.ServiceName, cfg.JaegerAddress)
	if err != nil {
		logger.Fatalf("JaegerTraceProvider failed to Initialize. Error :%s", err)
	}
	tracer := tracerProvider.Tracer(cfg.ServiceName)

	codeCache := cache.NewResetCodeCache(cfg.RedisHost, cfg.RedisPort, logger)
	codeCache.Ping()

	db := mongoclient.Database(cfg.MongoDatabase)
	userRepo := repository.NewUserRepo(db.Collection("users"), logger)
	guesthouseRepo := repository.NewGuesthouseRepo(db.Collection("guesthouses"), logger)
	reservationRepo := repository.NewReservationRepo(db.Collection("reservations"), logger)
	messageRepo := repository.NewMessageRepo(db.Collection("messages"), logger)
	reviewRepo := repository.NewReviewRepo(db.Collection("reviews"), logger)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.WithFields(logrus.Fields{"path": "main"}).Error("Error creating user indexes: ", err)
	}
	if err := reservationRepo.EnsureIndexes(ctx); err != nil {
		logger.WithFields(logrus.Fields{"path": "main"}).Error("Error creating reservation indexes: ", err)
	}

	userService := services.NewUserServiceImpl(userRepo, logger, tracer)
	authService := services.NewAuthServiceImpl(userRepo, codeCache, cfg, logger, tracer)
	guesthouseService := services.NewGuesthouseServiceImpl(guesthouseRepo, logger, tracer)
	reservationService := services.NewReservationServiceImpl(reservationRepo, guesthouseRepo, userRepo, logger, tracer)
	messageService := services.NewMessageServiceImpl(messageRepo, userRepo, logger, tracer)
	reviewService := services.NewReviewServiceImpl(reviewRepo)
	csvImportService := services.NewCsvImportService(guesthouseRepo, logger)
	recommendationService := services.NewRecommendationServiceImpl(cfg.RecommendEngineURL, cfg.ChatbotEngineURL, logger, tracer)

	authHandler := handlers.NewAuthHandler(authService, userService, tracer, logger)
	userHandler := handlers.NewUserHandler(userService, tracer, logger)
	guesthouseHandler := handlers.NewGuesthouseHandler(guesthouseService, reviewService, csvImportService, tracer, logger)
	reservationHandler := handlers.NewReservationHandler(reservationService, tracer, logger)
	messageHandler := handlers.NewMessageHandler(messageService, tracer, logger)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, tracer, logger)

	enforcer := casbin.NewEnforcer(cfg.CasbinModelPath, cfg.CasbinPolicyPath)
	deserializeUser := utils.DeserializeUser(userService.FindUserByEmail, cfg.SecretKey)
	authorize := utils.Authorize(enforcer)

	AuthRouteHandler = routes.NewAuthRouteHandler(authHandler)
	UserRouteHandler = routes.NewUserRouteHandler(userHandler, deserializeUser)
	GuesthouseRouteHandler = routes.NewGuesthouseRouteHandler(guesthouseHandler, reservationHandler, deserializeUser, authorize)
	ReservationRouteHandler = routes.NewReservationRouteHandler(reservationHandler, deserializeUser, authorize)
	MessageRouteHandler = routes.NewMessageRouteHandler(messageHandler, deserializeUser, authorize)
	AdminRouteHandler = routes.NewAdminRouteHandler(guesthouseHandler, reservationHandler, deserializeUser, authorize)
	RecommendationRouteHandler = routes.NewRecommendationRouteHandler(recommendationHandler)

	if err := utils.RegisterValidations(); err != nil {
		logger.Fatalf("Error registering validations: %s", err)
	}

	server = gin.Default()
}

func main() {
	defer mongoclient.Disconnect(ctx)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:4200"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")

	server.Use(cors.New(corsConfig))
	server.Use(requestID())

	router := server.Group("/api")
	router.GET("/healthchecker", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Service is running"})
	})

	AuthRouteHandler.AuthRoute(router)
	UserRouteHandler.UserRoute(router)
	GuesthouseRouteHandler.GuesthouseRoute(router)
	ReservationRouteHandler.ReservationRoute(router)
	MessageRouteHandler.MessageRoute(router)
	AdminRouteHandler.AdminRoute(router)
	RecommendationRouteHandler.RecommendationRoute(router)

	if err := server.Run(":" + cfg.Port); err != nil {
		fmt.Println(err)
		return
	}
}

// requestID tags every request so log lines can be correlated.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set("requestID", id)
		ctx.Writer.Header().Set("X-Request-Id", id)
		ctx.Next()
	}
}

func NewTracerProvider(serviceName, collectorEndpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(collectorEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("unable to initialize exporter due: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.DeploymentEnvironmentKey.String("development"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
