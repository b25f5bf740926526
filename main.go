package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
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

	"hotel-booking-server/config"
	"hotel-booking-server/handlers"
	"hotel-booking-server/routes"
	"hotel-booking-server/scheduler"
	"hotel-booking-server/services"
)

var (
	server      *gin.Engine
	ctx         context.Context
	mongoclient *mongo.Client
	cfg         *config.Config
	log         *logrus.Logger

	roomsCollection    *mongo.Collection
	bookingsCollection *mongo.Collection
	reviewsCollection  *mongo.Collection

	authVerifier *handlers.AuthVerifier

	roomService services.RoomService
	RoomHandler handlers.RoomHandler

	bookingService services.BookingService
	BookingHandler handlers.BookingHandler

	reviewService services.ReviewService
	ReviewHandler handlers.ReviewHandler

	RoomRouteHandler    routes.RoomRouteHandler
	BookingRouteHandler routes.BookingRouteHandler
	ReviewRouteHandler  routes.ReviewRouteHandler
)

func init() {
	ctx = context.TODO()
	cfg = config.LoadConfig()

	log = logrus.New()
	log.SetLevel(logrus.DebugLevel)
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:  logFile,
			MaxSize:   1,
			LocalTime: true,
		})
	}

	mongoconn := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, mongoconn)
	if err != nil {
		panic(err)
	}
	mongoclient = client

	if err := mongoclient.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}
	log.Info("MongoDB successfully connected...")

	tracerProvider, err := NewTracerProvider(cfg.ServiceName, cfg.JaegerAddress)
	if err != nil {
		log.Fatalf("JaegerTraceProvider failed to Initialize. Error :%s", err)
	}
	tracer := tracerProvider.Tracer(cfg.ServiceName)

	// Collections
	roomsCollection = mongoclient.Database("hotel-server").Collection("rooms")
	bookingsCollection = mongoclient.Database("hotel-server").Collection("bookings")
	reviewsCollection = mongoclient.Database("hotel-server").Collection("reviews")

	authVerifier = handlers.NewAuthVerifier(cfg, tracer, log)

	roomService = services.NewRoomServiceImpl(roomsCollection, bookingsCollection, reviewsCollection, ctx, tracer)
	RoomHandler = handlers.NewRoomHandler(roomService, authVerifier, tracer, log)
	bookingService = services.NewBookingServiceImpl(bookingsCollection, ctx, tracer)
	BookingHandler = handlers.NewBookingHandler(bookingService, roomService, tracer, log)
	reviewService = services.NewReviewServiceImpl(reviewsCollection, ctx, tracer)
	ReviewHandler = handlers.NewReviewHandler(reviewService, tracer, log)

	RoomRouteHandler = routes.NewRoomRouteHandler(RoomHandler, authVerifier)
	BookingRouteHandler = routes.NewBookingRouteHandler(BookingHandler, authVerifier)
	ReviewRouteHandler = routes.NewReviewRouteHandler(ReviewHandler, authVerifier)

	server = gin.Default()
}

func main() {
	defer mongoclient.Disconnect(ctx)

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigin != "" {
		corsConfig.AllowOrigins = []string{cfg.AllowedOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = cfg.AllowedOrigin != ""
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")

	server.Use(cors.New(corsConfig))

	server.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Hotel Booking running")
	})

	api := server.Group("/api")
	api.GET("/healthchecker", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Hotel Booking running"})
	})

	router := server.Group("")
	RoomRouteHandler.RoomRoute(router)
	BookingRouteHandler.BookingRoute(router)
	ReviewRouteHandler.ReviewRoute(router)

	scheduler.StartExpirySweep(bookingService, roomService, log)

	err := server.Run(":" + cfg.Port)
	if err != nil {
		fmt.Println(err)
		return
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
