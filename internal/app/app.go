package app

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/geo"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/messaging/kafka/producer"
)

// EventsTopic carries every storefront domain event.
const EventsTopic = "shop.events"

// Shrigonda dispatch center, orders ship from here.
var defaultSource = geo.Coord{Lat: 18.6186, Lng: 74.6975}

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	// 1. Infrastructure
	rdb, err := connectRedisWithRetry(envOr("REDIS_ADDR", "localhost:6379"), 5, logger)
	if err != nil {
		return err
	}

	// Kafka is optional: without a broker every event becomes a no-op.
	var publisher events.Publisher = events.NewNopPublisher()
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer, err := connectKafkaWithRetry(broker, EventsTopic, 5, logger)
		if err != nil {
			return err
		}
		publisher = producer.New(writer)
	}

	// 2. Upstream collaborators
	source := defaultSource
	if lat, err := strconv.ParseFloat(os.Getenv("SOURCE_LAT"), 64); err == nil {
		if lng, err := strconv.ParseFloat(os.Getenv("SOURCE_LNG"), 64); err == nil {
			source = geo.Coord{Lat: lat, Lng: lng}
		}
	}

	// 3. Register modules and routes
	registerModules(router, moduleDeps{
		rdb:       rdb,
		publisher: publisher,
		logger:    logger,
		source:    source,

		orderAPIURL:   envOr("ORDERS_API_URL", "http://localhost:5000"),
		productAPIURL: envOr("PRODUCTS_API_URL", "http://localhost:5000"),
		osrmURL:       envOr("OSRM_BASE_URL", "https://router.project-osrm.org"),
		nominatimURL:  envOr("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		pincodePrefix: envOr("PINCODE_PREFIX", "4"),
		pickupPincode: envOr("PICKUP_PINCODE", "411001"),

		shiprocketURL:      os.Getenv("SHIPROCKET_API_URL"),
		shiprocketEmail:    os.Getenv("SHIPROCKET_EMAIL"),
		shiprocketPassword: os.Getenv("SHIPROCKET_PASSWORD"),
	})

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
