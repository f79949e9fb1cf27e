package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/cart"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/checkout"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/geo"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/product"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/shipping"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/tracking"
)

type moduleDeps struct {
	rdb       *redis.Client
	publisher events.Publisher
	logger    *zap.Logger
	source    geo.Coord

	orderAPIURL   string
	productAPIURL string
	osrmURL       string
	nominatimURL  string

	pincodePrefix string
	pickupPincode string

	shiprocketURL      string
	shiprocketEmail    string
	shiprocketPassword string
}

func registerModules(router *gin.Engine, deps moduleDeps) {
	// --- Collaborators ---
	orderClient := order.NewClient(deps.orderAPIURL, deps.logger)
	osrmRouter := geo.NewOSRMRouter(deps.osrmURL, deps.logger)
	geocoder := geo.NewGeocoder(deps.nominatimURL, deps.logger)

	courier := shipping.NewAllowAll()
	if deps.shiprocketURL != "" && deps.shiprocketEmail != "" {
		courier = shipping.NewShiprocketClient(shipping.Config{
			BaseURL:  deps.shiprocketURL,
			Email:    deps.shiprocketEmail,
			Password: deps.shiprocketPassword,
		}, deps.logger)
	}

	// --- Repositories ---
	cartRepo := cart.NewRepository(deps.rdb)

	// --- Services ---
	cartService := cart.NewService(cart.Deps{
		Repo:      cartRepo,
		Publisher: deps.publisher,
		Logger:    deps.logger,
	})
	productService := product.NewService(product.Deps{
		BaseURL: deps.productAPIURL,
		Redis:   deps.rdb,
		Logger:  deps.logger,
	})
	checkoutService := checkout.NewService(checkout.Deps{
		CartSvc:       cartService,
		Orders:        orderClient,
		Courier:       courier,
		Publisher:     deps.publisher,
		Logger:        deps.logger,
		PincodePrefix: deps.pincodePrefix,
		PickupPincode: deps.pickupPincode,
	})
	trackingCoordinator := tracking.NewCoordinator(tracking.Deps{
		Orders:    orderClient,
		Router:    osrmRouter,
		Locator:   geo.NewDeniedLocator(),
		Geocoder:  geocoder,
		Publisher: deps.publisher,
		Logger:    deps.logger,
		Source:    deps.source,
	})

	// --- Handlers ---
	cartHandler := cart.NewHandler(cartService)
	productHandler := product.NewHandler(productService, deps.logger)
	checkoutHandler := checkout.NewHandler(checkoutService, deps.rdb, deps.logger)
	trackingHandler := tracking.NewHandler(trackingCoordinator, deps.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	{
		cart.RegisterRoutes(api, cartHandler)
		product.RegisterRoutes(api, productHandler)
		checkout.RegisterRoutes(api, checkoutHandler, deps.rdb)
		tracking.RegisterRoutes(api, trackingHandler)
	}
}
