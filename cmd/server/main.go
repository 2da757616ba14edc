package main

import (
	"context"
	"os"
	"strconv"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/adapters/repository/localstore"
	"github.com/arnelectric/storefront-backend/internal/cache"
	"github.com/arnelectric/storefront-backend/internal/database"
	"github.com/arnelectric/storefront-backend/internal/handlers"
	"github.com/arnelectric/storefront-backend/internal/notify"
	cartsvc "github.com/arnelectric/storefront-backend/internal/services/cart"
	ordersvc "github.com/arnelectric/storefront-backend/internal/services/orders"
	returnsvc "github.com/arnelectric/storefront-backend/internal/services/returns"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()
	stores, err := buildStores(ctx)
	if err != nil {
		logrus.Fatalf("Store setup failed: %v", err)
	}

	notifier := buildNotifier()

	cartService := cartsvc.NewService(stores.carts, stores.products, stores.orders, notifier)
	orderService := ordersvc.NewService(stores.orders, stores.returns, stores.products, notifier)
	returnService := returnsvc.NewService(stores.returns, stores.orders, notifier)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	handlers.SetupRoutes(router, handlers.Deps{
		Users:         stores.users,
		Products:      stores.products,
		Carts:         cartService,
		Orders:        orderService,
		Returns:       returnService,
		OrderWatcher:  stores.orderWatcher,
		ReturnWatcher: stores.returnWatcher,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Server listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}

type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	returns  repository.ReturnRepository

	orderWatcher  repository.OrderWatcher
	returnWatcher repository.ReturnWatcher
}

// buildStores selects the persistence backend. STORE_BACKEND=local keeps
// everything in JSON files under STORE_DIR; anything else uses MongoDB.
func buildStores(ctx context.Context) (stores, error) {
	if os.Getenv("STORE_BACKEND") == "local" {
		dir := os.Getenv("STORE_DIR")
		if dir == "" {
			dir = "data"
		}
		store, err := localstore.New(dir)
		if err != nil {
			return stores{}, err
		}
		logrus.Infof("Using local JSON store in %s", dir)
		s := stores{
			users:    localstore.NewUserStore(store),
			products: localstore.NewProductStore(store),
			carts:    localstore.NewCartStore(store),
			orders:   localstore.NewOrderStore(store),
			returns:  localstore.NewReturnStore(store),
		}
		if w, ok := s.orders.(repository.OrderWatcher); ok {
			s.orderWatcher = w
		}
		if w, ok := s.returns.(repository.ReturnWatcher); ok {
			s.returnWatcher = w
		}
		return s, nil
	}

	db, err := database.ConnectMongo(ctx)
	if err != nil {
		return stores{}, err
	}

	products := repository.NewProductRepository(db)
	if redisClient, err := cache.Connect(ctx); err != nil {
		logrus.Warnf("Redis unavailable, product cache disabled: %v", err)
	} else if redisClient != nil {
		products = cache.NewCachedProductRepository(products, redisClient)
	}

	orderRepo := repository.NewOrderRepository(db)
	returnRepo := repository.NewReturnRepository(db)

	s := stores{
		users:    repository.NewUserRepository(db),
		products: products,
		carts:    repository.NewCartRepository(db),
		orders:   orderRepo,
		returns:  returnRepo,
	}
	if w, ok := orderRepo.(repository.OrderWatcher); ok {
		s.orderWatcher = w
	}
	if w, ok := returnRepo.(repository.ReturnWatcher); ok {
		s.returnWatcher = w
	}
	return s, nil
}

func buildNotifier() notify.Notifier {
	shopPhone := os.Getenv("SHOP_WHATSAPP_PHONE")
	if shopPhone == "" {
		shopPhone = "919876543210"
	}

	var mail *notify.MailSender
	if host := os.Getenv("SMTP_HOST"); host != "" {
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		mail = notify.NewMailSender(
			host,
			port,
			os.Getenv("SMTP_USERNAME"),
			os.Getenv("SMTP_PASSWORD"),
			os.Getenv("SMTP_FROM"),
		)
		logrus.Info("Email notifications enabled")
	}

	return notify.NewRelay(shopPhone, mail)
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
