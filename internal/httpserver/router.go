package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"warung/internal/config"
	"warung/internal/domain"
	dishrepo "warung/internal/repository/dish"
	"warung/internal/service/auth"
	categorysvc "warung/internal/service/category"
	discountsvc "warung/internal/service/discount"
	dishsvc "warung/internal/service/dish"
	ordersvc "warung/internal/service/order"
	taxsvc "warung/internal/service/tax"
	variantsvc "warung/internal/service/variant"
)

// Service interfaces consumed by the handlers. Defined here so tests can
// substitute stubs.

type CategoryService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, in categorysvc.Input) (*domain.Category, error)
	Update(ctx context.Context, id int64, in categorysvc.Input) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type DishService interface {
	List(ctx context.Context, f dishrepo.ListFilter) ([]domain.Dish, error)
	Count(ctx context.Context, f dishrepo.ListFilter) (int, error)
	Get(ctx context.Context, id int64) (*domain.Dish, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Dish, error)
	Create(ctx context.Context, in dishsvc.Input) (*domain.Dish, error)
	Update(ctx context.Context, id int64, in dishsvc.Input) (*domain.Dish, error)
	Delete(ctx context.Context, id int64) error
}

type VariantService interface {
	ListByDish(ctx context.Context, dishID int64) ([]domain.DishVariant, error)
	Get(ctx context.Context, id int64) (*domain.DishVariant, error)
	Create(ctx context.Context, in variantsvc.Input) (*domain.DishVariant, error)
	Update(ctx context.Context, id int64, in variantsvc.Input) (*domain.DishVariant, error)
	Delete(ctx context.Context, id int64) error
}

type TaxService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Tax, error)
	Get(ctx context.Context, id int64) (*domain.Tax, error)
	Create(ctx context.Context, in taxsvc.Input) (*domain.Tax, error)
	Update(ctx context.Context, id int64, in taxsvc.Input) (*domain.Tax, error)
	Delete(ctx context.Context, id int64) error
}

type DiscountService interface {
	List(ctx context.Context) ([]domain.Discount, error)
	ListActive(ctx context.Context) ([]domain.Discount, error)
	Get(ctx context.Context, id int64) (*domain.Discount, error)
	Create(ctx context.Context, in discountsvc.Input) (*domain.Discount, error)
	Update(ctx context.Context, id int64, in discountsvc.Input) (*domain.Discount, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
	SessionTTLSeconds() int
}

type CartService interface {
	View(ctx context.Context, token string) (domain.CartView, error)
	Add(ctx context.Context, token, slug string, quantity int, variants map[string]string) (string, error)
	UpdateQuantity(ctx context.Context, token string, index, quantity int) (string, error)
	Remove(ctx context.Context, token string, index int) (string, error)
	Valid(token string) bool
	Clear() string
	MaxAge() time.Duration
}

type OrderService interface {
	Checkout(ctx context.Context, cartToken string, userID *string, in ordersvc.CheckoutInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

// Deps bundles the services wired into the router.
type Deps struct {
	CategorySvc CategoryService
	DishSvc     DishService
	VariantSvc  VariantService
	TaxSvc      TaxService
	DiscountSvc DiscountService
	AuthSvc     AuthService
	CartSvc     CartService
	OrderSvc    OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, cfg config.Config) (*gin.Engine, error) {
	if deps.CartSvc == nil {
		return nil, errors.New("cart service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, cfg: cfg, logger: logger}

	api := router.Group("/api")
	{
		api.GET("/categories", h.listCategories)
		api.GET("/dishes", h.listDishes)
		api.GET("/dishes/:slug", h.getDish)
		api.GET("/dishes/:slug/variants", h.listDishVariants)
		api.GET("/discounts/active", h.listActiveDiscounts)
		api.GET("/taxes/active", h.listActiveTaxes)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.PATCH("/cart/items/:index", h.updateCartItem)
		api.DELETE("/cart/items/:index", h.removeCartItem)
		api.DELETE("/cart", h.clearCart)

		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/auth/logout", h.logout)
		api.GET("/auth/me", h.requireAuth, h.me)

		api.POST("/checkout", h.optionalAuth, h.checkout)
		api.GET("/orders", h.requireAuth, h.listMyOrders)
		api.GET("/orders/:id", h.requireAuth, h.getOrder)
	}

	admin := api.Group("/admin", h.requireAuth, h.requireRole(domain.RoleAdmin))
	{
		admin.GET("/categories", h.adminListCategories)
		admin.POST("/categories", h.createCategory)
		admin.PUT("/categories/:id", h.updateCategory)
		admin.DELETE("/categories/:id", h.deleteCategory)

		admin.GET("/dishes", h.adminListDishes)
		admin.POST("/dishes", h.createDish)
		admin.PUT("/dishes/:id", h.updateDish)
		admin.DELETE("/dishes/:id", h.deleteDish)

		admin.GET("/dish-variants/:id", h.getVariant)
		admin.POST("/dish-variants", h.createVariant)
		admin.PUT("/dish-variants/:id", h.updateVariant)
		admin.DELETE("/dish-variants/:id", h.deleteVariant)

		admin.GET("/taxes", h.adminListTaxes)
		admin.POST("/taxes", h.createTax)
		admin.PUT("/taxes/:id", h.updateTax)
		admin.DELETE("/taxes/:id", h.deleteTax)

		admin.GET("/discounts", h.adminListDiscounts)
		admin.POST("/discounts", h.createDiscount)
		admin.PUT("/discounts/:id", h.updateDiscount)
		admin.DELETE("/discounts/:id", h.deleteDiscount)

		admin.GET("/orders", h.adminListOrders)
		admin.PATCH("/orders/:id/status", h.updateOrderStatus)
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	cfg    config.Config
	logger *log.Logger
}
