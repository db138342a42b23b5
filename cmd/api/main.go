package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-storefront/internal/common/api"
	"go-storefront/internal/config"
	"go-storefront/internal/database"
	"go-storefront/internal/features/audit"
	"go-storefront/internal/features/auth"
	"go-storefront/internal/features/cart"
	"go-storefront/internal/features/category"
	"go-storefront/internal/features/file"
	"go-storefront/internal/features/nav"
	"go-storefront/internal/features/notification"
	"go-storefront/internal/features/order"
	"go-storefront/internal/features/permission"
	"go-storefront/internal/features/product"
	"go-storefront/internal/features/role"
	"go-storefront/internal/features/store"
	"go-storefront/internal/features/system"
	"go-storefront/internal/features/user"
	"go-storefront/internal/jobs"
	"go-storefront/internal/logger"
	"go-storefront/internal/middleware"
	"go-storefront/internal/warehouse"
	"go-storefront/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates the Fiber app with the shared error handler, CORS,
// and static serving for uploaded files.
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())
	app.Static(cfg.FSURL, cfg.FSPath)

	return app
}

// AsRoute tags a constructor so Fx collects it into the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every collected route module.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route modules\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer runs Fiber under the Fx lifecycle.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes creates the unique indexes the repositories rely on.
func InitializeIndexes(
	lc fx.Lifecycle,
	users user.UserRepository,
	roles role.RoleRepository,
	perms permission.PermissionRepository,
	categories category.CategoryRepository,
	products product.ProductRepository,
	stores store.StoreRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				ensure := map[string]func(context.Context) error{
					"users":      users.EnsureIndexes,
					"roles":      roles.EnsureIndexes,
					"permission": perms.EnsureIndexes,
					"categories": categories.EnsureIndexes,
					"products":   products.EnsureIndexes,
					"stores":     stores.EnsureIndexes,
				}
				for name, fn := range ensure {
					if err := fn(ctx); err != nil {
						log.Printf("Failed to ensure %s indexes: %v", name, err)
					}
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			audit.NewAuditRepository,
			user.NewUserRepository,
			role.NewRoleRepository,
			permission.NewPermissionRepository,
			permission.NewRolePermissionRepository,
			category.NewCategoryRepository,
			product.NewProductRepository,
			store.NewStoreRepository,
			order.NewOrderRepository,
			cart.NewCartRepository,
			cart.NewPricingRuleRepository,
			file.NewFileRepository,

			// Services
			audit.NewAuditService,
			user.NewUserService,
			auth.NewAuthService,
			role.NewRoleService,
			permission.NewPermissionService,
			category.NewCategoryService,
			product.NewProductService,
			store.NewStoreService,
			order.NewOrderService,
			cart.NewCartService,
			file.NewFileService,
			notification.NewHub,
			warehouse.NewExporter,
			jobs.NewScheduler,

			// Interface adapters for the session gate
			func(s user.UserService) middleware.UserFinder { return s },
			func(s permission.PermissionService) middleware.PermissionResolver { return s },
			func(cfg *config.Config, users middleware.UserFinder, resolver middleware.PermissionResolver) *middleware.SessionGate {
				return middleware.NewSessionGate(cfg.SkipAuth, users, resolver)
			},

			// Controllers
			auth.NewAuthController,
			user.NewUserController,
			role.NewRoleController,
			permission.NewPermissionController,
			category.NewCategoryController,
			product.NewProductController,
			store.NewStoreController,
			order.NewOrderController,
			cart.NewCartController,
			file.NewFileController,
			nav.NewNavController,
			notification.NewNotificationController,

			// Route modules
			AsRoute(auth.NewAuthAPI),
			AsRoute(user.NewUserAPI),
			AsRoute(role.NewRoleAPI),
			AsRoute(nav.NewNavAPI),
			AsRoute(category.NewCategoryAPI),
			AsRoute(product.NewProductAPI),
			AsRoute(store.NewStoreAPI),
			AsRoute(order.NewOrderAPI),
			AsRoute(cart.NewCartAPI),
			AsRoute(file.NewFileAPI),
			AsRoute(notification.NewNotificationAPI),
			AsRoute(system.NewSystemAPI),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler *jobs.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start()
					},
					OnStop: func(ctx context.Context) error {
						scheduler.Stop()
						return nil
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
