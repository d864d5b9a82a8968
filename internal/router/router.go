package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	adminh "github.com/vaxtrack/booking-api/internal/handler/admin"
	authh "github.com/vaxtrack/booking-api/internal/handler/auth"
	bookingh "github.com/vaxtrack/booking-api/internal/handler/booking"
	catalogh "github.com/vaxtrack/booking-api/internal/handler/catalog"
	healthh "github.com/vaxtrack/booking-api/internal/handler/health"
	insuranceh "github.com/vaxtrack/booking-api/internal/handler/insurance"
	inventoryh "github.com/vaxtrack/booking-api/internal/handler/inventory"
	notificationh "github.com/vaxtrack/booking-api/internal/handler/notification"
	prometheush "github.com/vaxtrack/booking-api/internal/handler/prometheus"
	reviewh "github.com/vaxtrack/booking-api/internal/handler/review"
	uploadh "github.com/vaxtrack/booking-api/internal/handler/upload"
	"github.com/vaxtrack/booking-api/internal/middleware"
	"github.com/vaxtrack/booking-api/internal/model"
)

type Handlers struct {
	Auth         *authh.Handler
	Catalog      *catalogh.Handler
	Booking      *bookingh.Handler
	Inventory    *inventoryh.Handler
	Notification *notificationh.Handler
	Review       *reviewh.Handler
	Insurance    *insuranceh.Handler
	Admin        *adminh.Handler
	Upload       *uploadh.Handler
	Health       *healthh.Handler
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
	UploadDir  string
}

type Router struct {
	engine *gin.Engine
}

func New(auth *middleware.AuthMiddleware, h Handlers, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := prometheush.New()
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(cfg.CORSConfig),
		limiter.RateLimit(),
		metrics.Middleware(),
	)

	engine.GET("/metrics", metrics.Handler())
	h.Health.RegisterRoutes(engine.Group(""))

	engine.Static("/uploads", cfg.UploadDir)

	// Public
	engine.POST("/register", h.Auth.Register)
	engine.POST("/login", h.Auth.Login)
	engine.GET("/hospitals", h.Catalog.ListHospitals)
	engine.GET("/vaccine-info", h.Catalog.VaccineInformation)

	// Authenticated, any role
	user := engine.Group("", auth.Authenticate())
	{
		user.GET("/logout", h.Auth.Logout)
		user.GET("/profile", h.Auth.Profile)
		user.POST("/update-profile", h.Auth.UpdateProfile)
		user.POST("/upload", h.Upload.Upload)

		user.GET("/vaccines", h.Catalog.ListVaccines)
		user.GET("/vaccines/:id/hospitals", h.Catalog.HospitalsForVaccine)
		user.GET("/hospitals/:id/doctors", h.Catalog.DoctorsForHospital)
		user.GET("/hospitals/:id/doctors/:doctorId", h.Catalog.HospitalInventory)

		user.POST("/create-checkout-session", h.Booking.CreateCheckoutSession)
		user.GET("/success", h.Booking.Success)
		user.GET("/payment-failure", h.Booking.PaymentFailure)
		user.GET("/review", h.Booking.ReviewPrompt)
		user.GET("/my-appointments", h.Booking.MyAppointments)
		user.POST("/cancel-appointment/:id", h.Booking.Cancel)
		user.POST("/reschedule-appointment", h.Booking.Reschedule)

		user.GET("/notifications", h.Notification.List)
		user.POST("/submit-review", h.Review.Submit)

		user.GET("/insurance", h.Insurance.List)
		user.POST("/add-insurance", h.Insurance.Add)
		user.GET("/insurance/:id", h.Insurance.Get)
		user.POST("/insurance/edit/:id", h.Insurance.Update)
		user.POST("/insurance/delete/:id", h.Insurance.Delete)
	}

	// Hospital admin
	hospitalAdmin := engine.Group("", auth.Authenticate(), auth.RequireRole(model.RoleHospitalAdmin))
	{
		hospitalAdmin.GET("/admin-dashboard", h.Inventory.Dashboard)
		hospitalAdmin.GET("/admin/inventory", h.Inventory.View)
		hospitalAdmin.POST("/admin/inventory/add", h.Inventory.Add)
		hospitalAdmin.POST("/admin/inventory/update", h.Inventory.UpdateStock)
		hospitalAdmin.POST("/admin/inventory/remove", h.Inventory.Remove)
		hospitalAdmin.GET("/admin/inventory/expired", h.Inventory.Expired)
		hospitalAdmin.GET("/admin/reviews", h.Review.ListForAdmin)
	}

	// Site admin
	siteAdmin := engine.Group("/admin", auth.Authenticate(), auth.RequireRole(model.RoleSiteAdmin))
	{
		siteAdmin.GET("/dashboard", h.Admin.Dashboard)
		siteAdmin.POST("/users/delete/:id", h.Admin.DeleteUser)
		siteAdmin.POST("/hospitals/delete/:id", h.Admin.DeleteHospital)
		siteAdmin.POST("/vaccines/delete/:id", h.Admin.DeleteVaccine)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
