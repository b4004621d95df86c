// main.go
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-meetups/controllers"
	"go-meetups/logger"
	"go-meetups/meetup"
	"go-meetups/middleware"
	"go-meetups/services"
	"go-meetups/storage/sqlite"
)

func main() {
	// Local development reads settings from a .env file; in production
	// the variables come from the environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("No .env file found, using process environment")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	applicationURL := envOr("APPLICATION_URL", "http://localhost:8080")
	dbPath := envOr("DATABASE_PATH", "./data/meetups.db")

	store, err := sqlite.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	oauthConf := meetup.OAuthConfig(
		os.Getenv("MEETUP_CLIENT_ID"),
		os.Getenv("MEETUP_CLIENT_SECRET"),
		applicationURL+"/login/meetup/return",
	)

	var metrics services.SyncMetrics
	if os.Getenv("CLOUDWATCH_METRICS") == "true" {
		metrics = services.NewCloudWatchMetrics()
	}

	controllers.SetConfig(controllers.Config{
		ApplicationURL:   applicationURL,
		APIBaseURL:       envOr("MEETUP_API_URL", meetup.DefaultBaseURL),
		OAuth:            oauthConf,
		Store:            store,
		Metrics:          metrics,
		MaximumStaleness: time.Hour,
	})

	// Session store
	sessionSecret := envOr("SESSION_SECRET", "secret")
	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("meetupsession", cookieStore))

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	// Public routes
	router.GET("/health", controllers.Health)
	router.GET("/", controllers.Index)
	router.GET("/have", controllers.Have)
	router.GET("/need", controllers.Need)
	router.GET("/login", controllers.Login)
	router.GET("/login/meetup/return", controllers.MeetupReturn)
	router.GET("/logout", controllers.Logout)
	router.GET("/clear", controllers.Clear)
	router.GET("/search", controllers.Search)
	router.POST("/search", controllers.Search)

	// Member routes
	member := router.Group("/", middleware.AuthRequired)
	{
		member.GET("/profile", controllers.Profile)
		member.POST("/profile", controllers.Profile)
		member.GET("/venue/:id/edit", controllers.VenueEdit)
		member.POST("/venue/:id/edit", controllers.VenueEdit)
		member.GET("/venue/:id/claim", controllers.VenueClaim)
		member.POST("/venue/:id/claim", controllers.VenueClaim)
		member.GET("/venue/:id/qrcode", controllers.VenueQRCode)
		member.GET("/request/:eventID", controllers.RequestForSpace)
		member.POST("/request/:eventID", controllers.RequestForSpace)
	}

	// Admin routes
	router.GET("/admin/login", controllers.AdminLoginPage)
	router.POST("/admin/login", controllers.AdminLogin)
	admin := router.Group("/admin", middleware.AdminRequired())
	{
		admin.GET("", controllers.AdminDashboard)
	}

	if err := router.Run(":" + envOr("PORT", "8080")); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
