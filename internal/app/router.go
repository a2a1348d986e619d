package app

import (
	"lexi_backend/docs"
	"lexi_backend/internal/config"
	"lexi_backend/internal/middleware"
	"lexi_backend/internal/model"
	"lexi_backend/pkg/monitoring"
	"lexi_backend/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPageRoutes(router, c)
	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)
		authGroup.GET("/dashboard", c.dashboard.GetDashboard)

		authGroup.GET("/quiz/start", c.quizPlay.Start)
		authGroup.POST("/quiz/submit", c.quizPlay.Submit)
	}

	a.registerAdminRoutes(router, c, cfg)
}

// page routes; /admin and /dashboard are protected by the global route guard
func (a *App) registerPageRoutes(router *gin.Engine, c *controllers) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/leaderboard")
	})
	router.GET("/login", c.page.Login)
	router.GET("/leaderboard", c.page.Leaderboard)
	router.GET("/dashboard", c.page.Dashboard)
	router.GET("/admin", c.page.Admin)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// login and register share one stricter per-IP budget
	credentials := security.RateLimiter(cfg.RateLimit.LoginMaxRequests, cfg.RateLimit.Window())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/register", credentials, c.auth.Register)
		public.POST("/auth/login", credentials, c.auth.Login)
		public.POST("/auth/logout", c.auth.Logout)
		public.GET("/auth/logout", c.auth.Logout)

		public.GET("/categories", c.category.List)
		public.GET("/materials", c.content.ListMaterials)
		public.GET("/materials/:slug", c.content.GetMaterial)
		public.GET("/quizzes", middleware.TryAuthMiddleware(cfg), c.content.ListQuizzes)
		public.GET("/leaderboard", c.leaderboard.Top)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/dashboard", c.dashboard.GetAdminDashboard)

		admin.GET("/categories", c.category.List)
		admin.POST("/categories", c.category.Create)
		admin.PUT("/categories/:id", c.category.Update)
		admin.DELETE("/categories/:id", c.category.Delete)

		admin.GET("/materials", c.material.List)
		admin.GET("/materials/:id", c.material.Get)
		admin.POST("/materials", c.material.Create)
		admin.PATCH("/materials/:id", c.material.Update)
		admin.DELETE("/materials/:id", c.material.Delete)

		admin.GET("/quizzes", c.quiz.List)
		admin.GET("/quizzes/:id", c.quiz.Get)
		admin.POST("/quizzes", c.quiz.Create)
		admin.PUT("/quizzes/:id", c.quiz.Update)
		admin.DELETE("/quizzes/:id", c.quiz.Delete)
	}
}
