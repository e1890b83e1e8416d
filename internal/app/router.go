package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/docs"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/config"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/middleware"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// the materials catalog is browsable without an account
		public.GET("/materials", middleware.TryAuthMiddleware(a.Config), c.material.List)
		public.GET("/materials/:id", middleware.TryAuthMiddleware(a.Config), c.material.Get)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/auth/password", c.auth.ChangePassword)
	rg.GET("/auth/login-history", c.auth.LoginHistory)
	rg.PUT("/users/profile", c.user.UpdateProfile)

	rg.GET("/materials/progress", c.material.ReadProgress)
	rg.POST("/materials/:id/read", c.material.MarkRead)

	rg.GET("/exams", c.exam.List)
	rg.GET("/exams/:id", c.exam.Get)

	rg.POST("/attempts", c.attempt.Submit)
	rg.GET("/attempts/my", c.attempt.ListMine)
	rg.GET("/attempts/exam/:examId", c.attempt.GetOwn)

	rg.GET("/scores/my", c.grading.MyScores)
	rg.GET("/scores/:examId", c.grading.ExamScores)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.GET("/users/:id", c.user.Get)
		admin.PUT("/users/:id/role", c.user.SetRole)
		admin.PUT("/users/:id/active", c.user.SetActive)
		admin.GET("/audit-logs", c.user.AuditLogs)

		admin.POST("/materials", c.material.Create)
		admin.PUT("/materials/:id", c.material.Update)
		admin.DELETE("/materials/:id", c.material.Delete)

		admin.POST("/exams", c.exam.Create)
		admin.POST("/exams/pdf", c.exam.CreatePDF)
		admin.PUT("/exams/:id", c.exam.Update)
		admin.DELETE("/exams/:id", c.exam.Delete)
		admin.POST("/exams/:id/questions", c.exam.AddQuestion)
		admin.PUT("/exams/:id/questions/:questionId", c.exam.UpdateQuestion)
		admin.DELETE("/exams/:id/questions/:questionId", c.exam.DeleteQuestion)

		admin.GET("/attempts/exam/:examId", c.attempt.ListByExam)
		admin.DELETE("/attempts/:id", c.attempt.Delete)

		admin.POST("/grading/auto", c.grading.GradeAttempt)
		admin.POST("/grading/bulk", c.grading.GradeExam)
		admin.GET("/scores/:examId", c.grading.ListScores)

		admin.GET("/analytics/overview", c.analytics.Overview)
		admin.GET("/analytics/top-students", c.analytics.TopStudents)
		admin.GET("/analytics/exams/:examId", c.analytics.ExamStatistics)
		admin.GET("/analytics/exams/:examId/questions", c.analytics.QuestionDifficulty)
		admin.GET("/analytics/students/:userId", c.analytics.StudentPerformance)

		admin.GET("/reports/exams/:examId/csv", c.report.ExamResultsCSV)
		admin.GET("/reports/students/:userId/csv", c.report.StudentHistoryCSV)
	}
}
