// Package router assembles the gin engine and its route table.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/handler"
	"github.com/noah-isme/course-advising-api/internal/middleware"
	"github.com/noah-isme/course-advising-api/internal/permission"
	"github.com/noah-isme/course-advising-api/internal/service"
	"github.com/noah-isme/course-advising-api/internal/session"
	"github.com/noah-isme/course-advising-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-advising-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-advising-api/pkg/middleware/requestid"
)

// Options carries everything the route table needs.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool

	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Verifier session.Verifier
	Users    middleware.UserResolver

	UserHandler       *handler.UserHandler
	CategoryHandler   *handler.CategoryHandler
	SemesterHandler   *handler.SemesterHandler
	CourseHandler     *handler.CourseHandler
	UserCourseHandler *handler.UserCourseHandler
	MetricsHandler    *handler.MetricsHandler
}

// New builds the engine. Everything outside the public health checks, /metrics and
// /docs requires a verified session; all routes except registration and
// /users/me also require a registered, enabled user.
func New(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics, "/health", "/ready", "/metrics"))

	if opts.MetricsHandler != nil {
		r.GET("/health", opts.MetricsHandler.Health)
		r.GET("/ready", opts.MetricsHandler.Ready)
		r.GET("/metrics", opts.MetricsHandler.Prometheus)
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.Session(opts.Verifier))

	// Session only: the caller may not be registered or enabled yet.
	api.POST("/users", opts.UserHandler.Register)
	api.GET("/users/me", opts.UserHandler.Me)

	authed := api.Group("")
	authed.Use(middleware.CurrentUser(opts.Users))

	director := middleware.RequireLevel(permission.LevelDirector)
	admin := middleware.RequireLevel(permission.LevelAdmin)

	users := authed.Group("/users")
	{
		users.GET("", director, opts.UserHandler.List)
		users.GET("/:id", opts.UserHandler.Get)
		users.PUT("/:id", opts.UserHandler.Update)
		users.DELETE("/:id", admin, opts.UserHandler.Delete)
		users.GET("/:id/schedule", opts.UserHandler.Schedule)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", opts.CategoryHandler.List)
		categories.GET("/:id", opts.CategoryHandler.Get)
		categories.POST("", director, opts.CategoryHandler.Create)
		categories.PUT("/:id", director, opts.CategoryHandler.Update)
		categories.DELETE("/:id", director, opts.CategoryHandler.Delete)
	}

	semesters := authed.Group("/semesters")
	{
		semesters.GET("", opts.SemesterHandler.List)
		semesters.GET("/:id", opts.SemesterHandler.Get)
		semesters.POST("", director, opts.SemesterHandler.Create)
		semesters.PUT("/:id", director, opts.SemesterHandler.Update)
		semesters.DELETE("/:id", director, opts.SemesterHandler.Delete)
	}

	courses := authed.Group("/courses")
	{
		courses.GET("", opts.CourseHandler.List)
		courses.GET("/:id", opts.CourseHandler.Get)
		courses.POST("", director, opts.CourseHandler.Create)
		courses.PUT("/:id", director, opts.CourseHandler.Update)
		courses.DELETE("/:id", director, opts.CourseHandler.Delete)
	}

	userCourse := authed.Group("/userCourse")
	{
		userCourse.GET("", opts.UserCourseHandler.List)
		userCourse.POST("", opts.UserCourseHandler.Create)
		userCourse.PUT("", opts.UserCourseHandler.Update)
		userCourse.DELETE("", opts.UserCourseHandler.Delete)
	}

	if opts.MetricsHandler != nil {
		authed.GET("/metrics/summary", admin, opts.MetricsHandler.Summary)
	}

	return r
}
