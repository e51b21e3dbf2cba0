package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-advising-api/api/swagger"
	"github.com/noah-isme/course-advising-api/internal/handler"
	"github.com/noah-isme/course-advising-api/internal/repository"
	"github.com/noah-isme/course-advising-api/internal/router"
	"github.com/noah-isme/course-advising-api/internal/service"
	"github.com/noah-isme/course-advising-api/internal/session"
	"github.com/noah-isme/course-advising-api/pkg/cache"
	"github.com/noah-isme/course-advising-api/pkg/config"
	"github.com/noah-isme/course-advising-api/pkg/database"
	"github.com/noah-isme/course-advising-api/pkg/logger"
)

// @title Course Advising API
// @version 1.0.0
// @description Course catalogue, semester planning and schedule export for university advising
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newDatabase,
			newRedis,
			service.NewMetricsService,
			newValidator,
		),
		fx.Provide(
			newRepositories,
			newCacheService,
			newVerifier,
		),
		fx.Provide(
			newUserService,
			newCategoryService,
			newSemesterService,
			newCourseService,
			newUserCourseService,
			newScheduleService,
		),
		fx.Provide(
			newHandlers,
			newEngine,
			newHTTPServer,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func newValidator() *validator.Validate {
	return validator.New()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		_ = l.Sync()
		return nil
	}})
	return l, nil
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, l *zap.Logger) (*sqlx.DB, error) {
	db, err := database.NewPostgres(context.Background(), cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		l.Info("closing database")
		return db.Close()
	}})
	return db, nil
}

// newRedis returns nil when Redis is disabled; the session cache then passes through.
func newRedis(lc fx.Lifecycle, cfg *config.Config, l *zap.Logger) (*redis.Client, error) {
	client, err := cache.NewRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		l.Info("redis disabled, session cache off")
		return nil, nil
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return client.Close()
	}})
	return client, nil
}

type repositories struct {
	fx.Out

	Users       *repository.UserRepository
	Categories  *repository.CategoryRepository
	Semesters   *repository.SemesterRepository
	Courses     *repository.CourseRepository
	UserCourses *repository.UserCourseRepository
}

func newRepositories(db *sqlx.DB, metrics *service.MetricsService) repositories {
	observe := repository.WithQueryObserver(metrics)
	return repositories{
		Users:       repository.NewUserRepository(db, observe),
		Categories:  repository.NewCategoryRepository(db, observe),
		Semesters:   repository.NewSemesterRepository(db, observe),
		Courses:     repository.NewCourseRepository(db, observe),
		UserCourses: repository.NewUserCourseRepository(db, observe),
	}
}

func newCacheService(cfg *config.Config, client *redis.Client, metrics *service.MetricsService, l *zap.Logger) *service.CacheService {
	repo := repository.NewCacheRepository(client, "course-advising")
	return service.NewCacheService(repo, metrics, cfg.Session.CacheTTL, l, client != nil)
}

func newVerifier(cfg *config.Config, cacheSvc *service.CacheService, metrics *service.MetricsService, l *zap.Logger) (session.Verifier, error) {
	var inner session.Verifier
	switch cfg.Session.Provider {
	case config.SessionProviderJWT:
		inner = session.NewJWTVerifier(cfg.Session.Secret, cfg.Session.ProjectID)
	case config.SessionProviderRemote:
		inner = session.NewRemoteVerifier(session.RemoteConfig{
			ProjectID:       cfg.Session.ProjectID,
			Secret:          cfg.Session.Secret,
			Environment:     cfg.Session.Env,
			BaseURL:         cfg.Session.BaseURL,
			SessionDuration: cfg.Session.Duration,
			Timeout:         cfg.Session.Timeout,
		}, &http.Client{Timeout: cfg.Session.Timeout}, l.Named("session"))
	default:
		return nil, fmt.Errorf("unknown session provider %q", cfg.Session.Provider)
	}
	cached := session.NewCachedVerifier(inner, cacheSvc, cfg.Session.CacheTTL, l.Named("session"))
	return session.Observed(cached, metrics.ObserveSessionVerification), nil
}

func newUserService(repos repositoryIn, v *validator.Validate, l *zap.Logger, cfg *config.Config) *service.UserService {
	return service.NewUserService(repos.Users, v, l.Named("users"), cfg.MasterAdminEmail)
}

func newCategoryService(repos repositoryIn, v *validator.Validate, l *zap.Logger) *service.CategoryService {
	return service.NewCategoryService(repos.Categories, v, l.Named("categories"))
}

func newSemesterService(repos repositoryIn, v *validator.Validate, l *zap.Logger) *service.SemesterService {
	return service.NewSemesterService(repos.Semesters, v, l.Named("semesters"))
}

func newCourseService(repos repositoryIn, v *validator.Validate, l *zap.Logger) *service.CourseService {
	return service.NewCourseService(repos.Courses, repos.Categories, repos.Semesters, v, l.Named("courses"))
}

func newUserCourseService(repos repositoryIn, v *validator.Validate, l *zap.Logger) *service.UserCourseService {
	return service.NewUserCourseService(repos.UserCourses, repos.Users, repos.Courses, repos.Semesters, v, l.Named("user_courses"))
}

func newScheduleService(repos repositoryIn, l *zap.Logger) *service.ScheduleService {
	return service.NewScheduleService(repos.UserCourses, repos.Users, l.Named("schedule"))
}

type repositoryIn struct {
	fx.In

	Users       *repository.UserRepository
	Categories  *repository.CategoryRepository
	Semesters   *repository.SemesterRepository
	Courses     *repository.CourseRepository
	UserCourses *repository.UserCourseRepository
}

type handlers struct {
	fx.Out

	Users       *handler.UserHandler
	Categories  *handler.CategoryHandler
	Semesters   *handler.SemesterHandler
	Courses     *handler.CourseHandler
	UserCourses *handler.UserCourseHandler
	Metrics     *handler.MetricsHandler
}

func newHandlers(
	users *service.UserService,
	schedules *service.ScheduleService,
	categories *service.CategoryService,
	semesters *service.SemesterService,
	courses *service.CourseService,
	userCourses *service.UserCourseService,
	metrics *service.MetricsService,
	db *sqlx.DB,
) handlers {
	return handlers{
		Users:       handler.NewUserHandler(users, schedules),
		Categories:  handler.NewCategoryHandler(categories),
		Semesters:   handler.NewSemesterHandler(semesters),
		Courses:     handler.NewCourseHandler(courses),
		UserCourses: handler.NewUserCourseHandler(userCourses),
		Metrics:     handler.NewMetricsHandler(metrics, db),
	}
}

type engineIn struct {
	fx.In

	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *service.MetricsService
	Verifier    session.Verifier
	UserService *service.UserService

	Users       *handler.UserHandler
	Categories  *handler.CategoryHandler
	Semesters   *handler.SemesterHandler
	Courses     *handler.CourseHandler
	UserCourses *handler.UserCourseHandler
	MetricsH    *handler.MetricsHandler
}

func newEngine(in engineIn) *gin.Engine {
	if in.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	return router.New(router.Options{
		APIPrefix:         in.Config.APIPrefix,
		AllowedOrigins:    in.Config.CORS.AllowedOrigins,
		EnableDocs:        in.Config.Env != config.EnvProduction,
		Logger:            in.Logger,
		Metrics:           in.Metrics,
		Verifier:          in.Verifier,
		Users:             in.UserService,
		UserHandler:       in.Users,
		CategoryHandler:   in.Categories,
		SemesterHandler:   in.Semesters,
		CourseHandler:     in.Courses,
		UserCourseHandler: in.UserCourses,
		MetricsHandler:    in.MetricsH,
	})
}

func newHTTPServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, engine *gin.Engine, l *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			l.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("server failed", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			l.Info("server stopping")
			return srv.Shutdown(shutdownCtx)
		},
	})
	return srv
}
