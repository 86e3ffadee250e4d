package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/config"
	"github.com/fitlife/gymsched/internal/middleware"

	categoryHttp "github.com/fitlife/gymsched/internal/modules/category/delivery/http"
	categoryRepo "github.com/fitlife/gymsched/internal/modules/category/repository"
	categoryService "github.com/fitlife/gymsched/internal/modules/category/service"

	gymClassHttp "github.com/fitlife/gymsched/internal/modules/gymclass/delivery/http"
	gymClassRepo "github.com/fitlife/gymsched/internal/modules/gymclass/repository"
	gymClassService "github.com/fitlife/gymsched/internal/modules/gymclass/service"

	lessonHttp "github.com/fitlife/gymsched/internal/modules/lesson/delivery/http"
	lessonRepo "github.com/fitlife/gymsched/internal/modules/lesson/repository"
	lessonService "github.com/fitlife/gymsched/internal/modules/lesson/service"

	search "github.com/fitlife/gymsched/internal/modules/search/service"

	userHttp "github.com/fitlife/gymsched/internal/modules/user/delivery/http"
	userRepo "github.com/fitlife/gymsched/internal/modules/user/repository"
	userService "github.com/fitlife/gymsched/internal/modules/user/service"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewServer wires repositories, services and handlers and lays out the route
// table. Policy checks live in the services; the middleware only establishes
// who the caller is.
func NewServer(db *gorm.DB, rdb *redis.Client, indexer search.GymClassIndexer, cfg *config.Config) *Server {
	users := userRepo.NewUserRepository(db)
	categories := categoryRepo.NewCategoryRepository(db)
	gymClasses := gymClassRepo.NewGymClassRepository(db)
	lessons := lessonRepo.NewLessonRepository(db)

	tokenTTL := time.Duration(cfg.JWTTTLMinutes) * time.Minute

	userSvc := userService.NewUserService(users, rdb, cfg.JWTSecret, tokenTTL, cfg.RateLimitLogin)
	userHandler := userHttp.NewUserHandler(userSvc)

	categorySvc := categoryService.NewCategoryService(categories)
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	gymClassSvc := gymClassService.NewGymClassService(gymClasses, users, indexer)
	gymClassHandler := gymClassHttp.NewGymClassHandler(gymClassSvc)

	lessonSvc := lessonService.NewLessonService(lessons, users, gymClasses)
	lessonHandler := lessonHttp.NewLessonHandler(lessonSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(users, cfg.JWTSecret)

	usersGroup := router.Group("/users")
	{
		// Sign-up and login must see the caller context: an already
		// authenticated session gets a bad request back.
		usersGroup.POST("/sign_up", authMiddleware.OptionalAuth(), userHandler.SignUp)
		usersGroup.POST("/sign_in", authMiddleware.OptionalAuth(), userHandler.Login)
		usersGroup.GET("/show/:id", userHandler.Show)
		usersGroup.GET("/show", userHandler.Show)
		usersGroup.PATCH("/update", authMiddleware.RequireAuth(), userHandler.Update)
		usersGroup.DELETE("/delete", authMiddleware.RequireAuth(), userHandler.Delete)
	}

	categoriesGroup := router.Group("/categories")
	{
		categoriesGroup.GET("/index", categoryHandler.Index)
		categoriesGroup.GET("/show/:id", categoryHandler.Show)
		categoriesGroup.GET("/show", categoryHandler.Show)
		categoriesGroup.POST("/create", authMiddleware.OptionalAuth(), categoryHandler.Create)
		categoriesGroup.PATCH("/update/:id", authMiddleware.OptionalAuth(), categoryHandler.Update)
		categoriesGroup.DELETE("/delete/:id", authMiddleware.OptionalAuth(), categoryHandler.Delete)
	}

	gymClassesGroup := router.Group("/gym_classes")
	{
		gymClassesGroup.GET("/index", gymClassHandler.Index)
		gymClassesGroup.GET("/show/:id", gymClassHandler.Show)
		gymClassesGroup.POST("/create", authMiddleware.OptionalAuth(), gymClassHandler.Create)
		gymClassesGroup.PATCH("/update/:id", authMiddleware.OptionalAuth(), gymClassHandler.Update)
		gymClassesGroup.DELETE("/delete/:id", authMiddleware.OptionalAuth(), gymClassHandler.Delete)
	}

	lessonsGroup := router.Group("/lessons")
	lessonsGroup.Use(authMiddleware.RequireAuth())
	{
		lessonsGroup.POST("/create", lessonHandler.Create)
		lessonsGroup.DELETE("/delete", lessonHandler.Delete)
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
