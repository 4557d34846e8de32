package server

import (
	"strings"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/config"
	"github.com/fitvibes/fitvibes-server/internal/jobs"
	"github.com/fitvibes/fitvibes-server/internal/middleware"
	"github.com/fitvibes/fitvibes-server/pkg/push"

	achievementHttp "github.com/fitvibes/fitvibes-server/internal/modules/achievement/delivery/http"
	achievementRepo "github.com/fitvibes/fitvibes-server/internal/modules/achievement/repository"
	achievementService "github.com/fitvibes/fitvibes-server/internal/modules/achievement/service"

	activityHttp "github.com/fitvibes/fitvibes-server/internal/modules/activity/delivery/http"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	activityService "github.com/fitvibes/fitvibes-server/internal/modules/activity/service"

	groupHttp "github.com/fitvibes/fitvibes-server/internal/modules/group/delivery/http"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	groupService "github.com/fitvibes/fitvibes-server/internal/modules/group/service"

	notifHttp "github.com/fitvibes/fitvibes-server/internal/modules/notification/delivery/http"
	notifRepo "github.com/fitvibes/fitvibes-server/internal/modules/notification/repository"
	notifService "github.com/fitvibes/fitvibes-server/internal/modules/notification/service"

	paymentHttp "github.com/fitvibes/fitvibes-server/internal/modules/payment/delivery/http"
	paymentRepo "github.com/fitvibes/fitvibes-server/internal/modules/payment/repository"
	paymentService "github.com/fitvibes/fitvibes-server/internal/modules/payment/service"

	streakRepo "github.com/fitvibes/fitvibes-server/internal/modules/streak/repository"
	streakService "github.com/fitvibes/fitvibes-server/internal/modules/streak/service"

	userHttp "github.com/fitvibes/fitvibes-server/internal/modules/user/delivery/http"
	userRepo "github.com/fitvibes/fitvibes-server/internal/modules/user/repository"
	userService "github.com/fitvibes/fitvibes-server/internal/modules/user/service"

	voteHttp "github.com/fitvibes/fitvibes-server/internal/modules/vote/delivery/http"
	voteRepo "github.com/fitvibes/fitvibes-server/internal/modules/vote/repository"
	voteService "github.com/fitvibes/fitvibes-server/internal/modules/vote/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	scheduler   *jobs.Scheduler
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	// Repositories
	groupRepository := groupRepo.NewGroupRepository(db)
	activityRepository := activityRepo.NewActivityRepository(db)
	voteRepository := voteRepo.NewVoteRepository(db)
	achievementRepository := achievementRepo.NewAchievementRepository(db)
	streakRepository := streakRepo.NewStreakRepository(db)
	notificationRepository := notifRepo.NewNotificationRepository(db)
	paymentRepository := paymentRepo.NewPaymentRepository(db)
	userRepository := userRepo.NewUserRepository(db)

	// Services
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	groupSvc := groupService.NewGroupService(groupRepository)
	groupHandler := groupHttp.NewGroupHandler(groupSvc)

	streakSvc := streakService.NewStreakService(streakRepository, activityRepository, redisClient)

	evaluatorSvc := achievementService.NewEvaluatorService(achievementRepository, activityRepository, groupRepository)
	achievementHandler := achievementHttp.NewAchievementHandler(evaluatorSvc)

	activitySvc := activityService.NewActivityService(activityRepository, groupRepository, streakSvc, evaluatorSvc, notificationSvc)
	activityHandler := activityHttp.NewActivityHandler(activitySvc)

	paymentSvc := paymentService.NewPaymentService(paymentRepository, groupRepository)
	paymentHandler := paymentHttp.NewPaymentHandler(paymentSvc)

	voteSvc := voteService.NewVoteService(voteRepository, activityRepository, groupRepository, notificationSvc, paymentSvc)
	voteHandler := voteHttp.NewVoteHandler(voteSvc)

	userSvc := userService.NewUserService(userRepository, achievementRepository)
	userHandler := userHttp.NewUserHandler(userSvc)

	// Scheduled jobs
	pushClient := push.NewClient(cfg.PushEndpoint)
	autoExcuseJob := jobs.NewAutoExcuseJob(groupRepository, activityRepository, pushClient, cfg.AutoExcuseSchedule)
	streakResetJob := jobs.NewStreakResetJob(groupRepository, streakRepository, cfg.StreakResetSchedule)
	jobHandler := jobs.NewHandler(autoExcuseJob, streakResetJob)

	scheduler := jobs.NewScheduler()
	scheduler.Register(autoExcuseJob)
	scheduler.Register(streakResetJob)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Activity routes
		protected.POST("/activities", activityHandler.PostActivity)
		protected.GET("/activities/feed", activityHandler.GetFeed)
		protected.GET("/activities/pending/:group_id", activityHandler.GetPendingForVoting)
		protected.POST("/activities/:activity_id/votes", voteHandler.CastVote)

		// Group routes
		protected.GET("/groups/posting", groupHandler.GetGroupsForPosting)

		// Profile routes
		protected.GET("/users/me/stats", userHandler.GetMyStats)
		protected.GET("/achievements", achievementHandler.GetMyAchievements)

		// Payment routes
		protected.GET("/payments/:group_id", paymentHandler.GetHistory)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Manual job triggers
		protected.POST("/jobs/auto-excuse", jobHandler.RunAutoExcuse)
		protected.POST("/jobs/streak-reset", jobHandler.RunStreakReset)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		scheduler:   scheduler,
	}
}

func (s *Server) Run(addr string) error {
	s.scheduler.Start()
	defer s.scheduler.Stop()
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
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
