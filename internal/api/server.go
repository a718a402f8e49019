package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/campushq/campus-events-api/docs"
	v1 "github.com/campushq/campus-events-api/internal/api/handler/v1"
	"github.com/campushq/campus-events-api/internal/api/middleware"
	"github.com/campushq/campus-events-api/internal/config"
	"github.com/campushq/campus-events-api/internal/repository"
	"github.com/campushq/campus-events-api/internal/repository/dao"
	"github.com/campushq/campus-events-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	collegeHandler := s.initCollegeHandler(db)
	studentHandler := s.initStudentHandler(db)
	eventHandler := s.initEventHandler(db)
	attendanceHandler := s.initAttendanceHandler(db)
	feedbackHandler := s.initFeedbackHandler(db)
	reportHandler := s.initReportHandler(db)
	s.MountHandlers(authHandler, collegeHandler, studentHandler, eventHandler, attendanceHandler, feedbackHandler, reportHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminRepo := repository.NewAdminRepository(dao.NewAdminDAO(db))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	collegeRepo := repository.NewCollegeRepository(dao.NewCollegeDAO(db))
	svc := service.NewAuthService(adminRepo, studentRepo, collegeRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initCollegeHandler(db *gorm.DB) *v1.CollegeHandler {
	repo := repository.NewCollegeRepository(dao.NewCollegeDAO(db))
	svc := service.NewCollegeService(repo)
	handler := v1.NewCollegeHandler(svc)

	return handler
}

func (s *Server) initStudentHandler(db *gorm.DB) *v1.StudentHandler {
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	collegeRepo := repository.NewCollegeRepository(dao.NewCollegeDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewStudentService(studentRepo, collegeRepo)
	eventSvc := service.NewEventService(eventRepo, collegeRepo, studentRepo)
	analyticsSvc := s.newAnalyticsService(db)
	handler := v1.NewStudentHandler(svc, eventSvc, analyticsSvc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	handler := v1.NewEventHandler(s.newEventService(db))

	return handler
}

func (s *Server) initAttendanceHandler(db *gorm.DB) *v1.AttendanceHandler {
	handler := v1.NewAttendanceHandler(s.newEventService(db))

	return handler
}

func (s *Server) initFeedbackHandler(db *gorm.DB) *v1.FeedbackHandler {
	handler := v1.NewFeedbackHandler(s.newEventService(db))

	return handler
}

func (s *Server) initReportHandler(db *gorm.DB) *v1.ReportHandler {
	handler := v1.NewReportHandler(s.newAnalyticsService(db))

	return handler
}

func (s *Server) newEventService(db *gorm.DB) *service.EventService {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	collegeRepo := repository.NewCollegeRepository(dao.NewCollegeDAO(db))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))

	return service.NewEventService(eventRepo, collegeRepo, studentRepo)
}

func (s *Server) newAnalyticsService(db *gorm.DB) *service.AnalyticsService {
	analyticsRepo := repository.NewAnalyticsRepository(dao.NewAnalyticsDAO(db))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	return service.NewAnalyticsService(analyticsRepo, studentRepo, eventRepo, s.Config.Analytics.MinReviews, s.Config.Analytics.RecentLimit)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	collegeHandler *v1.CollegeHandler,
	studentHandler *v1.StudentHandler,
	eventHandler *v1.EventHandler,
	attendanceHandler *v1.AttendanceHandler,
	feedbackHandler *v1.FeedbackHandler,
	reportHandler *v1.ReportHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/student-login", authHandler.HandleStudentLogin)
	}

	// Browsing events and colleges needs a valid token of any role.
	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.GET("/colleges", collegeHandler.HandleListColleges)
		authed.GET("/colleges/:collegeID", collegeHandler.HandleGetCollege)

		authed.GET("/events", eventHandler.HandleListEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)

		authed.POST("/events/:eventID/register", eventHandler.HandleRegisterStudent)
		authed.DELETE("/events/:eventID/register/:studentID", eventHandler.HandleUnregisterStudent)
		authed.POST("/events/:eventID/feedback", feedbackHandler.HandleSubmitFeedback)

		authed.GET("/students/:studentID/registrations", studentHandler.HandleListStudentRegistrations)
		authed.GET("/students/:studentID/profile", studentHandler.HandleGetStudentProfile)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireAdmin())
	{
		admin.POST("/colleges", collegeHandler.HandleCreateCollege)
		admin.PUT("/colleges/:collegeID", collegeHandler.HandleUpdateCollege)

		admin.POST("/students", studentHandler.HandleCreateStudent)
		admin.GET("/students", studentHandler.HandleListStudents)
		admin.GET("/students/:studentID", studentHandler.HandleGetStudent)
		admin.PUT("/students/:studentID", studentHandler.HandleUpdateStudent)

		admin.POST("/events", eventHandler.HandleCreateEvent)
		admin.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		admin.POST("/events/:eventID/end", eventHandler.HandleEndEvent)
		admin.POST("/events/:eventID/cancel", eventHandler.HandleCancelEvent)
		admin.GET("/events/:eventID/registrations", eventHandler.HandleListRegistrations)
		admin.GET("/events/:eventID/feedback", feedbackHandler.HandleListFeedback)

		admin.POST("/events/:eventID/attendance", attendanceHandler.HandleMarkAttendance)
		admin.POST("/events/:eventID/attendance/checkout", attendanceHandler.HandleCheckOut)
		admin.GET("/events/:eventID/attendance", attendanceHandler.HandleListAttendance)

		admin.GET("/reports/feedback", reportHandler.HandleFeedbackAnalytics)
		admin.GET("/reports/popularity", reportHandler.HandleEventPopularity)
		admin.GET("/reports/attendance", reportHandler.HandleAttendanceSummary)
		admin.GET("/reports/participation", reportHandler.HandleStudentParticipation)
		admin.GET("/reports/dashboard", reportHandler.HandleDashboard)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Campus Events API"
	docs.SwaggerInfo.Description = "Multi-tenant campus event management platform."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
