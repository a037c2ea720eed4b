package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/screenhouse/cinema-api/docs"
	v1 "github.com/screenhouse/cinema-api/internal/api/handler/v1"
	"github.com/screenhouse/cinema-api/internal/api/middleware"
	"github.com/screenhouse/cinema-api/internal/config"
	"github.com/screenhouse/cinema-api/internal/repository"
	"github.com/screenhouse/cinema-api/internal/repository/dao"
	"github.com/screenhouse/cinema-api/internal/service"
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
	userHandler := s.initUserHandler(db)
	hallHandler := s.initHallHandler(db)
	filmHandler := s.initFilmHandler(db)
	seanceHandler := s.initSeanceHandler(db)
	ticketHandler := s.initTicketHandler(db)
	s.MountHandlers(db, authHandler, userHandler, hallHandler, filmHandler, seanceHandler, ticketHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initHallHandler(db *gorm.DB) *v1.HallHandler {
	repo := repository.NewHallRepository(dao.NewHallDAO(db))
	svc := service.NewHallService(repo)
	handler := v1.NewHallHandler(svc)

	return handler
}

func (s *Server) initFilmHandler(db *gorm.DB) *v1.FilmHandler {
	repo := repository.NewFilmRepository(dao.NewFilmDAO(db))
	svc := service.NewFilmService(repo)
	handler := v1.NewFilmHandler(svc)

	return handler
}

func (s *Server) initSeanceHandler(db *gorm.DB) *v1.SeanceHandler {
	repo := repository.NewSeanceRepository(dao.NewSeanceDAO(db))
	hallRepo := repository.NewHallRepository(dao.NewHallDAO(db))
	filmRepo := repository.NewFilmRepository(dao.NewFilmDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	svc := service.NewSeanceService(repo, hallRepo, filmRepo, ticketRepo)
	handler := v1.NewSeanceHandler(svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	repo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	hallRepo := repository.NewHallRepository(dao.NewHallDAO(db))
	svc := service.NewTicketService(repo, hallRepo)
	handler := v1.NewTicketHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(db *gorm.DB, authHandler *v1.AuthHandler, userHandler *v1.UserHandler, hallHandler *v1.HallHandler, filmHandler *v1.FilmHandler, seanceHandler *v1.SeanceHandler, ticketHandler *v1.TicketHandler) {
	const basePath = "/api/v1"

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	requireAdmin := middleware.RequireAdmin(userSvc)
	requireCustomer := middleware.RequireCustomer(userSvc)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, verifyJWT)
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/halls", hallHandler.HandleListHalls)
		authed.GET("/halls/:hallID", hallHandler.HandleGetHall)

		authed.GET("/films", filmHandler.HandleListFilms)
		authed.GET("/films/:filmID", filmHandler.HandleGetFilm)

		authed.GET("/seances", seanceHandler.HandleListSeances)
		authed.GET("/seances/today", seanceHandler.HandleListSeancesToday)
		authed.GET("/seances/tomorrow", seanceHandler.HandleListSeancesTomorrow)
		authed.GET("/seances/:seanceID", seanceHandler.HandleGetSeance)
	}

	customers := s.Router.Group(basePath, verifyJWT, requireCustomer)
	{
		customers.POST("/seances/:seanceID/purchase", ticketHandler.HandlePurchase)
		customers.GET("/tickets", ticketHandler.HandleListMyTickets)
		customers.GET("/tickets/:ticketID", ticketHandler.HandleGetMyTicket)
	}

	admin := s.Router.Group(basePath, verifyJWT, requireAdmin)
	{
		admin.POST("/halls", hallHandler.HandleCreateHall)
		admin.PATCH("/halls/:hallID", hallHandler.HandleUpdateHall)

		admin.POST("/films", filmHandler.HandleCreateFilm)

		admin.POST("/seances", seanceHandler.HandleCreateSeance)
		admin.PATCH("/seances/:seanceID", seanceHandler.HandleUpdateSeance)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Screenhouse Cinema API"
	docs.SwaggerInfo.Description = "Movie theater API: halls, films, seances and ticket purchases."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
