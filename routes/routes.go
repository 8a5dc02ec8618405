package routes

import (
	"github.com/gin-gonic/gin"
	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	controllers "github.com/ranieriiuri/eclesial-arrecadacoes/controllers"
	middleware "github.com/ranieriiuri/eclesial-arrecadacoes/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// public
	r.POST("/auth/register", controllers.Register(cfg))
	r.POST("/auth/login", controllers.Login(cfg))

	// protected
	auth := middleware.AuthMiddleware(cfg)

	r.GET("/auth/me", auth, controllers.Me(cfg))

	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/me/data", controllers.Me(cfg))
		users.PUT("/me/data", controllers.UpdateMe(cfg))
		users.PUT("/me/photo", controllers.UploadPhoto(cfg))
		users.POST("/change-password", controllers.ChangePassword(cfg))
	}

	pecas := r.Group("/pecas")
	pecas.Use(auth)
	{
		pecas.GET("", controllers.ListPecas(cfg))
		pecas.GET("/disponiveis", controllers.ListPecasDisponiveis(cfg))
		pecas.POST("/pecas-com-doacao", controllers.CreatePecaComDoacao(cfg))
		pecas.PUT("/:id", controllers.UpdatePeca(cfg))
		pecas.DELETE("/:id", controllers.DeletePeca(cfg))
	}

	events := r.Group("/events")
	events.Use(auth)
	{
		events.GET("", controllers.ListEventos(cfg))
		events.POST("/new", controllers.CreateEvento(cfg))
		events.GET("/:id", controllers.GetEvento(cfg))
		events.PUT("/:id/starting", controllers.StartEvento(cfg))
		events.PUT("/:id/finishing", controllers.FinishEvento(cfg))
		events.DELETE("/:id", controllers.DeleteEvento(cfg))
		events.GET("/:id/report", controllers.EventoReport(cfg))
	}

	sales := r.Group("/sales")
	sales.Use(auth)
	{
		sales.GET("", controllers.ListVendas(cfg))
		sales.POST("/new", controllers.CreateVenda(cfg))
		sales.GET("/event/:id", controllers.ListVendasPorEvento(cfg))
	}

	donations := r.Group("/donations")
	donations.Use(auth)
	{
		donations.GET("/donors/ranking/range", controllers.DonorRanking(cfg))
	}
}
