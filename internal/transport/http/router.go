package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
)

type Handler struct {
	courts       *service.CourtService
	reservations *service.ReservationService
	logger       *zap.Logger
}

func NewHandler(courts *service.CourtService, reservations *service.ReservationService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{courts: courts, reservations: reservations, logger: logger}
}

// NewRouter arma el API REST del panel.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(h.logger), recovery(h.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/proveedores", h.CreateProvider)
		api.GET("/proveedores/:id", h.GetProvider)

		api.GET("/canchas", h.ListCourts)
		api.POST("/canchas", h.CreateCourt)
		api.GET("/canchas/:id", h.GetCourt)
		api.PUT("/canchas/:id", h.UpdateCourt)
		api.DELETE("/canchas/:id", h.DeleteCourt)
		api.GET("/canchas/:id/disponibilidad", h.Availability)

		api.GET("/canchas/:id/servicios", h.ListExtraServices)
		api.POST("/canchas/:id/servicios", h.CreateExtraService)
		api.PUT("/servicios/:id", h.UpdateExtraService)
		api.DELETE("/servicios/:id", h.DeleteExtraService)

		api.GET("/canchas/:id/bloqueos", h.ListBlocks)
		api.POST("/canchas/:id/bloqueos", h.CreateBlock)
		api.DELETE("/bloqueos/:id", h.DeleteBlock)

		api.POST("/reservas", h.CreateReservation)
		api.GET("/reservas", h.ListReservations)
		api.GET("/reservas/:id", h.GetReservation)
		api.GET("/reservas/:id/eventos", h.ReservationHistory)
		api.PUT("/reservas/:id/cancelar", h.CancelReservation)
		api.PUT("/reservas/:id/completar", h.CompleteReservation)
		api.PUT("/reservas/:id/no-show", h.MarkNoShow)
	}
	return r
}
