package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
)

// writeError traduce los errores del servicio a respuestas HTTP.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		verr *service.ValidationError
		na   *service.NotAllowedError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "campos": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No encontrado"})
	case errors.As(err, &na):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": na.Reason, "accion": na.Action})
	case errors.Is(err, service.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "La franja seleccionada no está disponible"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "La reserva cambió mientras se procesaba la solicitud"})
	case errors.Is(err, service.ErrCourtInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "La cancha tiene reservas activas de hoy en adelante"})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
