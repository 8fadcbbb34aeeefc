package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
)

// POST /api/reservas
//
// El cuerpo se lee como mapa: los formularios y el backend usan nombres de
// campo distintos para lo mismo (fecha/date, horaInicio/inicio, ...).
func (h *Handler) CreateReservation(c *gin.Context) {
	var rec map[string]any
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.reservations.Create(c.Request.Context(), service.ReservationInputFromRecord(rec))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /api/reservas?cancha_id=&telefono=&fecha=&categoria=&page=&page_size=
func (h *Handler) ListReservations(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))

	res, err := h.reservations.List(c.Request.Context(), service.ListReservationsFilter{
		CourtID:  c.Query("cancha_id"),
		Phone:    c.Query("telefono"),
		Date:     c.Query("fecha"),
		Category: calendar.Category(c.Query("categoria")),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/reservas/:id
func (h *Handler) GetReservation(c *gin.Context) {
	view, err := h.reservations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/reservas/:id/eventos
func (h *Handler) ReservationHistory(c *gin.Context) {
	events, err := h.reservations.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEvent(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/reservas/:id/cancelar
func (h *Handler) CancelReservation(c *gin.Context) {
	h.transition(c, h.reservations.Cancel)
}

// PUT /api/reservas/:id/completar
func (h *Handler) CompleteReservation(c *gin.Context) {
	h.transition(c, h.reservations.Complete)
}

// PUT /api/reservas/:id/no-show
func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.reservations.MarkNoShow)
}

type transitionFunc func(ctx context.Context, id string) (*service.ReservationView, error)

func (h *Handler) transition(c *gin.Context, fn transitionFunc) {
	view, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
