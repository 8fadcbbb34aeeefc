package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
)

// POST /api/proveedores
func (h *Handler) CreateProvider(c *gin.Context) {
	var in service.ProviderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.courts.CreateProvider(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProvider(p))
}

// GET /api/proveedores/:id
func (h *Handler) GetProvider(c *gin.Context) {
	p, err := h.courts.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProvider(p))
}

// GET /api/canchas?deporte=&page=&page_size=
func (h *Handler) ListCourts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))

	res, err := h.courts.ListCourts(c.Request.Context(), c.Query("deporte"), page, size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourtPage(res))
}

// POST /api/canchas
func (h *Handler) CreateCourt(c *gin.Context) {
	var in service.CourtInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	court, err := h.courts.CreateCourt(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCourt(court))
}

// GET /api/canchas/:id
func (h *Handler) GetCourt(c *gin.Context) {
	court, err := h.courts.GetCourt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourt(court))
}

// PUT /api/canchas/:id
func (h *Handler) UpdateCourt(c *gin.Context) {
	var in service.CourtInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	court, err := h.courts.UpdateCourt(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourt(court))
}

// DELETE /api/canchas/:id
func (h *Handler) DeleteCourt(c *gin.Context) {
	if err := h.courts.DeleteCourt(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/canchas/:id/disponibilidad?fecha=YYYY-MM-DD
func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("fecha")
	slots, err := h.courts.Availability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancha_id": c.Param("id"), "fecha": date, "franjas": slots})
}

// GET /api/canchas/:id/servicios?disponibles=true
func (h *Handler) ListExtraServices(c *gin.Context) {
	onlyAvailable := c.Query("disponibles") == "true"
	services, err := h.courts.ListExtraServices(c.Request.Context(), c.Param("id"), onlyAvailable)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]extraServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, toExtraService(&services[i]))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/canchas/:id/servicios
func (h *Handler) CreateExtraService(c *gin.Context) {
	var in service.ExtraServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc, err := h.courts.CreateExtraService(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExtraService(svc))
}

// PUT /api/servicios/:id
func (h *Handler) UpdateExtraService(c *gin.Context) {
	var in service.ExtraServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc, err := h.courts.UpdateExtraService(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExtraService(svc))
}

// DELETE /api/servicios/:id
func (h *Handler) DeleteExtraService(c *gin.Context) {
	if err := h.courts.DeleteExtraService(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/canchas/:id/bloqueos?fecha=
func (h *Handler) ListBlocks(c *gin.Context) {
	blocks, err := h.courts.ListBlocks(c.Request.Context(), c.Param("id"), c.Query("fecha"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]blockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, toBlock(&blocks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/canchas/:id/bloqueos
func (h *Handler) CreateBlock(c *gin.Context) {
	var in service.BlockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.courts.CreateBlock(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBlock(b))
}

// DELETE /api/bloqueos/:id
func (h *Handler) DeleteBlock(c *gin.Context) {
	if err := h.courts.DeleteBlock(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
