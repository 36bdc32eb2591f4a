package geography

import (
	"github.com/gin-gonic/gin"

	"ecoleta/platform/httpkit"
)

// Handler exposes the state and city lists.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListStates handles GET /api/v1/geography/states
func (h *Handler) ListStates(c *gin.Context) {
	ufs, err := h.svc.ListUFs(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, StatesResponse{States: ufs})
}

// ListCities handles GET /api/v1/geography/states/:uf/cities
func (h *Handler) ListCities(c *gin.Context) {
	uf, _ := NormalizeUF(c.Param("uf"))

	cities, err := h.svc.ListCities(c.Request.Context(), uf)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, CitiesResponse{UF: uf, Cities: cities})
}
