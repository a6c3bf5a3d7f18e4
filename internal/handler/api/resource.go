package api

import (
	"net/http"

	"libreserve/internal/domain/schedule"
	reqdto "libreserve/internal/handler/dto/request"
	resdto "libreserve/internal/handler/dto/response"
	"libreserve/internal/handler/httperr"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingDate = errs.New("date query parameter is required")

type ResourceHandler struct {
	resourceQueries queries.ResourceQueries
}

func NewResourceHandler(resourceQueries queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{resourceQueries: resourceQueries}
}

// ListResources answers the filter panel: each present query option narrows
// the catalog listing, absent options impose no constraint.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var query reqdto.ListResourcesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_filter", "Invalid filter parameters", nil)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_filter", err.Error(), nil)
		return
	}

	views, err := h.resourceQueries.List(c.Request.Context(), filter)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}

func (h *ResourceHandler) GetResource(c *gin.Context) {
	view, err := h.resourceQueries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// FreeWindows feeds the time selector: the ordered complement of committed
// intervals within operating hours, or remaining copies for books.
func (h *ResourceHandler) FreeWindows(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingDate, "invalid_date", "date query parameter is required", nil)
		return
	}
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_date", "date must be formatted YYYY-MM-DD", nil)
		return
	}

	view, err := h.resourceQueries.FreeWindows(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
