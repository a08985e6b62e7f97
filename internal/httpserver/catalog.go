package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	dishrepo "warung/internal/repository/dish"
)

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, categories)
}

func (h *handlers) listDishes(c *gin.Context) {
	f := dishrepo.ListFilter{
		AvailableOnly: true,
		FeaturedOnly:  c.Query("featured") == "true",
		Search:        c.Query("q"),
		Limit:         parseIntDefault(c.Query("limit"), 50),
		Offset:        parseIntDefault(c.Query("offset"), 0),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid category id")
			return
		}
		f.CategoryID = &id
	}

	dishes, err := h.deps.DishSvc.List(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, dishes)
}

func (h *handlers) getDish(c *gin.Context) {
	dish, err := h.deps.DishSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, dish)
}

func (h *handlers) listDishVariants(c *gin.Context) {
	dish, err := h.deps.DishSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	variants, err := h.deps.VariantSvc.ListByDish(c.Request.Context(), dish.ID)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, variants)
}

func (h *handlers) listActiveDiscounts(c *gin.Context) {
	discounts, err := h.deps.DiscountSvc.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, discounts)
}

func (h *handlers) listActiveTaxes(c *gin.Context) {
	taxes, err := h.deps.TaxSvc.List(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, taxes)
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
