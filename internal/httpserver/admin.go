package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	dishrepo "warung/internal/repository/dish"
	categorysvc "warung/internal/service/category"
	discountsvc "warung/internal/service/discount"
	dishsvc "warung/internal/service/dish"
	taxsvc "warung/internal/service/tax"
	variantsvc "warung/internal/service/variant"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// --- categories ---

func (h *handlers) adminListCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, categories)
}

func (h *handlers) createCategory(c *gin.Context) {
	var in categorysvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	category, err := h.deps.CategorySvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusCreated, category)
}

func (h *handlers) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in categorysvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	category, err := h.deps.CategorySvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusOK, category)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.deps.CategorySvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondMessage(c, http.StatusOK, "category deleted", nil)
}

// --- dishes ---

func (h *handlers) adminListDishes(c *gin.Context) {
	f := dishrepo.ListFilter{
		Search: c.Query("q"),
		Limit:  parseIntDefault(c.Query("limit"), 20),
		Offset: parseIntDefault(c.Query("offset"), 0),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid category id")
			return
		}
		f.CategoryID = &id
	}

	ctx := c.Request.Context()
	dishes, err := h.deps.DishSvc.List(ctx, f)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	total, err := h.deps.DishSvc.Count(ctx, f)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, gin.H{"dishes": dishes, "total": total, "limit": f.Limit, "offset": f.Offset})
}

func (h *handlers) createDish(c *gin.Context) {
	var in dishsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	dish, err := h.deps.DishSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusCreated, dish)
}

func (h *handlers) updateDish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in dishsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	dish, err := h.deps.DishSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusOK, dish)
}

func (h *handlers) deleteDish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.deps.DishSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondMessage(c, http.StatusOK, "dish deleted", nil)
}

// --- dish variants ---

func (h *handlers) getVariant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	variant, err := h.deps.VariantSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, variant)
}

func (h *handlers) createVariant(c *gin.Context) {
	var in variantsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	variant, err := h.deps.VariantSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusCreated, variant)
}

func (h *handlers) updateVariant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in variantsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	variant, err := h.deps.VariantSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusOK, variant)
}

func (h *handlers) deleteVariant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.deps.VariantSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondMessage(c, http.StatusOK, "variant deleted", nil)
}

// --- taxes ---

func (h *handlers) adminListTaxes(c *gin.Context) {
	taxes, err := h.deps.TaxSvc.List(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, taxes)
}

func (h *handlers) createTax(c *gin.Context) {
	var in taxsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tax, err := h.deps.TaxSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusCreated, tax)
}

func (h *handlers) updateTax(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in taxsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tax, err := h.deps.TaxSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusOK, tax)
}

func (h *handlers) deleteTax(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.deps.TaxSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondMessage(c, http.StatusOK, "tax deleted", nil)
}

// --- discounts ---

func (h *handlers) adminListDiscounts(c *gin.Context) {
	discounts, err := h.deps.DiscountSvc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, discounts)
}

func (h *handlers) createDiscount(c *gin.Context) {
	var in discountsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	discount, err := h.deps.DiscountSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusCreated, discount)
}

func (h *handlers) updateDiscount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in discountsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	discount, err := h.deps.DiscountSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusOK, discount)
}

func (h *handlers) deleteDiscount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.deps.DiscountSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondMessage(c, http.StatusOK, "discount deleted", nil)
}
