package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanahub/ab-discount-app/internal/api/dto"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/service"
)

type VariantDiscountHandler struct {
	service service.VariantDiscountService
	log     *logger.Logger
}

func NewVariantDiscountHandler(
	service service.VariantDiscountService,
	log *logger.Logger,
) *VariantDiscountHandler {
	return &VariantDiscountHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get variant discounts
// @Description Get the per-variant percentages configured for a shop
// @Tags VariantDiscounts
// @Produce json
// @Param shop_id path string true "Shop ID"
// @Success 200 {object} dto.VariantDiscountsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /shops/{shop_id}/variant-discounts [get]
func (h *VariantDiscountHandler) GetVariantDiscounts(c *gin.Context) {
	resp, err := h.service.GetVariantDiscounts(c.Request.Context(), c.Param("shop_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Save variant discounts
// @Description Replace the per-variant percentages of a shop. Values that are not positive numbers are dropped.
// @Tags VariantDiscounts
// @Accept json
// @Produce json
// @Param shop_id path string true "Shop ID"
// @Param request body dto.SaveVariantDiscountsRequest true "Variant discounts"
// @Success 200 {object} dto.VariantDiscountsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /shops/{shop_id}/variant-discounts [put]
func (h *VariantDiscountHandler) SaveVariantDiscounts(c *gin.Context) {
	var req dto.SaveVariantDiscountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SaveVariantDiscounts(c.Request.Context(), c.Param("shop_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
