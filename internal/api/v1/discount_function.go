package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanahub/ab-discount-app/internal/api/dto"
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/service"
)

type DiscountFunctionHandler struct {
	service service.DiscountFunctionService
	log     *logger.Logger
}

func NewDiscountFunctionHandler(
	service service.DiscountFunctionService,
	log *logger.Logger,
) *DiscountFunctionHandler {
	return &DiscountFunctionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Run the discount function
// @Description Evaluate a cart against the configuration carried in the discount metafield
// @Tags DiscountFunction
// @Accept json
// @Produce json
// @Param request body dto.RunRequest true "Function input"
// @Success 200 {object} dto.RunResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /discount-function/run [post]
func (h *DiscountFunctionHandler) Run(c *gin.Context) {
	var req dto.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Run(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Run the discount function for a shop
// @Description Evaluate a cart against the shop's stored configuration
// @Tags DiscountFunction
// @Accept json
// @Produce json
// @Param shop_id path string true "Shop ID"
// @Param request body dto.RunRequest true "Function input"
// @Success 200 {object} dto.RunResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /shops/{shop_id}/discount-function/run [post]
func (h *DiscountFunctionHandler) RunForShop(c *gin.Context) {
	shopID := c.Param("shop_id")

	var req dto.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RunForShop(c.Request.Context(), shopID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
