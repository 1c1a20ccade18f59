package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

type CartController struct {
	cartService services.CartServiceInterface
}

func NewCartController(cartService services.CartServiceInterface) *CartController {
	return &CartController{cartService: cartService}
}

func (cc *CartController) GetCart(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	items, err := cc.cartService.GetCartItems(c.Request.Context(), memberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Cart fetched successfully")
}

func (cc *CartController) GetCartTotal(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	total, err := cc.cartService.GetCartTotal(c.Request.Context(), memberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, total, "Cart total calculated successfully")
}

// AddToCart godoc
// @Summary Add a product to the cart
// @Description Adding a product already in the cart increases its quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.AddToCartRequest true "Product and quantity"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/cart [post]
func (cc *CartController) AddToCart(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	item, err := cc.cartService.AddToCart(c.Request.Context(), memberID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Added to cart")
}

func (cc *CartController) UpdateQuantity(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	cartID, ok := parseID(c, "cartId")
	if !ok {
		return
	}

	var req request_models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	item, err := cc.cartService.UpdateQuantity(c.Request.Context(), memberID, cartID, req.Quantity)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Cart updated")
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	cartID, ok := parseID(c, "cartId")
	if !ok {
		return
	}

	if err := cc.cartService.RemoveFromCart(c.Request.Context(), memberID, cartID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Item removed from cart")
}

func (cc *CartController) ClearCart(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	if err := cc.cartService.ClearCart(c.Request.Context(), memberID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Cart cleared")
}
