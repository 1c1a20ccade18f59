package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/services"
	"purelife/pkg/utils"
)

type ProductController struct {
	productService services.ProductServiceInterface
}

func NewProductController(productService services.ProductServiceInterface) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts godoc
// @Summary List available products
// @Tags Products
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} utils.APIResponse
// @Router /api/products [get]
func (p *ProductController) ListProducts(c *gin.Context) {
	products, err := p.productService.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

// GetProduct godoc
// @Summary Get a product with its subscription plans
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/products/{id} [get]
func (p *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := p.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product fetched successfully")
}

func (p *ProductController) ListCategories(c *gin.Context) {
	categories, err := p.productService.ListCategories(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, categories, "Categories fetched successfully")
}

func (p *ProductController) ListNewProducts(c *gin.Context) {
	products, err := p.productService.ListNewProducts(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "New products fetched successfully")
}

func (p *ProductController) ListHotProducts(c *gin.Context) {
	products, err := p.productService.ListHotProducts(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Hot products fetched successfully")
}
