package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

// AdminProductController serves catalog management. Create and update take
// multipart forms so the image can travel with the product fields.
type AdminProductController struct {
	productService services.ProductServiceInterface
}

func NewAdminProductController(productService services.ProductServiceInterface) *AdminProductController {
	return &AdminProductController{productService: productService}
}

func (a *AdminProductController) ListProducts(c *gin.Context) {
	products, err := a.productService.ListAllForAdmin(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

// CreateProduct godoc
// @Summary Create a product
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param productName formData string true "Name"
// @Param category formData string true "Category"
// @Param price formData number true "List price"
// @Param promotionPrice formData number false "Promotion price"
// @Param stockQuantity formData int true "Stock"
// @Param description formData string true "Description"
// @Param productStatus formData string true "available or unavailable"
// @Param imageUrl formData string false "Existing image URL"
// @Param subscriptionPlans formData string false "JSON array of plans"
// @Param file formData file false "Product image"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/admin/products [post]
func (a *AdminProductController) CreateProduct(c *gin.Context) {
	var form request_models.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	image, file, err := openImage(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	product, err := a.productService.CreateProduct(c.Request.Context(), form, image)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product created successfully")
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Replaces all fields. A new file replaces the stored image; subscriptionPlans, when sent, replaces every plan.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/admin/products/{id} [put]
func (a *AdminProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form request_models.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	image, file, err := openImage(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	product, err := a.productService.UpdateProduct(c.Request.Context(), id, form, image)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product updated successfully")
}

func (a *AdminProductController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.productService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Product status updated successfully")
}

func (a *AdminProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := a.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Product deleted successfully")
}

// UploadImage godoc
// @Summary Upload a product image
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "JPEG, PNG, GIF or WebP, at most 5MB"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/admin/upload/product-image [post]
func (a *AdminProductController) UploadImage(c *gin.Context) {
	image, file, err := openImage(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if image == nil {
		utils.HandleServiceError(c, utils.ErrEmptyFile)
		return
	}
	defer file.Close()

	uploaded, err := a.productService.UploadImage(c.Request.Context(), *image)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, uploaded, "Image uploaded successfully")
}
