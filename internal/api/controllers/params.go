package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"purelife/internal/services"
	"purelife/pkg/middleware"
	"purelife/pkg/utils"
)

const imageFormField = "file"

// parseID reads a positive numeric path parameter. It writes the 400 itself.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.HandleServiceError(c, utils.NewValidationError("%s: must be a positive integer", name))
		return 0, false
	}
	return uint(id), true
}

// callerID returns the authenticated caller's id. Routes using it sit behind
// JWTAuthMiddleware, so a missing principal is reported as unauthenticated.
func callerID(c *gin.Context) (uint, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrNotAuthenticated)
		return 0, false
	}
	return p.ID, true
}

// openImage returns the uploaded image, or nil when the part is absent.
// The caller closes the returned file.
func openImage(c *gin.Context) (*services.ImageUpload, multipart.File, error) {
	header, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, utils.NewValidationError("file: could not be read")
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, utils.NewValidationError("file: could not be read")
	}
	return &services.ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, file, nil
}
