package handlers

import (
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/recyclewise/internal/helpers"
	"github.com/joshua-takyi/recyclewise/internal/models"
)

// UploadEventImage replaces an event's image with an uploaded file. The file
// lands in Cloudinary and the stored record keeps only the resulting URL.
func UploadEventImage(es EventService, cld *cloudinary.Cloudinary) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cld == nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse("image uploads are not configured"))
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("image file is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("failed to read image file"))
			return
		}
		defer file.Close()

		url, err := helpers.UploadImage(c.Request.Context(), cld, file, helpers.EventsFolder)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("image upload failed"))
			return
		}

		updated, err := es.SetEventImage(c.Request.Context(), c.Param("id"), url)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
