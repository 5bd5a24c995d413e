package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/services"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// CreateResource accepts multipart form data (with an optional "file" part)
// or plain JSON for file-less resources.
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	fields, file, err := h.bindResourceRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	for _, name := range []string{"title", "description", "type"} {
		if v, _ := fields[name].(string); v == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": (&models.MissingFieldError{Field: name}).Error()})
			return
		}
	}

	upload, fh, err := h.openUpload(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if fh != nil {
		defer fh.Close()
	}

	resource, err := h.resourceService.Create(c.Request.Context(), services.CreateResourceInput{
		Title:       fields["title"].(string),
		Description: fields["description"].(string),
		Type:        fields["type"].(string),
		File:        upload,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resourceId": resource.ID.Hex()})
}

func (h *ResourceHandler) GetResource(c *gin.Context) {
	resourceID := c.Query("resourceId")
	if resourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resourceId is required"})
		return
	}

	resource, err := h.resourceService.Get(c.Request.Context(), resourceID)
	if err != nil {
		h.respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) GetAllResources(c *gin.Context) {
	resources, err := h.resourceService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	fields, file, err := h.bindResourceRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resourceID, _ := fields["resourceId"].(string)
	if resourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resourceId is required"})
		return
	}

	upload, fh, err := h.openUpload(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if fh != nil {
		defer fh.Close()
	}

	if err := h.resourceService.Update(c.Request.Context(), resourceID, fields, upload); err != nil {
		h.respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource updated successfully"})
}

func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resourceID := c.Query("resourceId")
	if resourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resourceId is required"})
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), resourceID); err != nil {
		h.respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}

// bindResourceRequest reads either a multipart form or a JSON body into a
// flat field map plus the optional file header.
func (h *ResourceHandler) bindResourceRequest(c *gin.Context) (map[string]interface{}, *multipart.FileHeader, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}
		fields := make(map[string]interface{}, len(form.Value))
		for name, values := range form.Value {
			if len(values) > 0 {
				fields[name] = values[0]
			}
		}
		var file *multipart.FileHeader
		if files := form.File["file"]; len(files) > 0 {
			file = files[0]
		}
		return fields, file, nil
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, nil, err
	}
	return fields, nil, nil
}

func (h *ResourceHandler) openUpload(header *multipart.FileHeader) (*services.FileUpload, multipart.File, error) {
	if header == nil {
		return nil, nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.FileUpload{
		Reader:      f,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, f, nil
}

func (h *ResourceHandler) respondResourceError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	respondError(c, err)
}
