package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numerisys/document-system/internal/core/domain"
	"github.com/numerisys/document-system/internal/core/ports"
)

// DocumentHandler handles document upload, listing, retrieval and deletion.
type DocumentHandler struct {
	docService ports.DocumentService
}

func NewDocumentHandler(docService ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// Create handles POST /documents — multipart form with file + metadata.
//
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true   "Document file"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  false  "Category"
// @Success      201  {object}  domain.Document
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /documents [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	input := ports.CreateDocumentInput{
		OwnerID:     userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}
	if input.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.ErrFileMissing
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	input.File = &ports.FileUpload{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      src,
	}

	doc, err := h.docService.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /documents — admins see all, users only their own.
//
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Document
// @Failure      401  {object}  errorResponse
// @Router       /documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.docService.List(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, docs)
}

// Get handles GET /documents/:id.
//
// @Summary      Get a document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  domain.Document
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doc, err := h.docService.Get(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /documents/:id — removes the backing file and the
// metadata row.
//
// @Summary      Delete a document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.docService.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}
