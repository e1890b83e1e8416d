package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type MaterialController struct {
	materials *service.MaterialService
}

func NewMaterialController(materials *service.MaterialService) *MaterialController {
	return &MaterialController{materials: materials}
}

// List godoc
// @Summary List learning materials
// @Tags materials
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param title query string false "Filter by title substring"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /materials [get]
func (ctrl *MaterialController) List(c *gin.Context) {
	page, limit := pagination(c)
	materials, total, err := ctrl.materials.List(page, limit, c.Query("title"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: materials, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get a material by ID
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} util.Response{data=model.Material}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /materials/{id} [get]
func (ctrl *MaterialController) Get(c *gin.Context) {
	material, err := ctrl.materials.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, material)
}

// Create godoc
// @Summary Upload a new material
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Material title"
// @Param description formData string false "Description"
// @Param file formData file true "Material file (PDF)"
// @Success 201 {object} util.Response{data=model.Material}
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /admin/materials [post]
func (ctrl *MaterialController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.CreateMaterialRequest
	if err := c.ShouldBind(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer file.Close()

	material, err := ctrl.materials.Create(
		c.Request.Context(),
		&req,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		claims.UserID,
	)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, material)
}

// Update godoc
// @Summary Update material metadata
// @Tags materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body service.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Material}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/materials/{id} [put]
func (ctrl *MaterialController) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	material, err := ctrl.materials.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, material)
}

// Delete godoc
// @Summary Delete a material and its file
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/materials/{id} [delete]
func (ctrl *MaterialController) Delete(c *gin.Context) {
	if err := ctrl.materials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}

// MarkRead godoc
// @Summary Mark a material as read by the caller
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /materials/{id}/read [post]
func (ctrl *MaterialController) MarkRead(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctrl.materials.MarkRead(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}

// ReadProgress godoc
// @Summary List material IDs the caller has read
// @Tags materials
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Security BearerAuth
// @Router /materials/progress [get]
func (ctrl *MaterialController) ReadProgress(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	ids, err := ctrl.materials.ReadProgress(c.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, ids)
}
