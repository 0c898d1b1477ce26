package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notely-be/internal/models"
	"notely-be/internal/service"
)

type CategoryController struct {
	categoryService service.CategoryService
	pageSize        int
	maxPageSize     int
}

func NewCategoryController(categoryService service.CategoryService, pageSize, maxPageSize int) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		pageSize:        pageSize,
		maxPageSize:     maxPageSize,
	}
}

// List handles GET /api/v1/categories
func (cc *CategoryController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c, cc.pageSize, cc.maxPageSize)
	response, err := cc.categoryService.List(userID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/v1/categories
func (cc *CategoryController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := cc.categoryService.Create(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/categories/:id
func (cc *CategoryController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := cc.categoryService.Get(userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update handles PUT /api/v1/categories/:id
func (cc *CategoryController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := cc.categoryService.Update(userID, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Patch handles PATCH /api/v1/categories/:id
func (cc *CategoryController) Patch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PatchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := cc.categoryService.Patch(userID, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/categories/:id
func (cc *CategoryController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := cc.categoryService.Delete(userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
