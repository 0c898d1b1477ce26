package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notely-be/internal/models"
	"notely-be/internal/service"
)

type NoteController struct {
	noteService service.NoteService
	pageSize    int
	maxPageSize int
}

func NewNoteController(noteService service.NoteService, pageSize, maxPageSize int) *NoteController {
	return &NoteController{
		noteService: noteService,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// List handles GET /api/v1/notes with an optional ?category= filter
func (nc *NoteController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c, nc.pageSize, nc.maxPageSize)
	response, err := nc.noteService.List(userID, c.Query("category"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/v1/notes
func (nc *NoteController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := nc.noteService.Create(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/notes/:id
func (nc *NoteController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := nc.noteService.Get(userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update handles PUT /api/v1/notes/:id
func (nc *NoteController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := nc.noteService.Update(userID, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Patch handles PATCH /api/v1/notes/:id
func (nc *NoteController) Patch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PatchNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := nc.noteService.Patch(userID, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/notes/:id
func (nc *NoteController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := nc.noteService.Delete(userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
