package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/djmgmz/tdd-jest/models"

	"github.com/gin-gonic/gin"
)

// PostController maps the post model onto HTTP. Each handler makes exactly one
// model call and writes exactly one response. Failures carry no body.
type PostController struct {
	Model models.PostModel
}

func NewPostController(model models.PostModel) *PostController {
	return &PostController{Model: model}
}

// Create handles POST /posts.
func (pc *PostController) Create(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	post, err := pc.Model.CreatePost(c.Request.Context(), in)
	if err != nil {
		log.Printf("CreatePost error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetAllPosts handles GET /posts.
func (pc *PostController) GetAllPosts(c *gin.Context) {
	posts, err := pc.Model.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("GetAll error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// FindPost handles GET /posts/:id.
func (pc *PostController) FindPost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := pc.Model.FindPostByID(c.Request.Context(), id)
	if errors.Is(err, models.ErrPostNotFound) || (err == nil && post == nil) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("FindPostByID %s error: %v", id, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update handles PUT /posts/:id.
func (pc *PostController) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var update models.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	post, err := pc.Model.UpdatePost(c.Request.Context(), id, update)
	if errors.Is(err, models.ErrPostNotFound) || (err == nil && post == nil) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("UpdatePost %s error: %v", id, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, post)
}
