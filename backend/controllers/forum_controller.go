package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/models"
	"rightsquest/backend/utils"
)

type ForumController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewForumController(db *gorm.DB, cfg *config.Config) *ForumController {
	return &ForumController{DB: db, Cfg: cfg}
}

// CreatePostInput defines the request body for a new forum post.
type CreatePostInput struct {
	Title string `json:"title" validate:"required,min=3,max=120"`
	Text  string `json:"text" validate:"required,min=1,max=5000"`
}

// ReplyInput defines the request body for a reply.
type ReplyInput struct {
	Text string `json:"text" validate:"required,min=1,max=5000"`
}

// ReportInput defines the request body for reporting a post.
type ReportInput struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// GetPosts godoc
// @Summary List forum posts
// @Description Returns all forum posts with their replies, newest first
// @Tags forum
// @Produce json
// @Success 200 {array} models.ForumPost
// @Failure 500 {object} utils.ErrorResponse
// @Router /forum/posts [get]
func (fc *ForumController) GetPosts(c *fiber.Ctx) error {
	var posts []models.ForumPost
	if err := fc.DB.Preload("Replies").Order("created_at DESC").Find(&posts).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not fetch posts"))
	}

	return c.JSON(posts)
}

// CreatePost godoc
// @Summary Create a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param input body CreatePostInput true "Post data"
// @Success 200 {object} models.ForumPost
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /forum/posts [post]
func (fc *ForumController) CreatePost(c *fiber.Ctx) error {
	user, err := fc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	post := models.ForumPost{
		UserID:   user.ID,
		UserName: user.Username,
		Title:    input.Title,
		Text:     input.Text,
	}

	if err := fc.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create post",
		})
	}

	return c.JSON(post)
}

// AddReply godoc
// @Summary Reply to a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param input body ReplyInput true "Reply data"
// @Success 200 {object} models.ForumReply
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /forum/posts/{id}/replies [post]
func (fc *ForumController) AddReply(c *fiber.Ctx) error {
	user, err := fc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var input ReplyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var post models.ForumPost
	if err := fc.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	reply := models.ForumReply{
		PostID:   post.ID,
		UserID:   user.ID,
		UserName: user.Username,
		Text:     input.Text,
	}

	if err := fc.DB.Create(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create reply",
		})
	}

	return c.JSON(reply)
}

// ReportPost godoc
// @Summary Report a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param input body ReportInput true "Report reason"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /forum/posts/{id}/report [post]
func (fc *ForumController) ReportPost(c *fiber.Ctx) error {
	user, err := fc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var input ReportInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var post models.ForumPost
	if err := fc.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	report := models.PostReport{
		PostID:     post.ID,
		ReportedBy: user.ID,
		Reason:     input.Reason,
		Status:     "pending",
	}

	if err := fc.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create report",
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Report submitted",
	})
}

func (fc *ForumController) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
