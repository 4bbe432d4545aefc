package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/models"
	"rightsquest/backend/utils"
)

type GroupsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewGroupsController(db *gorm.DB, cfg *config.Config) *GroupsController {
	return &GroupsController{DB: db, Cfg: cfg}
}

// CreateGroupInput defines the request body for creating a chat group.
type CreateGroupInput struct {
	Name                 string   `json:"name" validate:"required,min=2,max=60"`
	ParticipantUsernames []string `json:"participantUsernames" validate:"required,min=1,dive,required"`
}

// AddParticipantInput defines the request body for adding a member.
type AddParticipantInput struct {
	Username string `json:"username" validate:"required"`
}

// GetGroups godoc
// @Summary List the caller's chat groups
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups [get]
func (gc *GroupsController) GetGroups(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var groups []models.ChatGroup
	err = gc.DB.Preload("Members").
		Joins("JOIN group_members ON group_members.chat_group_id = chat_groups.id").
		Where("group_members.user_id = ?", userID).
		Find(&groups).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch groups",
		})
	}

	return c.JSON(fiber.Map{
		"groups": groups,
	})
}

// CreateGroup godoc
// @Summary Create a chat group
// @Description Creates a room with the named participants; the creator is
// always a member
// @Tags groups
// @Accept json
// @Produce json
// @Param input body CreateGroupInput true "Group data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups [post]
func (gc *GroupsController) CreateGroup(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var creator models.User
	if err := gc.DB.First(&creator, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	// Resolve every named participant up front so a typo rejects the
	// whole request instead of creating a half-filled group.
	var participants []models.User
	if err := gc.DB.Where("username IN ?", input.ParticipantUsernames).Find(&participants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if len(participants) != len(input.ParticipantUsernames) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "One or more usernames not found",
		})
	}

	group := models.ChatGroup{
		Name:      input.Name,
		RoomID:    uuid.NewString(),
		CreatedBy: creator.ID,
	}

	members := []models.GroupMember{
		{UserID: creator.ID, Username: creator.Username},
	}
	for _, p := range participants {
		if p.ID == creator.ID {
			continue
		}
		members = append(members, models.GroupMember{UserID: p.ID, Username: p.Username})
	}
	group.Members = members

	if err := gc.DB.Create(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create group",
		})
	}

	return c.JSON(fiber.Map{
		"group": group,
	})
}

// AddParticipant godoc
// @Summary Add a member to a chat group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param input body AddParticipantInput true "Member username"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups/{id}/participants [post]
func (gc *GroupsController) AddParticipant(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	groupID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var input AddParticipantInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var group models.ChatGroup
	if err := gc.DB.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Group not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Only existing members may invite.
	var membership models.GroupMember
	if err := gc.DB.Where("chat_group_id = ? AND user_id = ?", group.ID, userID).First(&membership).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not a member of this group",
		})
	}

	var user models.User
	if err := gc.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	member := models.GroupMember{
		ChatGroupID: group.ID,
		UserID:      user.ID,
		Username:    user.Username,
	}
	if err := gc.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Already a member",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not add member",
		})
	}

	return c.JSON(fiber.Map{
		"member": member,
	})
}
