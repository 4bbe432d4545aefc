package controllers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"rightsquest/backend/services"
	"rightsquest/backend/utils"
)

type ChatbotController struct {
	LLM    *services.LLMClient
	Logger *log.Logger
}

func NewChatbotController(llm *services.LLMClient, logger *log.Logger) *ChatbotController {
	return &ChatbotController{LLM: llm, Logger: logger}
}

// ChatInput defines the request body for the chatbot relay.
type ChatInput struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// Chat godoc
// @Summary Chatbot relay
// @Description Forwards the message to the language model and streams the
// reply back as server-sent events terminated by a done marker
// @Tags chatbot
// @Accept json
// @Produce text/event-stream
// @Param input body ChatInput true "User message"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /chatbot [post]
func (cc *ChatbotController) Chat(c *fiber.Ctx) error {
	var input ChatInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	stream, err := cc.LLM.StartChat(input.Message)
	if err != nil {
		cc.Logger.Printf("chatbot upstream error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer stream.Close()

		err := stream.Stream(func(content string) error {
			payload, err := json.Marshal(fiber.Map{"content": content})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			// Mid-stream failures just end the stream; the client sees
			// the missing done marker.
			cc.Logger.Printf("chatbot stream error: %v", err)
			return
		}

		fmt.Fprint(w, "data: {\"done\": true}\n\n")
		w.Flush()
	}))

	return nil
}
