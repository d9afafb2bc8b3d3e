package utils

import "github.com/gofiber/fiber/v2"

// Envelope is the JSON body wrapping every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func write(c *fiber.Ctx, status int, body Envelope) error {
	if body.Message == "" {
		if body.Success {
			body.Message = "success"
		} else {
			body.Message = "error"
		}
	}

	return c.Status(status).JSON(body)
}

// SendSuccess writes a 200 envelope carrying the payload.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// SendSuccessWithStatus writes a success envelope with an explicit status,
// typically 201 for resource creation.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return write(c, status, Envelope{Success: true, Message: message, Data: data})
}

// SendError writes a failure envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	return write(c, status, Envelope{Message: message})
}
