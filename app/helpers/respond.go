// Package helpers carries the JSON mutation envelope and shared form
// validation used by every AJAX-facing handler.
package helpers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate checks form payload structs; tags drive the required/numeric
// checks that must pass before any write happens.
var Validate = validator.New()

// Success writes the mutation envelope: a single-element array holding one
// object with status, msg and any operation-specific extras.
func Success(c *fiber.Ctx, msg string, extra fiber.Map) error {
	payload := fiber.Map{"status": "success", "msg": msg}
	for k, v := range extra {
		payload[k] = v
	}
	return c.JSON([]fiber.Map{payload})
}

// Error writes the mutation envelope for a failure outcome.
func Error(c *fiber.Ctx, msg string) error {
	return c.JSON([]fiber.Map{{"status": "error", "msg": msg}})
}

// FormErrorMsg maps a validation failure to the envelope message: missing
// required fields report incompleteMsg, malformed values (such as a
// non-numeric number field) report incompatibleMsg.
func FormErrorMsg(err error, incompleteMsg, incompatibleMsg string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return incompleteMsg
			}
		}
	}
	return incompatibleMsg
}
