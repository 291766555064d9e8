package models

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform error body: {"error": "..."}.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}
