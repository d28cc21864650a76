package handler

import (
	"edugen/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under router.
func RegisterRoutes(router fiber.Router, h *ContentHandler) {
	vm := middleware.NewValidationMiddleware()

	router.Get("/healthz", h.Health)
	router.Get("/options", h.GetOptions)
	router.Post("/generate", h.Generate)
	router.Get("/state", h.GetState)
	router.Get("/content/html", h.GetContentHTML)
	router.Get("/export", h.Export)

	quiz := router.Group("/quiz")
	quiz.Post("/score", h.ScoreQuiz)
	quiz.Post("/save", h.SaveQuiz)

	bank := router.Group("/bank")
	bank.Get("/", h.ListBank)
	bank.Post("/:id/load", vm.ValidateQuizID(), h.LoadSaved)
	bank.Delete("/:id", vm.ValidateQuizID(), h.DeleteSaved)
}
