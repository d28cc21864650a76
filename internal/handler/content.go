package handler

import (
	"bytes"
	"errors"
	"fmt"

	"edugen/internal/app"
	"edugen/internal/domain"
	"edugen/internal/dto"
	"edugen/internal/export"
	"edugen/internal/logger"
	"edugen/internal/render"
	"edugen/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContentHandler serves the generation form, the content pane and the
// Question Bank.
type ContentHandler struct {
	controller *app.Controller
	validator  *validation.Validator
	storage    domain.KeyValueStore
	backend    string
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(controller *app.Controller, storage domain.KeyValueStore, backend string) *ContentHandler {
	return &ContentHandler{
		controller: controller,
		validator:  validation.NewValidator(),
		storage:    storage,
		backend:    backend,
	}
}

// GetOptions handles GET /api/options
func (h *ContentHandler) GetOptions(c *fiber.Ctx) error {
	resp := dto.OptionsResponse{Defaults: domain.DefaultFormData()}
	for _, b := range domain.Boards {
		resp.Boards = append(resp.Boards, dto.Option{Value: string(b), Label: string(b)})
	}
	for _, cl := range domain.ClassLevels {
		resp.ClassLevels = append(resp.ClassLevels, dto.Option{Value: cl, Label: cl})
	}
	for _, r := range domain.RequestTypes {
		resp.RequestTypes = append(resp.RequestTypes, dto.Option{Value: string(r), Label: r.Label()})
	}
	for _, l := range domain.Languages {
		resp.Languages = append(resp.Languages, dto.Option{Value: string(l), Label: l.Label()})
	}
	for _, d := range domain.Difficulties {
		resp.Difficulties = append(resp.Difficulties, dto.Option{Value: string(d), Label: d.Label()})
	}
	for _, e := range domain.ExamTypes {
		resp.ExamTypes = append(resp.ExamTypes, dto.Option{Value: e, Label: e})
	}
	return c.JSON(resp)
}

// Generate handles POST /api/generate. The request blocks until the model
// answers; a failed generation is reported in the returned state, not as an
// HTTP error.
func (h *ContentHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	form, errs := h.validator.ValidateGenerateRequest(req)
	if len(errs) > 0 {
		return errs
	}

	st, err := h.controller.Generate(c.UserContext(), form)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStateResponse(st))
}

// GetState handles GET /api/state
func (h *ContentHandler) GetState(c *fiber.Ctx) error {
	return c.JSON(dto.NewStateResponse(h.controller.Snapshot()))
}

// GetContentHTML handles GET /api/content/html
func (h *ContentHandler) GetContentHTML(c *fiber.Ctx) error {
	topic, md, err := h.controller.Markdown()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if c.QueryBool("page") {
		return c.Send(render.Page(export.Title(topic), md))
	}
	return c.Send(render.HTML(md))
}

// Export handles GET /api/export?format=md|txt|pdf
func (h *ContentHandler) Export(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format", string(export.FormatMarkdown)))
	if err != nil {
		return err
	}
	topic, md, err := h.controller.Markdown()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, topic, md); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return domainErr
		}
		logger.Get().Error("Failed to export content", zap.String("format", string(format)), zap.Error(err))
		return domain.NewInternalError("failed to export content", err)
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename(topic, format)))
	return c.Send(buf.Bytes())
}

// ScoreQuiz handles POST /api/quiz/score
func (h *ContentHandler) ScoreQuiz(c *fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateScoreRequest(req); len(errs) > 0 {
		return errs
	}

	score, err := h.controller.Score(req.Selections)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewScoreResponse(score))
}

// SaveQuiz handles POST /api/quiz/save
func (h *ContentHandler) SaveQuiz(c *fiber.Ctx) error {
	saved, err := h.controller.SaveActiveQuiz(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// ListBank handles GET /api/bank
func (h *ContentHandler) ListBank(c *fiber.Ctx) error {
	return c.JSON(dto.NewBankResponse(h.controller.Bank()))
}

// LoadSaved handles POST /api/bank/:id/load
func (h *ContentHandler) LoadSaved(c *fiber.Ctx) error {
	id, _ := c.Locals("validated_quiz_id").(string)
	st, err := h.controller.LoadQuiz(id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStateResponse(st))
}

// DeleteSaved handles DELETE /api/bank/:id
func (h *ContentHandler) DeleteSaved(c *fiber.Ctx) error {
	id, _ := c.Locals("validated_quiz_id").(string)
	if err := h.controller.DeleteQuiz(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Health handles GET /api/healthz
func (h *ContentHandler) Health(c *fiber.Ctx) error {
	if err := h.storage.Ping(c.UserContext()); err != nil {
		logger.Get().Warn("Storage health check failed", zap.String("backend", h.backend), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Storage: h.backend})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Storage: h.backend})
}
