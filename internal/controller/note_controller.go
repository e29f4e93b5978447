package controller

import (
	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/serverutils"
	"notefiber-editor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	middleware  []fiber.Handler
}

// NewNoteController mounts the note routes behind the given middleware, e.g.
// serverutils.JwtMiddleware.
func NewNoteController(noteService service.INoteService, middleware ...fiber.Handler) INoteController {
	return &noteController{
		noteService: noteService,
		middleware:  middleware,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	for _, mw := range c.middleware {
		h.Use(mw)
	}
	h.Get(":id", c.Show)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	res, err := c.noteService.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
