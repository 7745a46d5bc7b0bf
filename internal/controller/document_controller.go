package controller

import (
	"errors"
	"io"

	"github.com/CRautomation-ai/showcase-agent/internal/pkg/serverutils"
	"github.com/CRautomation-ai/showcase-agent/internal/service"
	"github.com/CRautomation-ai/showcase-agent/pkg/extract"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Post("/upload", serverutils.JwtMiddleware, c.Upload)
	r.Delete("/documents", serverutils.JwtMiddleware, c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No files provided")
	}

	files := make([]service.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unreadable file: "+fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unreadable file: "+fh.Filename)
		}
		files = append(files, service.UploadFile{
			Filename: fh.Filename,
			Data:     data,
		})
	}

	res, err := c.documentService.Upload(ctx.Context(), files)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFileType) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()+". Supported types: PDF, DOCX, DOC"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	res, err := c.documentService.ClearAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete documents", res))
}

func (c *documentController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.documentService.Health(ctx.Context()))
}
