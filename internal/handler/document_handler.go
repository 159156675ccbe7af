package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/middleware"
	"arsip-dokumen/internal/service"
)

const maxUploadSize = 50 << 20 // 50 MiB

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	input := domain.UploadDocumentInput{
		Title:        strings.TrimSpace(c.FormValue("title")),
		Description:  strings.TrimSpace(c.FormValue("description")),
		DocumentType: strings.TrimSpace(c.FormValue("document_type")),
	}
	if input.Title == "" || input.DocumentType == "" {
		return apperror.BadRequest("INVALID_PAYLOAD", "Title and document type are required")
	}
	if len(input.Title) > 255 || len(input.DocumentType) > 100 || len(input.Description) > 5000 {
		return apperror.BadRequest("INVALID_PAYLOAD", "Field length limit exceeded")
	}

	file, closeFile, err := openFormFile(c)
	if err != nil {
		return err
	}
	defer closeFile()

	doc, err := h.documentService.Upload(c.Context(), user, input, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(domain.NewSuccessResponse(doc, "Document uploaded"))
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var filter domain.DocumentFilter
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := domain.DocumentStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			return apperror.BadRequest("INVALID_PAYLOAD", "Unknown document status filter")
		}
		filter.Status = &status
	}
	if docType := strings.TrimSpace(c.Query("document_type")); docType != "" {
		filter.DocumentType = &docType
	}

	result, err := h.documentService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(result, ""))
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "documentId")
	if err != nil {
		return err
	}

	doc, err := h.documentService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(domain.NewSuccessResponse(doc, ""))
}

func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "documentId")
	if err != nil {
		return err
	}

	result, err := h.documentService.Download(c.Context(), user, id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(result.Content)
}

func (h *DocumentHandler) RequestReplace(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "documentId")
	if err != nil {
		return err
	}

	input, err := parseRequestFields(c)
	if err != nil {
		return err
	}

	file, closeFile, err := openFormFile(c)
	if err != nil {
		return err
	}
	defer closeFile()

	req, doc, err := h.documentService.RequestReplace(c.Context(), id, user, domain.ReplaceRequestInput(input), file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(domain.NewSuccessResponse(fiber.Map{
		"request":  req,
		"document": doc,
	}, "Replace request filed"))
}

func (h *DocumentHandler) RequestDelete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "documentId")
	if err != nil {
		return err
	}

	var input domain.DeleteRequestInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.BadRequest("INVALID_PAYLOAD", "Invalid request body")
	}
	if input.ExpectedVersion <= 0 {
		return apperror.BadRequest("INVALID_PAYLOAD", "expected_version must be a positive integer")
	}

	req, doc, err := h.documentService.RequestDelete(c.Context(), id, user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(domain.NewSuccessResponse(fiber.Map{
		"request":  req,
		"document": doc,
	}, "Delete request filed"))
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("INVALID_PAYLOAD", "Invalid id in path")
	}
	return id, nil
}

// parseRequestFields reads the shared multipart fields of a change request.
func parseRequestFields(c *fiber.Ctx) (domain.DeleteRequestInput, error) {
	var input domain.DeleteRequestInput

	version, err := strconv.Atoi(strings.TrimSpace(c.FormValue("expected_version")))
	if err != nil || version <= 0 {
		return input, apperror.BadRequest("INVALID_PAYLOAD", "expected_version must be a positive integer")
	}
	input.ExpectedVersion = version

	if note := strings.TrimSpace(c.FormValue("note")); note != "" {
		if len(note) > 1000 {
			return input, apperror.BadRequest("INVALID_PAYLOAD", "Note too long")
		}
		input.Note = &note
	}

	return input, nil
}

func openFormFile(c *fiber.Ctx) (service.FileUpload, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return service.FileUpload{}, nil, apperror.BadRequest("INVALID_FILE", "A valid file is required")
	}
	if header.Size == 0 || header.Size > maxUploadSize {
		return service.FileUpload{}, nil, apperror.BadRequest("INVALID_FILE", "File is empty or exceeds the size limit")
	}

	f, err := header.Open()
	if err != nil {
		return service.FileUpload{}, nil, apperror.BadRequest("INVALID_FILE", "Could not read uploaded file")
	}

	upload := service.FileUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Reader:   f,
	}
	return upload, func() { f.Close() }, nil
}
