package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/application/sandbox"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

// RecordHandler CRUD de un recurso (protegido). Una instancia por descriptor.
type RecordHandler struct {
	svc  *sandbox.RecordService
	desc resource.Descriptor
}

// NewRecordHandler construye el handler.
func NewRecordHandler(svc *sandbox.RecordService, desc resource.Descriptor) *RecordHandler {
	return &RecordHandler{svc: svc, desc: desc}
}

// List godoc
// @Summary      Listar registros
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "user | customers | products | orders | order-items | categories"
// @Success      200  {object}  dto.ListEnvelope
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /{resource} [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	docs, err := h.svc.List(c.UserContext(), h.desc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": docs})
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "recurso"
// @Param        id        path  string  true  "ID del registro"
// @Success      200  {object}  dto.RecordEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{resource}/{id} [get]
func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.svc.Get(c.UserContext(), h.desc, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": doc})
}

// Create godoc
// @Summary      Crear registro
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "recurso"
// @Param        body      body  object  true  "campos del registro"
// @Success      201  {object}  dto.RecordEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /{resource} [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	in, err := parseDocument(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.svc.Create(c.UserContext(), h.desc, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": h.desc.Messages.Created, "data": doc})
}

// Update godoc
// @Summary      Actualizar registro (parcial, PATCH o PUT según el recurso)
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "recurso"
// @Param        id        path  string  true  "ID del registro"
// @Param        body      body  object  true  "campos a actualizar"
// @Success      200  {object}  dto.RecordEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{resource}/{id} [patch]
func (h *RecordHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	in, err := parseDocument(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.svc.Update(c.UserContext(), h.desc, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": h.desc.Messages.Updated, "data": doc})
}

// Delete godoc
// @Summary      Borrar registro
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "recurso"
// @Param        id        path  string  true  "ID del registro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{resource}/{id} [delete]
func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), h.desc, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: h.desc.Messages.Deleted})
}

// parseDocument decodifica un objeto JSON conservando los números tal cual.
func parseDocument(body []byte) (repository.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc repository.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = repository.Document{}
	}
	return doc, nil
}
