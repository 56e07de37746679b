package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/tracking"
)

// TrackerHandler expone la grilla mensual, las ediciones de celdas, la
// sincronización con el remote store, el escaneo de planillas y los exports.
type TrackerHandler struct {
	uc *tracking.Coordinator
}

// NewTrackerHandler construye el handler.
func NewTrackerHandler(uc *tracking.Coordinator) *TrackerHandler {
	return &TrackerHandler{uc: uc}
}

// Grid godoc
// @Summary      Grilla mensual densa con filtros
// @Tags         tracker
// @Security     Bearer
// @Produce      json
// @Param        month      query  string  true   "Mes YYYY-MM"
// @Param        search     query  string  false  "Subcadena sobre código o nombre"
// @Param        category   query  string  false  "Categoría exacta"
// @Param        min_stock  query  int     false  "Stock mínimo (conteo más reciente)"
// @Param        max_stock  query  int     false  "Stock máximo (conteo más reciente)"
// @Success      200  {object}  dto.GridResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tracker/grid [get]
func (h *TrackerHandler) Grid(c *fiber.Ctx) error {
	var q dto.GridQuery
	if ok, err := decodeQuery(c, &q); !ok {
		return err
	}
	sess := GetSession(c)
	out, err := h.uc.Grid(c.Context(), sess, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpsertEntry godoc
// @Summary      Registrar o reemplazar el conteo de una celda
// @Tags         tracker
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertEntryRequest  true  "Celda y conteo (texto libre)"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tracker/entries [put]
func (h *TrackerHandler) UpsertEntry(c *fiber.Ctx) error {
	var in dto.UpsertEntryRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	sess := GetSession(c)
	return c.JSON(h.uc.UpsertEntry(sess, in))
}

// Sync godoc
// @Summary      Reconciliar con el remote store (todo-o-nada)
// @Tags         tracker
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResponse
// @Failure      409  {object}  dto.ErrorResponse  "otra sincronización más reciente ganó"
// @Failure      502  {object}  dto.ErrorResponse  "remote store inaccesible; estado local intacto"
// @Router       /api/tracker/sync [post]
func (h *TrackerHandler) Sync(c *fiber.Ctx) error {
	sess := GetSession(c)
	out, err := h.uc.Sync(c.Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Extraer conteos de una foto de planilla y fusionarlos
// @Tags         tracker
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Imagen en base64"
// @Success      200   {object}  dto.ScanResponse
// @Failure      422   {object}  dto.ErrorResponse  "extracción fallida; nada fusionado"
// @Router       /api/tracker/scan [post]
func (h *TrackerHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	sess := GetSession(c)
	out, err := h.uc.Scan(c.Context(), sess, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportSheet godoc
// @Summary      Exportar la grilla mensual como hoja de cálculo XML
// @Tags         tracker
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Param        month  query  string  true  "Mes YYYY-MM"
// @Success      200  {file}  binary
// @Router       /api/tracker/export/sheet [get]
func (h *TrackerHandler) ExportSheet(c *fiber.Ctx) error {
	var q dto.GridQuery
	if ok, err := decodeQuery(c, &q); !ok {
		return err
	}
	sess := GetSession(c)
	raw, err := h.uc.ExportSheet(c.Context(), sess, q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inventario_%s.xls"`, q.Month))
	return c.Send(raw)
}

// ExportPDF godoc
// @Summary      Exportar el reporte de stock actual en PDF
// @Tags         tracker
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  string  true  "Mes YYYY-MM"
// @Success      200  {file}  binary
// @Router       /api/tracker/export/pdf [get]
func (h *TrackerHandler) ExportPDF(c *fiber.Ctx) error {
	var q dto.GridQuery
	if ok, err := decodeQuery(c, &q); !ok {
		return err
	}
	sess := GetSession(c)
	raw, err := h.uc.ExportReport(c.Context(), sess, q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte_%s.pdf"`, q.Month))
	return c.Send(raw)
}
