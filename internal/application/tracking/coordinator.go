// Package tracking orquesta el ciclo de vida del tracker de inventario:
// carga inicial, ediciones de celdas, reconciliación con el remote store,
// fusión de extracciones por imagen y proyecciones para exportar.
package tracking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/application/session"
	"github.com/jhoicas/omnistock-hub/internal/domain"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/internal/domain/tracker"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
	"github.com/jhoicas/omnistock-hub/pkg/metrics"
)

// Coordinator casos de uso del tracker. No guarda estado propio: todo el
// estado mutable vive en la sesión; el remote store es la única fuente
// durable.
type Coordinator struct {
	entries   ports.EntryRemote
	catalog   ports.CatalogRemote
	extractor ports.ExtractionService
	sheets    ports.SheetRenderer
	reports   ports.ReportRenderer
	metrics   *metrics.TrackerMetrics
	log       *logger.Logger
}

// NewCoordinator construye el caso de uso.
func NewCoordinator(
	entries ports.EntryRemote,
	catalog ports.CatalogRemote,
	extractor ports.ExtractionService,
	sheets ports.SheetRenderer,
	reports ports.ReportRenderer,
	m *metrics.TrackerMetrics,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		entries:   entries,
		catalog:   catalog,
		extractor: extractor,
		sheets:    sheets,
		reports:   reports,
		metrics:   m,
		log:       log,
	}
}

// Prime carga el conjunto inicial de entradas tras el login. Las fechas se
// normalizan al instalarse (Replace) para que un timestamp UTC del backend
// no parta un día calendario en dos.
func (c *Coordinator) Prime(ctx context.Context, sess *session.Session) error {
	fetched, err := c.entries.FetchEntries(ctx, sess.BackendToken)
	if err != nil {
		return err
	}
	sess.Prime(fetched)
	return nil
}

// Grid produce la vista mensual densa aplicando los filtros de visibilidad.
func (c *Coordinator) Grid(ctx context.Context, sess *session.Session, q dto.GridQuery) (*dto.GridResponse, error) {
	dates, err := tracker.DatesInMonth(q.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	products, err := c.catalog.FetchProducts(ctx, sess.BackendToken)
	if err != nil {
		return nil, err
	}

	filter := tracker.Filter{
		Search:   q.Search,
		Category: q.Category,
		MinStock: q.MinStock,
		MaxStock: q.MaxStock,
	}

	resp := &dto.GridResponse{
		Month:      q.Month,
		Dates:      dates,
		Categories: tracker.Categories(products),
	}
	sess.View(func(s *tracker.Store) {
		visible := filter.VisibleProducts(products, s)
		for _, row := range tracker.Project(s, visible, dates) {
			cells := make([]*int, len(row.Cells))
			for i, cell := range row.Cells {
				if cell.Recorded {
					n := cell.Count
					cells[i] = &n
				}
			}
			resp.Rows = append(resp.Rows, dto.GridRow{
				Product: toProductResponse(row.Product),
				Latest:  s.LatestCount(row.Product.ID),
				Cells:   cells,
			})
		}
		resp.Dirty = s.Dirty()
	})
	return resp, nil
}

// UpsertEntry registra la edición de una celda. Nunca falla por el valor:
// texto no numérico coerciona a 0 (la grilla no rechaza celdas).
func (c *Coordinator) UpsertEntry(sess *session.Session, req dto.UpsertEntryRequest) dto.EntryResponse {
	e := sess.Upsert(req.ProductID, tracker.NormalizeDate(req.Date), req.Count)
	return dto.EntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Date:      e.Date,
		Count:     e.Count,
		UserID:    e.UserID,
		Dirty:     true,
	}
}

// Sync reconcilia con el remote store: empuja el Entry Store completo,
// trae el conjunto autoritativo y lo instala al por mayor. Todo-o-nada: si
// push o fetch fallan, el estado local y el flag dirty quedan intactos.
// Si otra generación de sync arrancó mientras tanto, el resultado se
// descarta (domain.ErrStaleSync) en lugar de reinstalar datos viejos.
func (c *Coordinator) Sync(ctx context.Context, sess *session.Session) (*dto.SyncResponse, error) {
	start := time.Now()
	gen, snapshot := sess.BeginSync()

	if err := c.entries.PushEntries(ctx, sess.BackendToken, snapshot); err != nil {
		sess.FailSync(gen)
		c.metrics.ObserveSync("error", time.Since(start))
		return nil, fmt.Errorf("%w: push: %v", domain.ErrSyncFailed, err)
	}
	fetched, err := c.entries.FetchEntries(ctx, sess.BackendToken)
	if err != nil {
		sess.FailSync(gen)
		c.metrics.ObserveSync("error", time.Since(start))
		return nil, fmt.Errorf("%w: fetch: %v", domain.ErrSyncFailed, err)
	}

	replayed, err := sess.CompleteSync(gen, fetched)
	if err != nil {
		c.metrics.IncStaleSync()
		return nil, err
	}
	c.metrics.ObserveSync("ok", time.Since(start))
	c.log.Info().
		Str("session", sess.ID).
		Int("entries", len(fetched)).
		Int("replayed", replayed).
		Msg("sync completado")

	return &dto.SyncResponse{
		Entries:  len(fetched),
		Replayed: replayed,
		Dirty:    sess.Dirty(),
	}, nil
}

// Scan envía la imagen al servicio de extracción y fusiona las tripletas
// resultantes. Un fallo del servicio es terminal (no se fusiona nada); los
// ítems individuales malformados o con código desconocido solo se cuentan.
func (c *Coordinator) Scan(ctx context.Context, sess *session.Session, req dto.ScanRequest) (*dto.ScanResponse, error) {
	rows, err := c.extractor.ExtractInventory(ctx, req.ImageBase64, req.MimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	merged, skipped, err := c.Ingest(ctx, sess, rows)
	if err != nil {
		return nil, err
	}
	return &dto.ScanResponse{Merged: merged, Skipped: skipped, Dirty: sess.Dirty()}, nil
}

// Ingest fusiona tripletas de extracción con la misma regla de upsert de
// las ediciones manuales, en orden de entrada (la última tripleta de una
// misma celda gana). Los códigos que no resuelven contra el catálogo se
// saltan en silencio; solo se reporta el agregado.
func (c *Coordinator) Ingest(ctx context.Context, sess *session.Session, rows []ports.ExtractionRow) (merged, skipped int, err error) {
	products, err := c.catalog.FetchProducts(ctx, sess.BackendToken)
	if err != nil {
		return 0, 0, err
	}
	byCode := make(map[string]string, len(products))
	for _, p := range products {
		byCode[p.Code] = p.ID
	}

	for _, row := range rows {
		productID, ok := byCode[row.ProductCode]
		if !ok || row.Date == "" {
			skipped++
			continue
		}
		sess.Upsert(productID, tracker.NormalizeDate(row.Date), strconv.Itoa(row.Count))
		merged++
	}
	c.metrics.AddIngested(merged, skipped)
	if skipped > 0 {
		c.log.Warn().Int("skipped", skipped).Msg("tripletas de extracción descartadas")
	}
	return merged, skipped, nil
}

// ExportSheet materializa la proyección plana del mes (código, nombre,
// categoría y una columna por día) como hoja de cálculo.
func (c *Coordinator) ExportSheet(ctx context.Context, sess *session.Session, q dto.GridQuery) ([]byte, error) {
	dates, rows, err := c.projectRows(ctx, sess, q)
	if err != nil {
		return nil, err
	}
	return c.sheets.RenderGrid("Inventario "+q.Month, dates, rows)
}

// ExportReport materializa el reporte PDF de stock actual: una fila por
// producto visible con su conteo más reciente.
func (c *Coordinator) ExportReport(ctx context.Context, sess *session.Session, q dto.GridQuery) ([]byte, error) {
	products, err := c.catalog.FetchProducts(ctx, sess.BackendToken)
	if err != nil {
		return nil, err
	}
	filter := tracker.Filter{Search: q.Search, Category: q.Category, MinStock: q.MinStock, MaxStock: q.MaxStock}

	var report []ports.StockReportRow
	sess.View(func(s *tracker.Store) {
		for _, p := range filter.VisibleProducts(products, s) {
			report = append(report, ports.StockReportRow{
				Code:     p.Code,
				Name:     p.Name,
				Unit:     p.Unit,
				Capacity: p.Capacity,
				Latest:   s.LatestCount(p.ID),
			})
		}
	})
	return c.reports.RenderStockReport("Reporte de Inventario "+q.Month, report)
}

func (c *Coordinator) projectRows(ctx context.Context, sess *session.Session, q dto.GridQuery) ([]string, []tracker.GridRow, error) {
	dates, err := tracker.DatesInMonth(q.Month)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	products, err := c.catalog.FetchProducts(ctx, sess.BackendToken)
	if err != nil {
		return nil, nil, err
	}
	filter := tracker.Filter{Search: q.Search, Category: q.Category, MinStock: q.MinStock, MaxStock: q.MaxStock}

	var rows []tracker.GridRow
	sess.View(func(s *tracker.Store) {
		rows = tracker.Project(s, filter.VisibleProducts(products, s), dates)
	})
	return dates, rows, nil
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Code:     p.Code,
		Name:     p.Name,
		Unit:     p.Unit,
		Capacity: p.Capacity,
		Category: p.Category,
	}
}
