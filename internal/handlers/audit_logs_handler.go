package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	reader AuditLogReader
	logger *slog.Logger
}

func NewAuditLogsHandler(reader AuditLogReader, logger *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, ok1 := intQuery(c, "page", 1)
	limit, ok2 := intQuery(c, "limit", 50)
	if !ok1 || !ok2 {
		badRequest(c, "invalid_request")
		return
	}

	f := audit.Filter{
		BusinessID: middleware.BusinessID(c),
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Page:       page,
		Limit:      limit,
	}.Normalize()

	// --------------------------------------------------
	// Filtros opcionais de data
	// --------------------------------------------------

	var ok bool
	if f.From, ok = optionalDate(c.Query("from")); !ok {
		badRequest(c, "invalid_date")
		return
	}
	if f.To, ok = optionalDate(c.Query("to")); !ok {
		badRequest(c, "invalid_date")
		return
	}

	logs, total, err := h.reader.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Page(c, logs, total, f.Page, f.Limit)
}

func optionalDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := schedule.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}
