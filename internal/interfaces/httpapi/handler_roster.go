package httpapi

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/stumpline/cricket-auction/internal/usecase"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	rosterExportName  = "cricket-auction-roster.xlsx"
	maxImportBodySize = 8 << 20
)

func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportRoster")
	defer span.End()

	workbook, err := h.rosterService.Export(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+rosterExportName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(workbook)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

// ImportRoster accepts an xlsx upload either as a multipart "file" field
// or as the raw request body.
func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRoster")
	defer span.End()

	body, err := importBody(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer body.Close()

	report, err := h.rosterService.Import(ctx, io.LimitReader(body, maxImportBodySize))
	if err != nil {
		h.logger.WarnContext(ctx, "import roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "roster imported",
		"created", report.Created,
		"skipped", report.Skipped,
		"failures", len(report.Failures),
	)
	writeSuccess(ctx, w, http.StatusOK, importReportDTO{
		Created:  report.Created,
		Skipped:  report.Skipped,
		Failures: report.Failures,
	})
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		return r.Body, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing multipart file field: %v", usecase.ErrInvalidInput, err)
	}
	return file, nil
}
