package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"rentadmin/internal/export"
	"rentadmin/internal/metrics"
	"rentadmin/internal/models"
	"rentadmin/internal/view"
)

// buildTable re-fetches and rebuilds the named table. Exports go
// through the same renderer as pages, so they see the same cells.
func (s *Server) buildTable(ctx context.Context, key string) (*view.Table, error) {
	switch key {
	case models.ResourceProperties:
		props, err := s.store.FetchProperties(ctx)
		if err != nil {
			return nil, err
		}
		return s.renderer.PropertyTable(props), nil
	case "customers":
		rows, err := s.store.FetchBilling(ctx)
		if err != nil {
			return nil, err
		}
		return s.renderer.CustomerTable(rows), nil
	case models.ResourceBilling:
		rows, err := s.store.FetchBilling(ctx)
		if err != nil {
			return nil, err
		}
		return s.renderer.BillingTable(rows), nil
	}
	return nil, fmt.Errorf("unknown table %q", key)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.TrimPrefix(r.URL.Path, "/export/")
	if format != "csv" && format != "xlsx" && format != "print" {
		http.NotFound(w, r)
		return
	}

	key := r.URL.Query().Get("table")
	table, err := s.buildTable(r.Context(), key)
	if err != nil {
		if isStoreError(err) {
			s.storeError(w, err, "fetch records for export")
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	c := parseControls(r)
	c.apply(table)

	metrics.IncExport(format)
	s.rememberExport(r.Context(), format)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.FileName(key, "csv")))
		if err := export.WriteCSV(w, table); err != nil {
			s.logger.Error().Err(err).Msg("csv export failed")
		}

	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteExcel(&buf, table); err != nil {
			s.logger.Error().Err(err).Msg("excel export failed")
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		name := export.FileName(key, "xlsx")
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = w.Write(buf.Bytes())
		s.archiveExport(name, buf.Bytes())

	case "print":
		page := &view.Page{
			Title:   table.Title,
			SortCol: c.SortCol,
			SortDir: c.SortDir,
			Query:   c.Query,
			Table:   table,
		}
		s.render(w, "print", page)
	}
}

// archiveExport keeps a copy of generated workbooks under the
// configured exports directory. Best effort; the download already went
// out.
func (s *Server) archiveExport(name string, data []byte) {
	dir := s.cfg.Exports.Path
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("export directory unavailable")
		return
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Warn().Err(err).Str("file_path", path).Msg("export archive failed")
		return
	}
	s.logger.Info().Str("file_path", path).Msg("export archived")
}

// rememberExport records the operator's last export format; failures
// only cost the memory, not the export.
func (s *Server) rememberExport(ctx context.Context, format string) {
	operator := operatorID(ctx)
	if operator == "" {
		return
	}
	state, err := s.states.GetState(ctx, operator)
	if err != nil || state == nil {
		state = &models.UIState{OperatorID: operator, WidgetX: defaultWidgetX, WidgetY: defaultWidgetY}
	}
	state.LastExport = format
	if err := s.states.SetState(ctx, state); err != nil {
		s.logger.Debug().Err(err).Msg("last export format not remembered")
	}
}
