package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"rentadmin/internal/metrics"
	"rentadmin/internal/models"
	"rentadmin/internal/overlay"
	"rentadmin/internal/view"
)

// Default overlay position, used until the operator drags the card.
const (
	defaultWidgetX = 60
	defaultWidgetY = 120
)

var errInvalidRecordRef = errors.New("invalid record reference")

// selection loads one record and picks its overlay fields.
func (s *Server) selection(r *http.Request) (overlay.Selection, bool, error) {
	resource := r.URL.Query().Get("resource")
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		return overlay.Selection{}, false, errInvalidRecordRef
	}

	glyph := s.cfg.UI.CurrencyGlyph
	switch resource {
	case models.ResourceProperties:
		props, err := s.store.FetchProperties(r.Context())
		if err != nil {
			return overlay.Selection{}, false, err
		}
		for _, p := range props {
			if p.ID == id {
				return overlay.PropertySelection(p, glyph), true, nil
			}
		}
	case models.ResourceBilling:
		rows, err := s.store.FetchBilling(r.Context())
		if err != nil {
			return overlay.Selection{}, false, err
		}
		for _, c := range rows {
			if c.ID == id {
				return overlay.BillingSelection(c, glyph), true, nil
			}
		}
	default:
		return overlay.Selection{}, false, errInvalidRecordRef
	}
	return overlay.Selection{}, false, nil
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel, found, err := s.selection(r)
	if err == errInvalidRecordRef {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.storeError(w, err, "load record for overlay")
		return
	}
	if !found {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	x, y := defaultWidgetX, defaultWidgetY
	if state, err := s.states.GetState(r.Context(), operatorID(r.Context())); err == nil && state != nil {
		x, y = state.WidgetX, state.WidgetY
	}

	returnTo := sanitizeReturn(r.URL.Query().Get("return"))

	qr := url.Values{}
	qr.Set("resource", r.URL.Query().Get("resource"))
	qr.Set("id", r.URL.Query().Get("id"))

	page := s.newPage(r, "Record Info", "", controls{SortCol: -1})
	page.Card = &view.Card{
		Lines:  sel.Lines(),
		QRPath: "/info/qr.png?" + qr.Encode(),
		X:      x,
		Y:      y,
		Back:   returnTo,
	}
	metrics.IncPage("info")
	s.render(w, "info", page)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel, found, err := s.selection(r)
	if err == errInvalidRecordRef {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.storeError(w, err, "load record for code")
		return
	}
	if !found {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	png, err := sel.QR(256)
	if err != nil {
		s.logger.Error().Err(err).Msg("record code generation failed")
		http.Error(w, "code generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// handleUIState reads and writes the operator's remembered screen
// state. The overlay's drag handler PUTs here.
func (s *Server) handleUIState(w http.ResponseWriter, r *http.Request) {
	operator := operatorID(r.Context())

	switch r.Method {
	case http.MethodGet:
		state, err := s.states.GetState(r.Context(), operator)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "state unavailable")
			return
		}
		if state == nil {
			state = &models.UIState{OperatorID: operator, WidgetX: defaultWidgetX, WidgetY: defaultWidgetY}
		}
		writeJSON(w, http.StatusOK, state)

	case http.MethodPut:
		var body struct {
			WidgetX *int `json:"widget_x"`
			WidgetY *int `json:"widget_y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.WidgetX == nil || body.WidgetY == nil {
			writeError(w, http.StatusBadRequest, "widget_x and widget_y are required")
			return
		}

		state, err := s.states.GetState(r.Context(), operator)
		if err != nil || state == nil {
			state = &models.UIState{OperatorID: operator}
		}
		state.WidgetX = *body.WidgetX
		state.WidgetY = *body.WidgetY

		if err := s.states.SetState(r.Context(), state); err != nil {
			writeError(w, http.StatusInternalServerError, "state not saved")
			return
		}
		writeJSON(w, http.StatusOK, state)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
