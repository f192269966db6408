package models

// UIState is the per-operator screen state worth remembering between
// visits: the dragged position of the info overlay widget and the last
// export format used. Losing it is harmless.
type UIState struct {
	OperatorID string `json:"operator_id"`
	WidgetX    int    `json:"widget_x"`
	WidgetY    int    `json:"widget_y"`
	LastExport string `json:"last_export,omitempty"`
}
