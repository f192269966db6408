package models

const (
	StatusAvailable = "available"
	StatusRented    = "rented"
)

const (
	ResourceProperties = "properties"
	ResourceBilling    = "billing"
)

// Row action names. The renderer attaches these to rows; the server's
// dispatch table maps them to handlers.
const (
	ActionDelete = "delete"
	ActionEdit   = "edit"
	ActionInfo   = "info"
)

const (
	// DefaultCurrencyGlyph prefixes rendered price cells.
	DefaultCurrencyGlyph = "₹"

	// DefaultStoreTimeoutSeconds bounds every record store round trip.
	DefaultStoreTimeoutSeconds = 10

	// DefaultStateTTL is how long operator UI state is kept in Redis.
	DefaultStateTTL = 24 * 60 * 60 // seconds

	// DateLayout is the booking date format used across store and UI.
	DateLayout = "2006-01-02"
)
