package ctypes

import "time"

// Toast variants mirror the severities a notification surface renders.
const (
	VariantInfo    = "info"
	VariantSuccess = "success"
	VariantWarning = "warning"
	VariantError   = "error"
)

// Toast persistence modes.
const (
	ModeDismissible = "dismissible" // stays until dismissed
	ModePester      = "pester"      // disappears on its own
	ModeSticky      = "sticky"      // cannot be dismissed
)

// Toast is one user-facing notice.
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Variant   string    `json:"variant"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}
