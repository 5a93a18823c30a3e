// Package validate evaluates a propagation result against the fixed rule
// set and produces human-facing diagnostics. Diagnostics are ephemeral:
// every pass regenerates the full list, and identities derive from the
// rule name plus the owning entity so an unchanged snapshot yields an
// identical set.
package validate

import (
	"time"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
)

// Severity ranks a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Diagnostic is one validation finding. OwnerID names the component or
// wire network the finding belongs to.
type Diagnostic struct {
	ID        string       `json:"id"`
	Severity  Severity     `json:"severity"`
	OwnerID   string       `json:"ownerId"`
	Kind      modules.Kind `json:"-"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}
