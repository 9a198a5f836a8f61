package model

import (
	"time"

	"github.com/google/uuid"
)

// Workflow is the tenant scope every query runs against. All vector and
// graph lookups filter by the workflow ID; no cross-workflow leakage.
type Workflow struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
