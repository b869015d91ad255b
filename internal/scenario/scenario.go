// Package scenario stores co-ownership projects, reads and writes the
// scenario file format, and guards every change with the project
// invariants and the lot ceiling.
package scenario

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/castor/internal/project"
)

// Scenario is a named, stored project.
type Scenario struct {
	ID        uuid.UUID
	Name      string
	Project   project.Project
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
