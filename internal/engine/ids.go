package engine

import (
	"github.com/google/uuid"

	"github.com/idilsaglam/checklist/internal/model"
)

// IDSource hands out item ids that are unique for the process lifetime.
type IDSource func() model.ItemID

// NewID returns a time-ordered UUID v7, falling back to v4.
func NewID() model.ItemID {
	id, err := uuid.NewV7()
	if err != nil {
		return model.ItemID(uuid.New().String())
	}
	return model.ItemID(id.String())
}
