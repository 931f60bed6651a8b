package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestNote is a staff annotation on a request. Append/delete only; there
// is no edit operation.
type RequestNote struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	AuthorId  uuid.UUID
	Content   string
	CreatedAt time.Time
}
