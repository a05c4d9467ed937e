package id

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

/**
 * @file: id.go
 * @description: id helpers
 */

// GetUUID generates a new UUID
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a new UUID without dashes
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetXID generates a short sortable id, used for request ids
func GetXID() string {
	return xid.New().String()
}
