package model

import (
	"strings"

	"github.com/google/uuid"
)

// importNamespace scopes IDs derived for imported nodes.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bms:bookmark-import"))

// GenerateUUID creates a new UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// StableID derives a UUID from the given path parts. The same parts always
// give the same ID, so imported nodes keep their identity across loads.
func StableID(parts ...string) string {
	return uuid.NewSHA1(importNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}
