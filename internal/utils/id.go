package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewPid returns a short public identifier for URLs (12 hex chars).
func NewPid() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
