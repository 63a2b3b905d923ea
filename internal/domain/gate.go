package domain

import (
	"strings"
	"time"
)

type Gate struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Terminal  string    `json:"terminal,omitempty"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeGateCode applies the canonical storage form: trimmed, uppercase.
func NormalizeGateCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
