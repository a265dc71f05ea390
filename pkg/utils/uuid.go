package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// NewRequestID returns a short-lived correlation id for logs and responses.
func NewRequestID() string {
	return uuid.New().String()
}

// ReceiptNumber formats a sale id the way it is printed on the slip.
func ReceiptNumber(saleID uint) string {
	return fmt.Sprintf("#%06d", saleID)
}

// ExportFileName builds "<base>-YYYY-MM-DD.<ext>", defaulting the base to pos-backup.
func ExportFileName(base, date, ext string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "pos-backup"
	}
	return base + "-" + date + "." + ext
}
