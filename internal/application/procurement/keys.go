package procurement

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Receipt idempotency keys come in two layers. A client-provided key is
// hashed with the site so the same key at two sites never collides. Without
// one, the key is derived from the payload itself, so an exact retry of the
// same receive produces the same key and replays instead of double-counting.
// Per-line movement keys are derived from the receipt key, which makes the
// receipt and its movements stand or fall as one idempotent unit.

func sha256Hex(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ReceiptKeyFromHeader builds the receipt key from a client-provided
// idempotency key, scoped to the site.
func ReceiptKeyFromHeader(siteID int64, provided string) string {
	return sha256Hex(fmt.Sprintf("GR-IDEMP:%d:%s", siteID, strings.TrimSpace(provided)))
}

// DeriveReceiptKey builds the receipt key from the payload when the client
// supplied none. Lines are sorted by product so ordering differences in the
// retry do not change the key.
func DeriveReceiptKey(siteID, poID, toLocationID int64, receivedAt time.Time, lines []ReceiptLineInput) string {
	sorted := make([]ReceiptLineInput, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	parts := make([]string, 0, len(sorted))
	for _, ln := range sorted {
		parts = append(parts, fmt.Sprintf("%d=%d", ln.ProductID, ln.QtyReceived))
	}
	raw := fmt.Sprintf("GR:%d:%d:%d:%s:%s",
		siteID, poID, toLocationID,
		receivedAt.UTC().Format(time.RFC3339),
		strings.Join(parts, ","))
	return sha256Hex(raw)
}

// MovementKeyForReceipt builds the idempotency key of one receipt line's
// stock movement.
func MovementKeyForReceipt(receiptKey string, productID, toLocationID int64, receivedAt time.Time, qty int64) string {
	raw := fmt.Sprintf("GRMOVE:%s:%d:%d:%s:%d",
		receiptKey, productID, toLocationID,
		receivedAt.UTC().Format(time.RFC3339), qty)
	return sha256Hex(raw)
}
