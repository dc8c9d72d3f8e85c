package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBillNumber generates a bill number of the form
// <prefix><yyyymmdd>-<random>. The date stamp plus random suffix gives
// enough entropy for a single owner's ledger; true collision freedom is
// delegated to the unique constraint on the column.
func NewBillNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return prefix + now.Format("20060102") + "-" + suffix
}
