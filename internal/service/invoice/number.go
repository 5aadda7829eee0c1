package invoice

import (
	"fmt"
	"math/rand"
	"time"
)

// sequentialNumber formats the persisted-invoice scheme from a month-scoped
// count. Counting then inserting is racy under concurrent generation; the
// duplicate window is accepted.
func sequentialNumber(existingInMonth int64, now time.Time) string {
	return fmt.Sprintf("INV-%d-%02d-%04d", now.Year(), int(now.Month()), existingInMonth+1)
}

// randomNumber formats the direct-email scheme. These invoices are never
// persisted, so a random suffix is enough.
func randomNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%03d", now.Format("20060102"), rand.Intn(1000))
}
