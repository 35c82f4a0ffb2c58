package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderNumber builds a human-facing identifier like ORD-20250131-9F2C41AB.
// The uuid suffix keeps it unique without a counter table.
func OrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
