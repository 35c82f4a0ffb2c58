package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMonthlyItems(t *testing.T) {
	rows := make([]MonthlyRow, 0, 12)
	counts := map[int]int64{}
	for m := 1; m <= 12; m++ {
		rows = append(rows, MonthlyRow{Month: m, Orders: int64(m), Revenue: float64(m) * 10})
		counts[m] = int64(m * 3)
	}

	mergeMonthlyItems(rows, counts)

	for _, r := range rows {
		assert.Equal(t, int64(r.Month*3), r.Items, "month %d", r.Month)
	}
}

func TestMergeMonthlyItemsMissingMonth(t *testing.T) {
	rows := []MonthlyRow{{Month: 2, Orders: 1}, {Month: 7, Orders: 4}}

	mergeMonthlyItems(rows, map[int]int64{7: 9})

	assert.Equal(t, int64(0), rows[0].Items)
	assert.Equal(t, int64(9), rows[1].Items)
}
