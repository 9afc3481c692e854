package common

import (
	"math"
	"strconv"
)

// FormatRupiah renders an amount the way the UI shows prices (id-ID currency,
// no fraction digits), e.g. 150000 -> "Rp 150.000".
func FormatRupiah(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	grouped := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, c)
	}

	if neg {
		return "-Rp " + string(grouped)
	}
	return "Rp " + string(grouped)
}
