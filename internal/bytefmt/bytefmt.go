// Package bytefmt renders byte counts as human-readable strings for the
// view layer ("0 Bytes", "1.5 KB", "3.25 MB", ...). Units are 1024-based.
package bytefmt

import (
	"math"
	"strconv"
	"strings"
)

var units = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes formats n with up to two decimal places, trimming trailing
// zeros. Non-positive values render as "0 Bytes".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}

	v := float64(n) / math.Pow(1024, float64(i))
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")

	return s + " " + units[i]
}
