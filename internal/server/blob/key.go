package blob

import (
	"crypto/rand"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	maxBaseNameLen = 50
	base36alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// StorageKey derives an object key from the uploader and the original
// filename: "u<userID>_<base>_<unique><ext>", where base is the filename
// without extension truncated to 50 characters, and unique combines the
// current time in base36 with three random base36 characters. Uniqueness
// is probabilistic; the random tail keeps two same-named uploads in the
// same millisecond apart.
func StorageKey(userID int64, originalName string) string {
	ext := path.Ext(originalName)
	base := strings.TrimSuffix(path.Base(originalName), ext)
	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}

	unique := strconv.FormatInt(time.Now().UnixMilli(), 36) + randBase36(3)

	return fmt.Sprintf("u%d_%s_%s%s", userID, base, unique, ext)
}

func randBase36(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	out := make([]byte, n)
	for i, v := range b {
		out[i] = base36alphabet[int(v)%len(base36alphabet)]
	}
	return string(out)
}
