package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewLedgerID generates an account or transaction identifier of the form
// "LB" + base36 millisecond timestamp + 6 random base36 characters.
// The timestamp prefix keeps ids roughly sortable; the random suffix makes a
// collision unlikely, not impossible. Callers must treat ids as "probably
// unique".
func NewLedgerID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 6)
	for i := range suffix {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(base36Upper))))
		suffix[i] = base36Upper[n.Int64()]
	}

	return "LB" + ts + string(suffix)
}
