// Package task holds the task record and the in-memory task store.
package task

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single task record. It is also the persisted shape.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewID returns a random UUID, or a time-based fallback when the system
// random source is unavailable.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID(time.Now())
	}
	return id.String()
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// fallbackID builds "<unix-millis>-<9 base36 chars>".
// Not collision-proof under clock skew; the store re-rolls on collision.
func fallbackID(now time.Time) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	for i := 0; i < 9; i++ {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}
