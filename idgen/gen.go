package idgen

import "github.com/google/uuid"

const EntryPrefix = "entry-"

// New returns a random identifier starting with prefix.
func New(prefix string) string {
	return prefix + uuid.NewString()
}
