package util

import (
	"github.com/gosimple/slug"
)

// ToSlug lowercases and strips everything but [a-z0-9-].
func ToSlug(s string) string {
	return slug.Make(s)
}
