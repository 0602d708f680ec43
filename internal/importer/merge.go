package importer

import (
	"strings"

	"github.com/nikbrunner/blink/internal/model"
)

// Merge returns the imported Blinks whose source isn't in existing yet.
// Duplicates within imported are dropped too. skipped counts both.
func Merge(existing, imported []model.Blink) (added []model.Blink, skipped int) {
	seen := make(map[string]bool, len(existing))
	for _, b := range existing {
		if b.Source != "" {
			seen[normalizeSource(b.Source)] = true
		}
	}

	for _, b := range imported {
		key := normalizeSource(b.Source)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		added = append(added, b)
	}
	return added, skipped
}

func normalizeSource(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), "/")
}
