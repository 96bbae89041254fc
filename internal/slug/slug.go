// Package slug derives URL-safe identifiers from entity display names.
//
// Slugs are unique within a campaign (enforced by the store) and change
// whenever the display name changes. A slug change is what triggers the
// cross-document link rewrite, so derivation must be deterministic: the
// same name always yields the same slug.
package slug

import "strings"

// Make derives a slug from a display name. Lower-cases the name and
// collapses every run of non-alphanumeric characters into a single hyphen.
// "Goblin Chief Klarg" becomes "goblin-chief-klarg".
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
