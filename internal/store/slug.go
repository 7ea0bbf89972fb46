package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFallback is the base token used when a title normalizes to nothing.
const slugFallback = "entry"

// stripMarks decomposes characters and drops the combining marks, turning
// "Komödie: Café" into "Komodie: Cafe".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes free text into a URL-safe slug: lowercase, diacritics
// stripped, "&" spelled out, and runs of anything else collapsed to single
// hyphens. Deterministic; returns "" for empty or all-symbol input.
func Slugify(input string) string {
	folded, _, err := transform.String(stripMarks, input)
	if err != nil {
		folded = input
	}

	s := strings.ToLower(folded)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// uniqueSlug resolves base against the slugs already stored, probing
// "base", "base-2", "base-3", ... until a free value is found. Callers must
// run it in the same transaction as the insert or update that writes the
// slug; the unique index on contents.slug backstops the race between two
// concurrent probes.
func uniqueSlug(q rowQuerier, base string) (string, error) {
	if base == "" {
		base = slugFallback
	}

	exists := func(slug string) (bool, error) {
		var one int
		err := q.QueryRow(`SELECT 1 FROM contents WHERE slug = ? LIMIT 1`, slug).Scan(&one)
		if err == sql.ErrNoRows {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to probe slug %q: %w", slug, err)
		}
		return true, nil
	}

	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
