package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/toolbridge"
)

// Expand turns locators into sources. Local patterns containing glob
// metacharacters are expanded (** matches across directories); URLs and
// plain paths pass through unchanged.
func Expand(patterns []string) ([]toolbridge.DocumentSource, error) {
	var sources []toolbridge.DocumentSource
	for _, p := range patterns {
		if isURL(p) || !strings.ContainsAny(p, "*?[{") {
			sources = append(sources, toolbridge.ParseSource(p))
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern: %s", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", p)
		}
		for _, m := range matches {
			sources = append(sources, toolbridge.ParseSource(m))
		}
	}
	return sources, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "file":
		return true
	}
	return false
}
