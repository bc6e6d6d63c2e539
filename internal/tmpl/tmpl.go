// Package tmpl implements the __NAME__ placeholder substitution used to
// render both env-level and inline templates, and to render shell lines
// before they're handed to the process executor.
package tmpl

import (
	"fmt"
	"strings"

	"github.com/shelltab/shelltab/internal/valueprovider"
)

// Render replaces every occurrence of __NAME__ in text with the resolved
// value of the matching provider. Lookup is case-sensitive and exact;
// placeholders with no matching provider are left untouched, so scripts that
// happen to contain unrelated double-underscore sequences aren't corrupted.
// Providers are only resolved if their placeholder actually appears in text.
func Render(text string, values map[string]valueprovider.Provider) (string, error) {
	for name, provider := range values {
		placeholder := "__" + name + "__"
		if !strings.Contains(text, placeholder) {
			continue
		}
		value, err := provider.GetValue()
		if err != nil {
			return "", fmt.Errorf("rendering placeholder %q: %w", placeholder, err)
		}
		text = strings.ReplaceAll(text, placeholder, value)
	}
	return text, nil
}
