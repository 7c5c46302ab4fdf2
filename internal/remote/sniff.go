package remote

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/rubiksify"
)

// Sniff interprets a plain-text response body. The external endpoints signal
// failure by putting words such as "error" or "fail" somewhere in the body,
// so any case-insensitive match of a marker turns the whole response into an
// ErrProtocol carrying the body text. It is the only place that inspects
// bodies for failure markers.
func Sniff(body string, markers ...string) error {
	lower := strings.ToLower(body)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return fmt.Errorf("%w: %s", rubiksify.ErrProtocol, strings.TrimSpace(body))
		}
	}
	return nil
}
