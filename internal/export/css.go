package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/parallax/internal/scene"
)

// StyleSheet renders one frame as CSS rules keyed by element id. Identity
// entries get "transform: none" so stale styles are overwritten.
func StyleSheet(f scene.Frame) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("/* scroll=%g pointer=%s */\n", f.Scroll, f.Pointer))
	for _, e := range f.Entries {
		css := e.Descriptor.CSS()
		if css == "" {
			css = "none"
		}
		sb.WriteString(fmt.Sprintf("#%s { transform: %s; }\n", e.ID, css))
	}
	return sb.String()
}
