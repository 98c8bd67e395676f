package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pinely/internal/domain"
)

// FormatClusters renders each cluster with its ideas numbered 1..n across
// the whole set, the same numbering "pinely pick" accepts.
func FormatClusters(clusters []domain.Cluster, selected string) string {
	if len(clusters) == 0 {
		return Dim("No clusters yet. Run 'pinely dump' first.") + "\n"
	}

	var b strings.Builder
	n := 1
	for i, c := range clusters {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ClusterStyle(i).Bold(true).Render(c.Title) + " " + Dim(fmt.Sprintf("(%d)", len(c.Ideas))) + "\n")
		for _, idea := range c.Ideas {
			marker := "  "
			line := StyleFg.Render(idea)
			if idea == selected {
				marker = StyleGreen.Render("→ ")
				line = StyleBold.Render(idea)
			}
			b.WriteString(fmt.Sprintf("  %s%s %s\n", marker, Dim(fmt.Sprintf("%2d.", n)), line))
			n++
		}
	}
	return b.String()
}

// FormatOrganized renders the result of organizing a dump.
func FormatOrganized(clusters []domain.Cluster, fallback bool) string {
	var b strings.Builder
	b.WriteString(Header("Your clusters") + "\n\n")
	b.WriteString(FormatClusters(clusters, ""))
	b.WriteString("\n" + SourceBadge(fallback) + "\n")
	b.WriteString(Dim("Pick one with 'pinely pick <n>' or 'pinely pick --random'.") + "\n")
	return b.String()
}
