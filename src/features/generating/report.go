package generating

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the statistics as a short plain-text report.
func (s Statistics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Dataset statistics ===")
	fmt.Fprintf(w, "Songs:       %d\n", s.Songs)
	fmt.Fprintf(w, "Artists:     %d\n", s.Artists)
	fmt.Fprintf(w, "Genres:      %s\n", strings.Join(s.Genres, ", "))
	fmt.Fprintf(w, "Years:       %d - %d\n", s.YearMin, s.YearMax)
	fmt.Fprintf(w, "Mean plays:  %.0f\n", s.MeanPlayCount)
	fmt.Fprintf(w, "Mean rating: %.1f\n", s.MeanRating)

	fmt.Fprintln(w, "\n=== Songs per genre ===")
	for _, g := range s.Shares {
		fmt.Fprintf(w, "%-11s %4d (%.1f%%)\n", g.Genre, g.Count, g.Percent)
	}
}
