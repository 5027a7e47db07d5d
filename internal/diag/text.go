package diag

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes each diagnosis as
//
//	file:line:col: severity[rule]: summary
//
// followed by help lines indented with "  = help: ".
func WriteText(w io.Writer, ds []Diagnosis) error {
	for _, d := range ds {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
		if d.Help == "" {
			continue
		}
		for _, line := range strings.Split(d.Help, "\n") {
			if _, err := fmt.Fprintf(w, "  = help: %s\n", line); err != nil {
				return err
			}
		}
	}

	return nil
}
