package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

type Formatter struct{}

func NewFormatter() Formatter {
	return Formatter{}
}

func (f Formatter) Format(report Report, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatTable(report), nil
	case FormatJSON:
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	default:
		return "", ErrUnknownFormat
	}
}

func formatTable(report Report) string {
	var buffer bytes.Buffer

	fmt.Fprintf(
		&buffer,
		"Scanned %d file(s): %d dependencies, %d unresolved\n\n",
		report.Summary.FileCount,
		report.Summary.DependencyCount,
		report.Summary.UnresolvedCount,
	)

	if len(report.Dependencies) > 0 {
		writer := tabwriter.NewWriter(&buffer, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(writer, "DEPENDENCY\tKIND\tREFERENCES")
		for _, dep := range report.Dependencies {
			_, _ = fmt.Fprintf(writer, "%s\t%s\t%d\n", dep.Name, dep.Kind, len(dep.Locations))
		}
		_ = writer.Flush()
	} else {
		buffer.WriteString("No static dependencies found.\n")
	}

	if len(report.Unresolved) > 0 {
		buffer.WriteString("\nUnresolved:\n")
		for _, diag := range report.Unresolved {
			fmt.Fprintf(&buffer, "  %s: %s (%s)\n", diag.Location, diag.Expression, diag.Reason)
		}
	}

	appendWarnings(&buffer, report.Warnings)
	return buffer.String()
}

func appendWarnings(buffer *bytes.Buffer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	buffer.WriteString("\nWarnings:\n")
	for _, warning := range warnings {
		fmt.Fprintf(buffer, "  %s\n", warning)
	}
}
