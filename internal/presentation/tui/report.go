package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
)

// Report renders a reconstruction result as markdown.
func Report(res driver.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Reconstruction of %s\n\n", res.Dataset)
	b.WriteString("| Field | Value |\n|---|---|\n")
	row := func(k, v string) {
		fmt.Fprintf(&b, "| %s | %s |\n", k, v)
	}
	row("Run", code(res.RunID))
	row("Binary", code(res.Binary))
	row("Dataset", code(res.DatasetPath))
	row("Mesh", fmt.Sprintf("%s (%s)", code(res.Outputs.MeshPath), presence(res.Outputs.MeshPath)))
	row("ESDF", fmt.Sprintf("%s (%s)", code(res.Outputs.ESDFPath), presence(res.Outputs.ESDFPath)))
	row("Exit code", fmt.Sprintf("%d", res.Status.Code))
	row("Duration", res.Status.Duration.Round(time.Millisecond).String())

	if tail := strings.TrimSpace(res.Status.Stderr); tail != "" && !res.Status.Success() {
		b.WriteString("\n## Stderr (tail)\n\n```\n")
		b.WriteString(tail)
		b.WriteString("\n```\n")
	}
	return b.String()
}

// RunsTable renders stored runs as a markdown table.
func RunsTable(runs []domain.Run) string {
	if len(runs) == 0 {
		return "_No recorded runs._\n"
	}

	var b strings.Builder
	b.WriteString("| Started | Dataset | Outcome | Exit | Duration | Run |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
			r.StartedAt.Format(time.RFC3339),
			r.Dataset,
			r.Outcome,
			r.ExitCode,
			r.Duration.Round(time.Millisecond),
			code(r.ID),
		)
	}
	return b.String()
}

func code(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + s + "`"
}

func presence(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "written"
	}
	return "missing"
}
