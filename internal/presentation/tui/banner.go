package tui

import (
	"fmt"
	"time"

	"github.com/aretw0/replica/pkg/driver"
	"github.com/muesli/termenv"
)

// StatusLine summarizes a result in one colored line.
func StatusLine(p termenv.Profile, res driver.Result) string {
	if res.Status.Success() {
		mark := p.String("✔ reconstructed").Foreground(p.Color("#34d399")).Bold()
		return fmt.Sprintf("%s %s in %s", mark, res.Dataset, res.Status.Duration.Round(time.Millisecond))
	}
	mark := p.String("✘ fuse_replica failed").Foreground(p.Color("#fb7185")).Bold()
	return fmt.Sprintf("%s on %s (exit code %d)", mark, res.Dataset, res.Status.Code)
}
