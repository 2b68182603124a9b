package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/guya/pkg/app/styles"
	"github.com/kerbaras/guya/pkg/services"
)

// ProgressTracker keeps the latest progress event of each running export.
type ProgressTracker struct {
	exports map[string]*services.ExportProgress
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		exports: make(map[string]*services.ExportProgress),
		width:   width,
	}
}

func progressKey(p services.ExportProgress) string {
	return p.BookID + ":" + p.Chapter + ":" + p.Group
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = max(width, 10)
}

func (p *ProgressTracker) Update(progress services.ExportProgress) {
	prog := progress
	p.exports[progressKey(progress)] = &prog
}

// Finished removes exports that completed. Failed exports stay visible until
// Clear.
func (p *ProgressTracker) Finished() {
	for k, prog := range p.exports {
		if prog.Status == services.StatusComplete {
			delete(p.exports, k)
		}
	}
}

func (p *ProgressTracker) Clear() {
	p.exports = make(map[string]*services.ExportProgress)
}

func (p *ProgressTracker) HasActive() bool {
	for _, prog := range p.exports {
		if prog.Status != services.StatusComplete && prog.Status != services.StatusError {
			return true
		}
	}
	return false
}

func (p *ProgressTracker) View() string {
	if len(p.exports) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Exports"))
	b.WriteString("\n")

	for _, prog := range p.exports {
		label := fmt.Sprintf("Chapter %s", prog.Chapter)
		if prog.Group != "" {
			label += fmt.Sprintf(" [%s]", prog.Group)
		}
		b.WriteString(styles.TextStyle.Render(label))
		b.WriteString("\n")

		status := prog.Status
		if prog.TotalPages > 0 {
			status = fmt.Sprintf("%s (%d/%d pages)", prog.Status, prog.CurrentPage, prog.TotalPages)
			b.WriteString(renderProgressBar(prog.CurrentPage, prog.TotalPages, p.width-4))
			b.WriteString("\n")
		}
		b.WriteString(styles.StatusStyle(prog.Status).Render(status))
		b.WriteString("\n")

		switch {
		case prog.Error != nil:
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", prog.Error)))
			b.WriteString("\n")
		case prog.Path != "":
			b.WriteString(styles.MutedStyle.Render(prog.Path))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}
	filled := min(current*width/total, width)
	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a bar of width cells with current of total filled.
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
