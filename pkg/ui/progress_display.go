package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"igposts/pkg/fetcher"
	"igposts/pkg/runner"
)

// ProgressDisplay prints one line per processed profile
type ProgressDisplay struct {
	mu        sync.Mutex
	console   *Console
	total     int
	done      int
	posts     int
	errors    int
	startTime time.Time
}

// NewProgressDisplay creates a progress display on console
func NewProgressDisplay(console *Console) *ProgressDisplay {
	return &ProgressDisplay{
		console:   console,
		startTime: time.Now(),
	}
}

// ProfileStarted records the size of the run
func (p *ProgressDisplay) ProfileStarted(index, total int, username string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

// ProfileFinished prints the outcome for one profile
func (p *ProgressDisplay) ProfileFinished(result runner.ProfileResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.posts += result.Posts
	if result.Err != nil {
		p.errors++
	}

	if p.console.quiet {
		return
	}

	c := p.console
	status := c.green.Render(fmt.Sprintf("%d posts", result.Posts)) + " " + p.sourceLabel(result.Source)
	if result.Err != nil {
		status = c.red.Render("failed") + " " + c.dim.Render(result.Err.Error())
	}

	fmt.Fprintf(c.out, "%s %s %s %s %s\n",
		c.dim.Render(fmt.Sprintf("[%d/%d]", p.done, p.total)),
		p.bar(),
		c.cyan.Render("@"+result.Username),
		status,
		c.dim.Render(formatDuration(result.Duration)),
	)
}

// Errors returns the number of failed profiles seen so far
func (p *ProgressDisplay) Errors() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors
}

func (p *ProgressDisplay) bar() string {
	const width = 20
	filled := 0
	if p.total > 0 {
		filled = p.done * width / p.total
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func (p *ProgressDisplay) sourceLabel(source fetcher.Source) string {
	switch source {
	case fetcher.SourceLive:
		return p.console.cyan.Render("(live)")
	case fetcher.SourceFallback:
		return p.console.yellow.Render("(fallback to mock)")
	default:
		return p.console.dim.Render("(mock)")
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
