package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/picstock/picstock/pkg/utils"
)

// LiveProgress handles live terminal progress display during analysis.
// Its Update method matches scanner.ProgressCallback so it plugs
// straight into Scanner.SetProgressCallback.
type LiveProgress struct {
	mu          sync.Mutex
	currentPath string
	filesFound  int
	totalSize   int64
	category    string
	startTime   time.Time
	lastUpdate  time.Time
	termWidth   int
	enabled     bool
	statusLines int
}

// NewLiveProgress creates a new live progress display
func NewLiveProgress() *LiveProgress {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return &LiveProgress{
		startTime:   time.Now(),
		termWidth:   width,
		enabled:     true,
		statusLines: 3,
	}
}

// Start initializes the progress display area
func (lp *LiveProgress) Start() {
	if !lp.enabled {
		return
	}
	// Reserve space for status lines
	fmt.Print("\n\n\n")
	// Move cursor up to the reserved area
	fmt.Printf("\033[%dA", lp.statusLines)
}

// Update updates the progress display
func (lp *LiveProgress) Update(category, currentPath string, filesFound int, totalSize int64) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if !lp.enabled {
		return
	}

	// Throttle updates to avoid flickering (max 10 updates per second)
	now := time.Now()
	if now.Sub(lp.lastUpdate) < 100*time.Millisecond {
		return
	}
	lp.lastUpdate = now

	lp.category = category
	lp.currentPath = currentPath
	lp.filesFound = filesFound
	lp.totalSize = totalSize

	lp.render()
}

// render draws the progress display
func (lp *LiveProgress) render() {
	// Save cursor position
	fmt.Print("\033[s")

	width := lp.termWidth - 2

	// Line 1: Category and stats
	elapsed := time.Since(lp.startTime).Round(time.Second)
	line1 := fmt.Sprintf("📂 Analysing: %-12s | Found: %d files | Size: %s | Time: %s",
		lp.category, lp.filesFound, utils.FormatBytes(lp.totalSize), elapsed)
	fmt.Printf("\033[K%s\n", clip(line1, width))

	// Line 2: Current path with animation
	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinIdx := int(time.Now().UnixMilli()/100) % len(spinner)
	path := utils.TruncateLeft(lp.currentPath, width-10)
	line2 := fmt.Sprintf("%s %s", spinner[spinIdx], path)
	fmt.Printf("\033[K%s\n", clip(line2, width))

	// Line 3: Divider
	line3 := strings.Repeat("─", width)
	fmt.Printf("\033[K%s", line3)

	// Restore cursor position
	fmt.Print("\033[u")
}

// Finish completes the progress display
func (lp *LiveProgress) Finish() {
	if !lp.enabled {
		return
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()

	// Move to the end and clear the status lines
	fmt.Printf("\033[%dB", lp.statusLines)
	fmt.Print("\033[K\n")
}

// SetEnabled enables or disables live progress
func (lp *LiveProgress) SetEnabled(enabled bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.enabled = enabled
}

// clip truncates a string from the right to fit width
func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
