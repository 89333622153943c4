package summarizer

import (
	"fmt"
	"strings"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) Option {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the framestep version to the footer.
func WithVersion(version string) Option {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter. Labels are left untranslated by default.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Decode Summary"))
	fmt.Fprintf(&sb, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.section(&sb, t("File"), [][2]string{
		{t("Path"), s.File.Path},
		{t("Kind"), s.File.Kind},
		{t("File Size"), formatBytes(s.File.SizeBytes)},
	})

	if c := s.Container; c != nil {
		f.section(&sb, t("Container"), [][2]string{
			{t("Codec"), orNone(t, c.Codec)},
			{t("Dimensions"), fmt.Sprintf("%dx%d", c.Width, c.Height)},
			{t("Declared Frames"), countOrUnknown(t, c.FrameCount)},
			{t("Nominal Rate"), rateOrUnknown(t, c.NominalRate)},
		})
	}

	d := s.Decode
	rows := [][2]string{
		{t("State"), t(d.State)},
		{t("Frame Count"), fmt.Sprintf("%d / %d", d.LoadedFrames, d.TotalFrames)},
		{t("Playback Rate"), rateOrUnknown(t, d.FrameRate)},
		{t("Frame Size"), fmt.Sprintf("%dx%d", d.FrameWidth, d.FrameHeight)},
		{t("Decode Time"), fmt.Sprintf("%d ms", d.ElapsedMs)},
	}
	if d.Error != "" {
		rows = append(rows, [2]string{t("Error"), d.Error})
	}
	f.section(&sb, t("Results"), rows)

	st := s.Settings
	f.section(&sb, t("Settings"), [][2]string{
		{t("Frame Limit"), fmt.Sprintf("%d", st.MaxFrames)},
		{t("Fallback Rate"), fmt.Sprintf("%.2f fps", st.DefaultFrameRate)},
		{t("Fallback Frame Duration"), fmt.Sprintf("%d ms", st.DefaultFrameDurationMs)},
		{t("Decoder"), orNone(t, st.Backend)},
	})

	sb.WriteString("---\n")
	if f.version != "" {
		fmt.Fprintf(&sb, "%s framestep %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&sb, "%s framestep\n", t("Generated by"))
	}
	return sb.String()
}

func (f *MarkdownFormatter) section(sb *strings.Builder, title string, rows [][2]string) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	fmt.Fprintf(sb, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	sb.WriteString("|------|------|\n")
	for _, row := range rows {
		fmt.Fprintf(sb, "| %s | %s |\n", row[0], escapeCell(row[1]))
	}
	sb.WriteString("\n")
}

// formatBytes formats a byte count in human-readable units.
func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func countOrUnknown(t func(string) string, n int) string {
	if n <= 0 {
		return t("Unknown")
	}
	return fmt.Sprintf("%d", n)
}

func rateOrUnknown(t func(string) string, fps float64) string {
	if fps <= 0 {
		return t("Unknown")
	}
	return fmt.Sprintf("%.3f fps", fps)
}

func orNone(t func(string) string, s string) string {
	if s == "" {
		return t("None")
	}
	return s
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
