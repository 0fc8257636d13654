package types

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// -----------------------------------------------------------------------------
// Diagnostics
// -----------------------------------------------------------------------------
//
// A Report lists every failure that was caught and skipped while decoding.
// Successful members never appear in it.

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	SevInfo     Severity = iota // unusual but decoded
	SevWarning                  // known content that is skipped
	SevError                    // a member, record or link was lost
	SevCritical                 // a whole archive could not be read
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Stage names the decoding step a diagnostic came from.
type Stage string

const (
	StageOpen      Stage = "open"
	StageLinks     Stage = "links"
	StageMember    Stage = "member"
	StageBitmap    Stage = "bitmap"
	StageText      Stage = "text"
	StageRecord    Stage = "record"
	StageAnimChart Stage = "animchart"
	StageFilmLoop  Stage = "filmloop"
	StageDispatch  Stage = "dispatch"
)

// Diagnostic is one caught failure.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Stage    Stage    `json:"stage"`
	Archive  string   `json:"archive"`
	Member   uint32   `json:"member,omitempty"`
	Slot     uint32   `json:"slot,omitempty"`
	Name     string   `json:"name,omitempty"`
	Issue    string   `json:"issue"`
	// Err is the underlying error, kept for errors.Is checks.
	Err error `json:"-"`
}

// Summary counts diagnostics by severity.
type Summary struct {
	Critical int `json:"critical"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// Report collects the diagnostics of one or more archives.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     Summary      `json:"summary"`
}

// NewReport creates an empty report.
func NewReport() *Report { return &Report{} }

// Add appends d and updates the summary.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	switch d.Severity {
	case SevCritical:
		r.Summary.Critical++
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}
}

// AddError records err with the severity SeverityOf assigns it.
func (r *Report) AddError(stage Stage, archive string, member, slot uint32, name string, err error) {
	r.Add(Diagnostic{
		Severity: SeverityOf(err),
		Stage:    stage,
		Archive:  archive,
		Member:   member,
		Slot:     slot,
		Name:     name,
		Issue:    err.Error(),
		Err:      err,
	})
}

// Merge appends every diagnostic of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for _, d := range other.Diagnostics {
		r.Add(d)
	}
}

// Sort orders diagnostics by archive, member number, then slot.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.Archive != b.Archive {
			return a.Archive < b.Archive
		}
		if a.Member != b.Member {
			return a.Member < b.Member
		}
		return a.Slot < b.Slot
	})
}

// HasErrors returns true if any errors or critical issues were found.
func (r *Report) HasErrors() bool {
	return r.Summary.Critical > 0 || r.Summary.Errors > 0
}

// HasAnyIssues returns true if the report is not empty.
func (r *Report) HasAnyIssues() bool {
	return len(r.Diagnostics) > 0
}

// ByArchive groups diagnostics by archive name.
func (r *Report) ByArchive() map[string][]Diagnostic {
	out := make(map[string][]Diagnostic)
	for _, d := range r.Diagnostics {
		out[d.Archive] = append(out[d.Archive], d)
	}
	return out
}

// -----------------------------------------------------------------------------
// Output Formatters
// -----------------------------------------------------------------------------

// FormatJSON returns the report as indented JSON.
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable report grouped by archive.
func (r *Report) FormatText() string {
	var b strings.Builder

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 79) + "\n")
	fmt.Fprintf(&b, "  Critical: %d\n", r.Summary.Critical)
	fmt.Fprintf(&b, "  Errors:   %d\n", r.Summary.Errors)
	fmt.Fprintf(&b, "  Warnings: %d\n", r.Summary.Warnings)
	fmt.Fprintf(&b, "  Info:     %d\n\n", r.Summary.Info)

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	groups := r.ByArchive()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "%s (%d)\n", name, len(groups[name]))
		b.WriteString(strings.Repeat("~", 79) + "\n")
		for _, d := range groups[name] {
			b.WriteString("  " + d.line() + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTextCompact returns one line per diagnostic.
func (r *Report) FormatTextCompact() string {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		b.WriteString(d.Archive + " " + d.line() + "\n")
	}
	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
	}
	return b.String()
}

func (d Diagnostic) line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s/%s]", d.Severity, d.Stage)
	if d.Member != 0 {
		fmt.Fprintf(&b, " member %d", d.Member)
	}
	if d.Slot != 0 {
		fmt.Fprintf(&b, " slot %d", d.Slot)
	}
	if d.Name != "" {
		fmt.Fprintf(&b, " %q", d.Name)
	}
	b.WriteString(": " + d.Issue)
	return b.String()
}
