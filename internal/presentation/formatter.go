package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON formats any value as indented JSON
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatRoots formats root summaries as an aligned table
func (f *Formatter) FormatRoots(roots []RootDTO) error {
	if len(roots) == 0 {
		_, err := fmt.Fprintln(f.writer, "no conversations")
		return err
	}

	w := tabwriter.NewWriter(f.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTHOR\tLAST ACTIVITY\tDESCENDANTS\tAGENTS")
	for _, root := range roots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			root.ID, root.Author, formatTime(root.EffectiveLastActivity),
			root.DescendantCount, root.AgentCount)
	}
	return w.Flush()
}

// FormatOutline formats the forest as an indented outline
func (f *Formatter) FormatOutline(entries []OutlineEntryDTO) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(f.writer, "no conversations")
		return err
	}

	for _, entry := range entries {
		indent := strings.Repeat("  ", entry.Depth)
		if _, err := fmt.Fprintf(f.writer, "%s%s  %s (%s)\n",
			indent, entry.ID, entry.Author, formatTime(entry.LastActivity)); err != nil {
			return err
		}
	}
	return nil
}

// FormatDetail formats a record with its full aggregate
func (f *Formatter) FormatDetail(detail ConversationDetailDTO) error {
	w := tabwriter.NewWriter(f.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", detail.ID)
	if detail.ParentID != "" {
		fmt.Fprintf(w, "Parent:\t%s\n", detail.ParentID)
	}
	fmt.Fprintf(w, "Author:\t%s (%s)\n", detail.Author, shortPubkey(detail.AuthorPubkey))
	fmt.Fprintf(w, "Last activity:\t%s\n", formatTime(detail.LastActivity))
	fmt.Fprintf(w, "Effective activity:\t%s\n", formatTime(detail.Aggregate.EffectiveLastActivity))
	fmt.Fprintf(w, "Activity span:\t%s\n", formatSpan(detail.Aggregate.ActivitySpan))
	fmt.Fprintf(w, "Descendants:\t%d\n", detail.Aggregate.DescendantCount)
	fmt.Fprintf(w, "Agents:\t%s\n", strings.Join(detail.Aggregate.ParticipatingAgents, ", "))
	if len(detail.Ancestors) > 0 {
		fmt.Fprintf(w, "Ancestors:\t%s\n", strings.Join(detail.Ancestors, " < "))
	}
	return w.Flush()
}

// FormatAgents formats agent infos as an aligned table
func (f *Formatter) FormatAgents(infos []AgentInfoDTO) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(f.writer, "no agents")
		return err
	}

	w := tabwriter.NewWriter(f.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPUBKEY\tPROFILE")
	for _, info := range infos {
		profile := info.DisplayName
		if profile == "" {
			profile = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, shortPubkey(info.Pubkey), profile)
	}
	return w.Flush()
}

// FormatStats formats index statistics
func (f *Formatter) FormatStats(stats StatsDTO) error {
	w := tabwriter.NewWriter(f.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Conversations:\t%d\n", stats.Conversations)
	fmt.Fprintf(w, "Roots:\t%d\n", stats.Roots)
	fmt.Fprintf(w, "Orphans:\t%d\n", stats.Orphans)
	fmt.Fprintf(w, "Agents:\t%d\n", stats.Agents)
	fmt.Fprintf(w, "Max depth:\t%d\n", stats.MaxDepth)
	return w.Flush()
}

// formatTime renders an epoch-seconds timestamp for display.
func formatTime(ts uint64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04:05") // #nosec G115 -- activity timestamps fit in int64
}

// formatSpan renders an activity span in seconds as a duration.
func formatSpan(span uint64) string {
	return (time.Duration(span) * time.Second).String() // #nosec G115 -- spans fit in int64
}

// shortPubkey truncates long keys for table display.
func shortPubkey(pubkey string) string {
	if len(pubkey) <= 12 {
		return pubkey
	}
	return pubkey[:12] + "..."
}
