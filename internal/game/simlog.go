package game

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded event during a simulation run.
type SimLogEntry struct {
	Tick     int
	Agent    string  // label e.g. "P0", "A2", or "--" for round-level events
	Category string  // phase, turn, jump, death, ai, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] A1   turn      start           east → south
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-9s %-16s %s",
		e.Tick, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a run. It is unbounded and
// machine-readable: the headless report and the scenario tests both consume
// it, and the windowed build feeds it to the clipboard debug report.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. With verbose on, per-tick position entries are
// also recorded (useful for invariant checks, noisy otherwise).
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, agent, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Agent:    agent,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, agent, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, agent, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	if sl == nil {
		return nil
	}
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// Tail returns the last n entries.
func (sl *SimLog) Tail(n int) []SimLogEntry {
	entries := sl.Entries()
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// Summary formats a per-category count block for the whole log.
func (sl *SimLog) Summary() string {
	counts := map[string]int{}
	for _, e := range sl.Entries() {
		counts[e.Category+"/"+e.Key]++
	}
	if len(counts) == 0 {
		return "(no log entries)"
	}
	var b strings.Builder
	b.WriteString("--- SimLog summary ---\n")
	for _, key := range sortedKeys(counts) {
		fmt.Fprintf(&b, "%-28s %d\n", key, counts[key])
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
