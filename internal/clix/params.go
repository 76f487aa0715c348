package clix

import (
	"strings"

	"github.com/spf13/pflag"
)

// ParseList reads a comma-separated string flag, trimming entries and
// dropping empty ones. A missing or empty flag yields nil.
func ParseList(flags *pflag.FlagSet, name string) []string {
	raw, _ := flags.GetString(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func ParseTags(flags *pflag.FlagSet) []string {
	return ParseList(flags, "tags")
}
