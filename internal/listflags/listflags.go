package listflags

import "github.com/spf13/pflag"

// AddJSONFlag adds the shared --json flag to commands that can print JSON.
func AddJSONFlag(flags *pflag.FlagSet, target *bool) {
	flags.BoolVar(target, "json", false, "Output as JSON")
}

// AddStateFlag adds the shared --state filter to board listings.
func AddStateFlag(flags *pflag.FlagSet, target *[]string) {
	flags.StringSliceVar(target, "state", nil, "Only show issues in these states (open, review, done)")
}
