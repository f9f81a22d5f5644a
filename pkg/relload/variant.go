package relload

import "fmt"

// Variant identifies one of the fixed release-export datasets.
// Dispatch throughout the program is by Variant value; raw menu strings and
// command arguments are parsed into a Variant exactly once, at the edge.
type Variant int

const (
	VariantOrg Variant = iota // organization exports
	VariantPer                // person exports
	VariantRawFeedPer         // raw feed person exports
)

// AllVariants returns every variant in canonical run order.
// The master run imports them in exactly this order.
func AllVariants() []Variant {
	return []Variant{VariantOrg, VariantPer, VariantRawFeedPer}
}

// String returns the CLI-facing name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantOrg:
		return "org"
	case VariantPer:
		return "per"
	case VariantRawFeedPer:
		return "raw-feed-per"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// IsValid returns true if the Variant is a defined value.
func (v Variant) IsValid() bool {
	return v >= VariantOrg && v <= VariantRawFeedPer
}

// LogPrefix returns the progress-line tag for the variant, matching the
// historical importer output ("[ORG] [3/7] file.csv: ...").
func (v Variant) LogPrefix() string {
	switch v {
	case VariantOrg:
		return "[ORG]"
	case VariantPer:
		return "[PER]"
	case VariantRawFeedPer:
		return "[RAW_FEED_PER]"
	default:
		return "[?]"
	}
}

// ParseVariant converts a CLI argument into a Variant.
// Accepts the canonical names plus the underscore spellings used by the
// original dataset folders.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "org", "organizations":
		return VariantOrg, nil
	case "per", "persons":
		return VariantPer, nil
	case "raw-feed-per", "raw_feed_per":
		return VariantRawFeedPer, nil
	default:
		return 0, fmt.Errorf("unknown import variant %q (expected org, per, or raw-feed-per): %w", s, ErrInvalidConfig)
	}
}
