package configloader

import "github.com/yaklabco/goqbc/pkg/config"

// merge combines two configurations, with override taking precedence
// over base. Scalars overwrite base when set to a non-zero value;
// IncludePaths and Defines accumulate, base entries first, matching how
// repeated -I and -D flags stack up on one command line.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.PrettyPrint != nil {
		result.PrettyPrint = override.PrettyPrint
	}
	if override.Indent != 0 {
		result.Indent = override.Indent
	}
	if override.LineWidth != 0 {
		result.LineWidth = override.LineWidth
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	// MSErrors can be switched on by an override but a config file
	// cannot unset a CLI flag, same limitation as any plain bool field.
	if override.MSErrors {
		result.MSErrors = true
	}

	if len(override.IncludePaths) > 0 {
		result.IncludePaths = appendUnique(base.IncludePaths, override.IncludePaths)
	}
	if len(override.Defines) > 0 {
		result.Defines = append(append([]string(nil), base.Defines...), override.Defines...)
	}

	return &result
}

// appendUnique appends extra entries to base, skipping duplicates, and
// returns a fresh slice.
func appendUnique(base, extra []string) []string {
	result := append([]string(nil), base...)
	seen := make(map[string]bool, len(result))
	for _, entry := range result {
		seen[entry] = true
	}
	for _, entry := range extra {
		if !seen[entry] {
			result = append(result, entry)
			seen[entry] = true
		}
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
