package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// envOnlyFromFlags lists flags that are never read from the environment.
var envOnlyFromFlags = map[string]bool{"version": true, "completion": true}

// envName returns the variable backing a flag: -log-level reads
// FRACTAL_LOG_LEVEL.
func envName(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnvOverrides fills every flag left unset on the command line from its
// FRACTAL_ variable, so the precedence is flag, then environment, then
// default. A value the flag cannot parse leaves the default in place.
func applyEnvOverrides(fs *flag.FlagSet) {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fs.VisitAll(func(f *flag.Flag) {
		if explicit[f.Name] || envOnlyFromFlags[f.Name] {
			return
		}
		val := os.Getenv(envName(f.Name))
		if val == "" {
			return
		}
		if isBoolFlag(f) {
			b, ok := parseBoolEnv(val)
			if !ok {
				return
			}
			val = strconv.FormatBool(b)
		}
		// Numeric flag values are overwritten even when Set fails.
		prev := f.Value.String()
		if err := f.Value.Set(val); err != nil {
			_ = f.Value.Set(prev)
		}
	})
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case.
func parseBoolEnv(val string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}
