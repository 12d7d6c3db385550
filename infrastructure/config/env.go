package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ruvnet/arcadia-goap/domain/config"
)

// envExpander handles environment variable expansion in configuration text.
type envExpander struct {
	strict  bool
	missing []string
}

// Patterns for environment variable references:
//
//	${VAR}          - simple expansion
//	${VAR:-default} - expansion with default value
//	${VAR:?error}   - required variable with error message
//	$VAR            - simple expansion (bare form)
var (
	bracketPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)
	simplePattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variable references in the input.
// In strict mode, unset variables cause an error.
func expandEnvVars(input string, strict bool) (string, error) {
	e := &envExpander{strict: strict}

	// Handle ${VAR}, ${VAR:-default}, ${VAR:?error}
	result := bracketPattern.ReplaceAllStringFunc(input, e.expandBracket)

	// Handle bare $VAR
	result = simplePattern.ReplaceAllStringFunc(result, e.expandSimple)

	if len(e.missing) > 0 {
		return "", fmt.Errorf("%w: %s", config.ErrMissingEnvVar, strings.Join(e.missing, ", "))
	}

	return result, nil
}

func (e *envExpander) expandBracket(match string) string {
	groups := bracketPattern.FindStringSubmatch(match)
	name := groups[1]
	modifier := groups[2]

	value, set := os.LookupEnv(name)

	switch {
	case modifier == "":
		if !set && e.strict {
			e.missing = append(e.missing, name)
		}
		return value
	case strings.HasPrefix(modifier, ":-"):
		if set {
			return value
		}
		return modifier[2:]
	case strings.HasPrefix(modifier, ":?"):
		if !set {
			e.missing = append(e.missing, name)
		}
		return value
	default:
		return match
	}
}

func (e *envExpander) expandSimple(match string) string {
	groups := simplePattern.FindStringSubmatch(match)
	name := groups[1]

	value, set := os.LookupEnv(name)
	if !set && e.strict {
		e.missing = append(e.missing, name)
	}
	return value
}

// ExpandEnv expands environment variable references in the input.
// Unset variables expand to empty strings.
func ExpandEnv(input string) string {
	result, _ := expandEnvVars(input, false)
	return result
}

// ExpandEnvStrict expands environment variable references in the input.
// Unset variables cause an error.
func ExpandEnvStrict(input string) (string, error) {
	return expandEnvVars(input, true)
}
