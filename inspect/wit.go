package inspect

import (
	"regexp"
	"sort"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-bucket/errors"
)

// Declaration is one function signature from a module's WIT sidecar. Core
// wasm binaries carry no type metadata, so the declared interface rides
// alongside the artifacts as WIT text.
type Declaration struct {
	Name    string
	Params  []wit.Type
	Results []wit.Type
}

// funcPattern matches "[export] name: func(params) -> result;" lines.
var funcPattern = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;]+))?`)

// ParseDeclarations extracts function signatures from WIT text.
func ParseDeclarations(witText string) (map[string]Declaration, error) {
	decls := make(map[string]Declaration)

	matches := funcPattern.FindAllStringSubmatch(witText, -1)
	for _, match := range matches {
		name := match[1]
		paramsStr := strings.TrimSpace(match[2])
		resultStr := ""
		if len(match) > 3 {
			resultStr = strings.TrimSpace(match[3])
		}

		decl := Declaration{Name: name}

		if paramsStr != "" {
			for _, p := range splitParams(paramsStr) {
				typStr := p
				if idx := strings.LastIndex(p, ":"); idx != -1 {
					typStr = strings.TrimSpace(p[idx+1:])
				}
				t, err := parseWitType(typStr)
				if err != nil {
					return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "parse param type "+typStr)
				}
				decl.Params = append(decl.Params, t)
			}
		}

		if resultStr != "" && resultStr != "()" {
			if strings.HasPrefix(resultStr, "(") && strings.HasSuffix(resultStr, ")") {
				inner := strings.TrimPrefix(strings.TrimSuffix(resultStr, ")"), "(")
				if inner != "" {
					for _, part := range splitParams(inner) {
						t, err := parseWitType(strings.TrimSpace(part))
						if err != nil {
							return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "parse result type "+part)
						}
						decl.Results = append(decl.Results, t)
					}
				}
			} else {
				t, err := parseWitType(resultStr)
				if err != nil {
					return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "parse result type "+resultStr)
				}
				decl.Results = []wit.Type{t}
			}
		}

		decls[name] = decl
	}

	if len(decls) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "no functions found in WIT text")
	}

	return decls, nil
}

// CheckDeclared returns the names declared in the sidecar that the binary
// does not export as functions, sorted.
func CheckDeclared(report *Report, decls map[string]Declaration) []string {
	var missing []string
	for name := range decls {
		e, ok := report.Export(name)
		if !ok || e.Kind != KindFunc {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// splitParams splits a parameter list, handling nested parens.
func splitParams(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}

	return result
}

func parseWitType(s string) (wit.Type, error) {
	return wit.ParseType(strings.TrimSpace(s))
}
