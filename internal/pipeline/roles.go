package pipeline

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/plantparty/outreach/internal/service"
	"github.com/tidwall/gjson"
)

var (
	assignmentPrefix = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*=\s*`)
	listMarker       = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s*`)
)

type RoleDeriver struct {
	gen    service.TextGeneratorInterface
	params service.SamplingParams
}

func NewRoleDeriver(gen service.TextGeneratorInterface, params service.SamplingParams) *RoleDeriver {
	return &RoleDeriver{gen: gen, params: params}
}

// DeriveRoles asks the model for job titles relevant to the project. It never
// fails: a generation or parse problem is logged and yields an empty list.
func (d *RoleDeriver) DeriveRoles(ctx context.Context, description string) []string {
	raw, err := d.gen.Complete(ctx, rolesSystemPrompt, fmt.Sprintf(rolesPromptTemplate, description), d.params)
	if err != nil {
		log.Printf("[roles] %v", &GenerationError{Task: "roles", Err: err})
		return []string{}
	}

	roles, err := ParseRoleList(raw)
	if err != nil {
		log.Printf("[roles] %v; raw output: %s", err, raw)
		return []string{}
	}
	return roles
}

// ParseRoleList reads a list of strings out of free model output. It accepts
// code-fenced or assigned (`titles = [...]`) lists in JSON or Python quoting,
// and falls back to one entry per non-empty line.
func ParseRoleList(raw string) ([]string, error) {
	s := stripCodeFence(strings.TrimSpace(raw))
	s = strings.TrimSpace(assignmentPrefix.ReplaceAllString(s, ""))

	if strings.HasPrefix(s, "[") {
		if roles := parseJSONList(s); len(roles) > 0 {
			return roles, nil
		}
		if roles := parseQuotedList(s); len(roles) > 0 {
			return roles, nil
		}
	}

	roles := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		line = strings.Trim(line, " \t,\"'[]")
		if line != "" {
			roles = append(roles, line)
		}
	}
	if len(roles) == 0 {
		return nil, &GenerationParseError{Task: "roles", Raw: raw}
	}
	return roles, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func parseJSONList(s string) []string {
	if !gjson.Valid(s) {
		return nil
	}
	list := gjson.Parse(s)
	if !list.IsArray() {
		return nil
	}
	roles := make([]string, 0)
	list.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			if r := strings.TrimSpace(v.String()); r != "" {
				roles = append(roles, r)
			}
		}
		return true
	})
	return roles
}

// parseQuotedList handles Python-style lists such as ['a', "b's"]. It returns
// nil unless the brackets close.
func parseQuotedList(s string) []string {
	if !strings.HasSuffix(s, "]") {
		return nil
	}
	var (
		roles   []string
		current strings.Builder
		quote   rune
		escaped bool
	)
	for _, r := range s[1 : len(s)-1] {
		switch {
		case quote == 0:
			if r == '\'' || r == '"' {
				quote = r
				current.Reset()
			}
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			if item := strings.TrimSpace(current.String()); item != "" {
				roles = append(roles, item)
			}
			quote = 0
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil
	}
	return roles
}
