package auth

import (
	"strings"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

type requirementKind int

const (
	kindPublic requirementKind = iota
	kindAuthenticated
	kindAnyOf
)

// Requirement is the access level attached to a rule: public, any
// authenticated caller, or authenticated with one of a set of roles.
type Requirement struct {
	kind  requirementKind
	roles map[domain.RoleName]struct{}
}

// Public allows anonymous access.
func Public() Requirement {
	return Requirement{kind: kindPublic}
}

// Authenticated requires a valid token with any role.
func Authenticated() Requirement {
	return Requirement{kind: kindAuthenticated}
}

// AnyOf requires a valid token whose role is in the given set.
func AnyOf(roles ...domain.RoleName) Requirement {
	set := make(map[domain.RoleName]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return Requirement{kind: kindAnyOf, roles: set}
}

// IsPublic reports whether the requirement bypasses authentication.
func (r Requirement) IsPublic() bool {
	return r.kind == kindPublic
}

// Allows reports whether the given role satisfies the requirement, assuming
// the caller already holds a valid token.
func (r Requirement) Allows(role domain.RoleName) bool {
	if r.kind != kindAnyOf {
		return true
	}
	_, ok := r.roles[role]
	return ok
}

// Rule binds a method and path pattern to a requirement. A method of "*"
// matches any verb. Patterns are segment-wise: ":name" matches a single
// segment, a trailing "**" matches any remainder.
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// RuleTable is an ordered list of rules evaluated first-match-wins. Requests
// matching no rule require authentication: anonymous access is never the
// default.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable builds a table preserving declaration order.
func NewRuleTable(rules ...Rule) *RuleTable {
	return &RuleTable{rules: rules}
}

// Match returns the requirement of the first rule matching the request.
func (t *RuleTable) Match(method, path string) Requirement {
	for _, rule := range t.rules {
		if rule.Method != "*" && !strings.EqualFold(rule.Method, method) {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule.Requirement
		}
	}
	return Authenticated()
}

func matchPattern(pattern, path string) bool {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	for i, seg := range patternSegs {
		if seg == "**" {
			return true
		}
		if i >= len(pathSegs) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return len(patternSegs) == len(pathSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
