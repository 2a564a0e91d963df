package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/apperrors"
)

// Rule grants access to one route template, relative to the API base path.
// An empty Roles list admits any authenticated caller.
type Rule struct {
	Method string
	Path   string
	Public bool
	Roles  []string
}

// PolicyTable maps every API route to its access rule
type PolicyTable struct {
	basePath string
	rules    map[string]Rule
}

func NewPolicyTable(basePath string, rules ...Rule) *PolicyTable {
	t := &PolicyTable{
		basePath: strings.TrimSuffix(basePath, "/"),
		rules:    make(map[string]Rule, len(rules)),
	}
	for _, r := range rules {
		t.rules[policyKey(r.Method, r.Path)] = r
	}
	return t
}

func policyKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Lookup finds the rule for a method and full gin route template
func (t *PolicyTable) Lookup(method, fullPath string) (Rule, bool) {
	rel := strings.TrimPrefix(fullPath, t.basePath)
	r, ok := t.rules[policyKey(method, rel)]
	return r, ok
}

// Rules returns every registered rule
func (t *PolicyTable) Rules() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r)
	}
	return out
}

// Guard enforces the policy table. Routes without a rule are refused.
func Guard(verifier TokenVerifier, table *PolicyTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullPath := c.FullPath()
		if fullPath == "" {
			// unmatched route, let gin answer 404
			c.Next()
			return
		}

		rule, ok := table.Lookup(c.Request.Method, fullPath)
		if !ok {
			_ = c.Error(apperrors.Forbidden("no access policy for this route"))
			c.Abort()
			return
		}

		if rule.Public {
			_ = authenticate(c, verifier)
			c.Next()
			return
		}

		if err := authenticate(c, verifier); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if len(rule.Roles) > 0 && !hasRole(c.GetString(ContextUserRole), rule.Roles) {
			_ = c.Error(apperrors.Forbidden("Insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
