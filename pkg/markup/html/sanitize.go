package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	documentPolicyOnce sync.Once
	documentPolicy     *bluemonday.Policy
)

// Sanitize applies the document policy: user generated content rules plus
// the class and data attributes markers rely on.
func Sanitize(markup string) string {
	return sanitizer().Sanitize(markup)
}

func sanitizer() *bluemonday.Policy {
	documentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("span", "div", "section", "article", "p", "h1", "h2", "h3", "h4", "strong", "em", "br")
		policy.AllowAttrs("class").Globally()
		policy.AllowDataAttributes()
		policy.AllowAttrs("role", "tabindex").OnElements("span")
		documentPolicy = policy
	})
	return documentPolicy
}
