package filters

import (
	"context"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/whatsbygo/whatsbygo/types"
)

// DataMatches matches callbacks whose data equals any of the given strings.
func DataMatches(matches ...string) CallbackFilter {
	return func(_ context.Context, c types.Callback) bool {
		return lo.Contains(matches, c.CallbackData())
	}
}

// DataStartsWith matches callbacks whose data starts with any of the given
// prefixes.
func DataStartsWith(prefixes ...string) CallbackFilter {
	return func(_ context.Context, c types.Callback) bool {
		return lo.SomeBy(prefixes, func(p string) bool {
			return strings.HasPrefix(c.CallbackData(), p)
		})
	}
}

// DataEndsWith matches callbacks whose data ends with any of the given
// suffixes.
func DataEndsWith(suffixes ...string) CallbackFilter {
	return func(_ context.Context, c types.Callback) bool {
		return lo.SomeBy(suffixes, func(s string) bool {
			return strings.HasSuffix(c.CallbackData(), s)
		})
	}
}

// DataContains matches callbacks whose data contains any of the given
// substrings.
func DataContains(subs ...string) CallbackFilter {
	return func(_ context.Context, c types.Callback) bool {
		return lo.SomeBy(subs, func(s string) bool {
			return strings.Contains(c.CallbackData(), s)
		})
	}
}

// DataRegex matches callbacks whose data matches any of the given patterns.
// Invalid patterns panic at registration time.
func DataRegex(patterns ...string) CallbackFilter {
	compiled := lo.Map(patterns, func(p string, _ int) *regexp.Regexp {
		return regexp.MustCompile(p)
	})
	return func(_ context.Context, c types.Callback) bool {
		return lo.SomeBy(compiled, func(re *regexp.Regexp) bool {
			return re.MatchString(c.CallbackData())
		})
	}
}
