package traits_test

import (
	"testing"

	"github.com/gnames/gntraits/pkg/traits"
	"github.com/stretchr/testify/assert"
)

func TestIsSafeValue(t *testing.T) {
	tests := []struct {
		msg  string
		val  string
		safe bool
	}{
		{
			msg:  "typical predicate URI",
			val:  "http://purl.obolibrary.org/obo/VT_0001259",
			safe: true,
		},
		{
			msg:  "URI with fragment and query",
			val:  "https://eol.org/schema/terms/Habitat#marine?x=1&y=2",
			safe: true,
		},
		{
			msg:  "value with spaces",
			val:  "body mass",
			safe: true,
		},
		{
			msg:  "single quote rejected",
			val:  "http://example.org/term' RETURN 1 --",
			safe: false,
		},
		{
			msg:  "double quote rejected",
			val:  `term"`,
			safe: false,
		},
		{
			msg:  "semicolon rejected",
			val:  "http://example.org/a;b",
			safe: false,
		},
		{
			msg:  "backslash rejected",
			val:  `a\b`,
			safe: false,
		},
		{
			msg:  "curly braces rejected",
			val:  "{predicate}",
			safe: false,
		},
		{
			msg:  "newline rejected",
			val:  "a\nb",
			safe: false,
		},
		{
			msg:  "empty value rejected",
			val:  "",
			safe: false,
		},
		{
			msg:  "unicode letters rejected outside ASCII ranges",
			val:  "araña",
			safe: false,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.safe, traits.IsSafeValue(v.val))
		})
	}
}
