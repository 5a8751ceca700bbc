package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"plain",
			"a;b;c",
			[]string{"a", "b", "c"},
		},
		{
			"quoted semicolon is literal",
			`a;"b;c";d`,
			[]string{"a", "b;c", "d"},
		},
		{
			"doubled quote escapes",
			`a;"say ""hi""";b`,
			[]string{"a", `say "hi"`, "b"},
		},
		{
			"trailing empty field",
			"a;b;",
			[]string{"a", "b", ""},
		},
		{
			"carriage return stripped",
			"a;b\r",
			[]string{"a", "b"},
		},
		{
			"arabic content",
			"1;أبحر;ميناء جدة",
			[]string{"1", "أبحر", "ميناء جدة"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.in))
		})
	}
}

func TestCountDelimiters(t *testing.T) {
	assert.Equal(t, 2, countDelimiters("a;b;c"))
	assert.Equal(t, 1, countDelimiters(`a;"b;c"`))
	assert.Equal(t, 0, countDelimiters(`"a;b;c"`))
}
