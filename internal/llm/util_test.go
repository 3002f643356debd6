package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n{\"name\": \"x\"}\n```",
			want: `{"name": "x"}`,
		},
		{
			name: "generic fence with language tag",
			in:   "```javascript\n{\"name\": \"x\"}\n```",
			want: `{"name": "x"}`,
		},
		{
			name: "generic fence without tag",
			in:   "```\n{\"name\": \"x\"}\n```",
			want: `{"name": "x"}`,
		},
		{
			name: "no fence",
			in:   `{"name": "x"}`,
			want: `{"name": "x"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```  ",
			want: `{}`,
		},
		{
			name: "fence on same line as content",
			in:   "```{\"name\": \"x\"}```",
			want: `{"name": "x"}`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}
