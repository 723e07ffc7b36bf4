package todo

import (
	"reflect"
	"testing"
)

func TestFindOpen(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "no todo section",
			markdown: "# Something\n\n",
			want:     nil,
		},
		{
			name:     "section without a list",
			markdown: "# Something\n\n## TODOs\n\nabc\n",
			want:     nil,
		},
		{
			name:     "single open item",
			markdown: "# Something\n\n## TODOs\n\n* [ ] abc\n",
			want:     []string{"* [ ] abc\n"},
		},
		{
			name:     "empty section followed by another",
			markdown: "# Something\n\n## TODOs\n\n## Not TODOs\n\n* [ ] elsewhere\n",
			want:     nil,
		},
		{
			name:     "multiple open items",
			markdown: "# Something\n\n## TODOs\n\n* [ ] first\n\n* [ ] second\n\n* [ ] third\n\n## Other thing\n",
			want:     []string{"* [ ] first\n", "* [ ] second\n", "* [ ] third\n"},
		},
		{
			name:     "skips completed items",
			markdown: "# Something\n\n## TODOs\n\n* [ ] first\n\n* [x] second\n\n* [ ] third\n\n## Other thing\n",
			want:     []string{"* [ ] first\n", "* [ ] third\n"},
		},
		{
			name:     "ignores open items beneath a completed one",
			markdown: "# Something\n\n## TODOs\n\n* [ ] first\n\n* [x] second\n    * [ ] second.dot.one\n\n* [ ] third\n\n## Other thing\n",
			want:     []string{"* [ ] first\n", "* [ ] third\n"},
		},
		{
			name:     "ignores plain bullets within completed items",
			markdown: "# Something\n\n## TODOs\n\n* [ ] first\n\n* [x] second\n    * second.dot.one\n\n* [ ] third\n\n## Other thing\n",
			want:     []string{"* [ ] first\n", "* [ ] third\n"},
		},
		{
			name:     "keeps nested content of open items",
			markdown: "## TODOs\n\n* [ ] parent\n  * [x] child\n* [ ] sibling\n",
			want:     []string{"* [ ] parent\n  * [x] child\n", "* [ ] sibling\n"},
		},
		{
			name:     "ignores plain bullets",
			markdown: "## TODOs\n\n* just a note\n* [ ] real\n",
			want:     []string{"* [ ] real\n"},
		},
		{
			name:     "level one heading is not the section",
			markdown: "# TODOs\n\n* [ ] nope\n",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindOpen(tt.markdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindOpen() = %q, want %q", got, tt.want)
			}
		})
	}
}
