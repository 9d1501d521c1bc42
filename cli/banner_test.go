package cli

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		width     int
		alignment Alignment
		want      string
	}{
		{
			name:      "left",
			text:      "ok",
			width:     8,
			alignment: AlignLeft,
			want:      "╒══════╕\n│ok    │\n└──────┘",
		},
		{
			name:      "center",
			text:      "ok",
			width:     8,
			alignment: AlignCenter,
			want:      "╒══════╕\n│  ok  │\n└──────┘",
		},
		{
			name:      "right with two lines",
			text:      "a\r\nbb",
			width:     6,
			alignment: AlignRight,
			want:      "╒════╕\n│   a│\n│  bb│\n└────┘",
		},
		{
			name:      "long lines are cut",
			text:      "soak run",
			width:     7,
			alignment: AlignLeft,
			want:      "╒═════╕\n│soak…│\n└─────┘",
		},
		{name: "empty text", text: "", width: 10},
		{name: "no room", text: "x", width: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Banner(tt.text, tt.width, tt.alignment))
		})
	}
}

func TestDivider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "┠───┨\n", Divider(5))
	assert.Equal(t, "┠┨\n", Divider(1))
}

func TestVisibleWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, visibleWidth("résumé"[:len("résumé")-len("é")]))
	assert.Equal(t, 4, visibleWidth("\x1b[32;1mPASS\x1b[0m"))
	assert.Equal(t, "ab", truncate("abc", 2))
}

func TestStatus(t *testing.T) { //nolint:paralleltest
	previous := color.NoColor
	color.NoColor = true

	t.Cleanup(func() { color.NoColor = previous })

	assert.Equal(t, "PASS", Status(true))
	assert.Equal(t, "FAIL", Status(false))
}

func TestRow(t *testing.T) {
	t.Parallel()

	row := Row("trials", 8)
	assert.True(t, strings.HasPrefix(row, "trials:"))
	assert.True(t, strings.HasSuffix(row, " 8"))
	assert.Equal(t, 13, strings.Index(row, "8"))
}
