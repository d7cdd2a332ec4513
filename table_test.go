package md2rich

import (
	"strings"
	"testing"
)

func TestParseTableAlignment(t *testing.T) {
	t.Parallel()

	got := Parse("|A|B|\n|-|-:|\n|1|2|", Options{})

	// Column 1 left (the default, no style attribute), column 2 right.
	wants := []string{
		"<th>A</th>",
		`<th style="text-align:right">B</th>`,
		"<td>1</td>",
		`<td style="text-align:right">2</td>`,
	}
	for _, want := range wants {
		if !strings.Contains(got.HTML, want) {
			t.Errorf("table output %q missing %q", got.HTML, want)
		}
	}

	// "<th" alone would also count the <thead> wrapper.
	if n := strings.Count(got.HTML, "<th>") + strings.Count(got.HTML, "<th "); n != 2 {
		t.Errorf("got %d header cells, want 2", n)
	}
	if n := strings.Count(got.HTML, "<td"); n != 2 {
		t.Errorf("got %d body cells, want 2", n)
	}
}

func TestParseTableCenterAlignment(t *testing.T) {
	t.Parallel()

	got := Parse("| X | Y |\n|:-:|:-|\n| a | b |", Options{})
	if !strings.Contains(got.HTML, `<th style="text-align:center">X</th>`) {
		t.Errorf("missing centered header in %q", got.HTML)
	}
	if !strings.Contains(got.HTML, "<th>Y</th>") {
		t.Errorf("missing left header in %q", got.HTML)
	}
}

func TestParseTableRaggedRows(t *testing.T) {
	t.Parallel()

	// Body rows with more or fewer cells than the header degrade
	// gracefully; extra columns default to left alignment.
	got := Parse("|A|B|\n|-|-|\n|1|\n|1|2|3|", Options{})

	if !strings.Contains(got.HTML, "<td>3</td>") {
		t.Errorf("extra cell dropped: %q", got.HTML)
	}
	if !strings.Contains(got.HTML, "<tr><td>1</td></tr>") {
		t.Errorf("short row mangled: %q", got.HTML)
	}
}

func TestParseTableStopsAtNonPipeLine(t *testing.T) {
	t.Parallel()

	got := Parse("|A|\n|-|\n|1|\n\nafterwards", Options{})
	if !strings.Contains(got.HTML, "<p>afterwards</p>") {
		t.Errorf("text after table lost: %q", got.HTML)
	}
}

func TestParseAlignments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		separator string
		want      []alignment
	}{
		{"all left", "|-|--|---|", []alignment{alignLeft, alignLeft, alignLeft}},
		{"mixed", "|:-|:-:|-:|", []alignment{alignLeft, alignCenter, alignRight}},
		{"no edge pipes", "-|-:", []alignment{alignLeft, alignRight}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseAlignments(tt.separator)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d alignments, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("column %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
