package md2rich

import (
	"strings"
	"testing"
)

func TestExportFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "first heading slugified",
			markdown: "# My Cool Report!\n\nbody text",
			want:     "my-cool-report",
		},
		{
			name:     "no heading falls back",
			markdown: "just a paragraph",
			want:     "document",
		},
		{
			name:     "heading later in document",
			markdown: "intro paragraph\n\n# Actual Title\n\nmore",
			want:     "actual-title",
		},
		{
			name:     "symbol only heading falls back",
			markdown: "# !!!\n",
			want:     "document",
		},
		{
			name:     "subheading alone does not count",
			markdown: "## Only Second Level\n",
			want:     "document",
		},
		{
			name:     "long heading truncated",
			markdown: "# " + strings.Repeat("word ", 30),
			want:     strings.Trim(Slugify(strings.TrimSpace(strings.Repeat("word ", 30)))[:64], "-"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExportFilename(tt.markdown)
			if got != tt.want {
				t.Errorf("ExportFilename(%q) = %q, want %q", tt.markdown, got, tt.want)
			}
			if len(got) > maxFilenameLen {
				t.Errorf("filename %q exceeds %d characters", got, maxFilenameLen)
			}
		})
	}
}

func TestExportArtifactFormats(t *testing.T) {
	t.Parallel()

	html := "<h1 id=\"title\">Title</h1>\n<p>body</p>\n"
	markdown := "# Title\n\nbody"
	opts := DefaultOptions()

	tests := []struct {
		format       Format
		wantFilename string
		wantMIME     string
		wantContains string
	}{
		{FormatHTML, "title.html", mimeHTML, "<!DOCTYPE html>"},
		{FormatWord, "title.doc", mimeWord, "urn:schemas-microsoft-com:office:word"},
		{FormatRTF, "title.rtf", mimeRTF, `{\rtf1`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			art, err := exportArtifact(html, markdown, tt.format, opts)
			if err != nil {
				t.Fatalf("exportArtifact(%s) error: %v", tt.format, err)
			}
			if art.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", art.Filename, tt.wantFilename)
			}
			if art.MIME != tt.wantMIME {
				t.Errorf("MIME = %q, want %q", art.MIME, tt.wantMIME)
			}
			if !strings.Contains(string(art.Data), tt.wantContains) {
				t.Errorf("Data missing %q", tt.wantContains)
			}
		})
	}
}

func TestExportArtifactUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := exportArtifact("<p>x</p>", "x", Format("pdf"), DefaultOptions())
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("error %q should name the format", err)
	}
}

func TestStandaloneHTMLStyles(t *testing.T) {
	t.Parallel()

	withStyles := DefaultOptions()
	noStyles := DefaultOptions()
	noStyles.IncludeStyles = false

	got := standaloneHTML("<p>x</p>", "doc", withStyles)
	if !strings.Contains(got, "<style>") {
		t.Error("expected embedded stylesheet")
	}
	got = standaloneHTML("<p>x</p>", "doc", noStyles)
	if strings.Contains(got, "<style>") {
		t.Error("stylesheet should be omitted when styles are disabled")
	}
}

func TestWordHTMLHeader(t *testing.T) {
	t.Parallel()

	got := wordHTML("<p>x</p>", DefaultOptions())
	for _, want := range []string{
		"urn:schemas-microsoft-com:office:office",
		"urn:schemas-microsoft-com:office:word",
		"<w:WordDocument>",
		"<p>x</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("wordHTML output missing %q", want)
		}
	}
}
