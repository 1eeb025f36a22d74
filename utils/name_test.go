package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestStoredName(t *testing.T) {
	name := StoredName("My Deck.PDF")
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("extension should be kept lowercase: %q", name)
	}
	if strings.Contains(name, "My Deck") {
		t.Errorf("original name must not leak into the stored name: %q", name)
	}
	if other := StoredName("My Deck.PDF"); other == name {
		t.Error("two stored names for the same file must differ")
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"deck.PPTX":   "pptx",
		"a.b.pdf":     "pdf",
		"noextension": "",
		".gitignore":  "gitignore",
	}
	for name, want := range cases {
		if got := FileExtension(name); got != want {
			t.Errorf("FileExtension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" draft , final,, review ")
	want := []string{"draft", "final", "review"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := ParseTags("  "); len(got) != 0 {
		t.Errorf("blank input: got %v", got)
	}
}

func TestSanitizeHeaderFilename(t *testing.T) {
	if got := SanitizeHeaderFilename("evil\r\nname\".pdf"); got != "evilname.pdf" {
		t.Errorf("got %q", got)
	}
	if got := SanitizeHeaderFilename("  "); got != "download" {
		t.Errorf("blank name: got %q", got)
	}
}
