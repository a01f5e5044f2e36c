package detect_test

import (
	"testing"

	"github.com/aliasvault/formcore/detect"
	"github.com/aliasvault/formcore/dom"
	"github.com/aliasvault/formcore/dom/htmldom"
)

func parseDoc(t *testing.T, src string) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func mustSelect(t *testing.T, doc *htmldom.Document, sel string) dom.Element {
	t.Helper()
	el := doc.QuerySelector(sel)
	if el == nil {
		t.Fatalf("no element matches %q", sel)
	}
	return el
}

func TestIsVisible_StyleTricks(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  bool
	}{
		{"no styles", "", true},
		{"display none", "display: none", false},
		{"display none uppercase", "display: NONE", false},
		{"visibility hidden", "visibility: hidden", false},
		{"opacity zero", "opacity: 0", false},
		{"opacity zero percent", "opacity: 0%", false},
		{"opacity zero with opacity transition", "opacity: 0; transition: opacity 0.3s ease", true},
		{"opacity zero with all transition", "opacity: 0; transition: all 150ms", true},
		{"opacity zero with unrelated transition", "opacity: 0; transition: width 0.3s", false},
		{"opacity one", "opacity: 1", true},
		{"hidden despite transition", "display: none; transition: opacity 0.3s", false},
		{"unparseable opacity", "opacity: banana", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, `<html><body><input id="f" style="`+tt.style+`"></body></html>`)
			if got := detect.IsVisible(mustSelect(t, doc, "#f")); got != tt.want {
				t.Errorf("IsVisible: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDisplayed_IgnoresOpacity(t *testing.T) {
	doc := parseDoc(t, `<html><body><input id="f" style="opacity: 0"></body></html>`)
	if !detect.IsDisplayed(mustSelect(t, doc, "#f")) {
		t.Error("IsDisplayed: got false for opacity:0, want true (opacity exempt)")
	}
}

func TestContainerVisible_NoTransitionException(t *testing.T) {
	doc := parseDoc(t, `<html><body><form id="f" style="opacity: 0; transition: opacity 0.3s"></form></body></html>`)
	if detect.ContainerVisible(mustSelect(t, doc, "#f")) {
		t.Error("ContainerVisible: got true for opacity:0 container, want false even with transition")
	}
}

func TestIsVisible_DetachedElement(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="wrap"><input id="f"></div></body></html>`)
	el := mustSelect(t, doc, "#f")
	doc.Detach(mustSelect(t, doc, "#wrap"))

	if detect.IsVisible(el) {
		t.Error("IsVisible: got true for detached element, want false")
	}
}

func TestIsVisible_StylesheetRule(t *testing.T) {
	doc := parseDoc(t, `<html><body><input id="f" class="hidden"></body></html>`)
	doc.AddStyle(".hidden", map[string]string{"display": "none"})

	if detect.IsVisible(mustSelect(t, doc, "#f")) {
		t.Error("IsVisible: got true for .hidden rule, want false")
	}
}
