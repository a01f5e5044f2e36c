package detect

import (
	"strconv"
	"strings"

	"github.com/aliasvault/formcore/dom"
)

// IsVisible reports whether an element is genuinely visible and
// interactable. It is the clickjacking gate applied to the element the user
// actually interacted with:
//
//   - display:none and visibility:hidden are always invisible.
//   - opacity:0 is invisible unless a transition references opacity (or
//     all), which is the legitimate reveal-on-interaction pattern.
//
// A missing computed style resolves to the CSS default, i.e. visible.
func IsVisible(el dom.Element) bool {
	if el == nil || !el.Connected() {
		return false
	}
	if !IsDisplayed(el) {
		return false
	}
	if opacityZero(el) && !transitionRevealsOpacity(el.Style("transition")) {
		return false
	}
	return true
}

// IsDisplayed checks display and visibility only, skipping the opacity
// check. Once the anchor field has passed IsVisible, the other fields of the
// same form use this relaxed check: an attacker cannot selectively hide only
// the password field of a real form without also breaking legitimate
// multi-step UIs.
func IsDisplayed(el dom.Element) bool {
	if el == nil || !el.Connected() {
		return false
	}
	if strings.EqualFold(el.Style("display"), "none") {
		return false
	}
	if strings.EqualFold(el.Style("visibility"), "hidden") {
		return false
	}
	return true
}

// ContainerVisible is the coarse gate applied to the form container as a
// whole. An entirely transparent container is rejected outright: the
// transition exception only relaxes opacity for the anchor field, never for
// the container.
func ContainerVisible(el dom.Element) bool {
	if el == nil || !el.Connected() {
		return false
	}
	return IsDisplayed(el) && !opacityZero(el)
}

func opacityZero(el dom.Element) bool {
	raw := strings.TrimSuffix(strings.TrimSpace(el.Style("opacity")), "%")
	if raw == "" {
		return false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Unparseable opacity resolves to the default, visible.
		return false
	}
	return v == 0
}

// transitionRevealsOpacity reports whether a transition shorthand references
// the opacity property, e.g. "opacity 0.3s ease" or "all 150ms".
func transitionRevealsOpacity(transition string) bool {
	for _, part := range strings.Split(transition, ",") {
		fields := strings.Fields(strings.ToLower(part))
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "opacity" || fields[0] == "all" {
			return true
		}
	}
	return false
}
