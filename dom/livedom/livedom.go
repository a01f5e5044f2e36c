// Package livedom snapshots a live Chromium page into an htmldom document
// the engine can analyze. One Eval harvests the real computed style of every
// element (display, visibility, opacity, transition) and the current value
// of every input into attributes, then serialises the DOM; detection and
// classification then run identically to the static path.
//
// The caller owns the page and its browser; livedom only reads.
package livedom

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/aliasvault/formcore/dom/htmldom"
)

// ErrNilPage is returned for a nil page handle.
var ErrNilPage = errors.New("livedom: nil page")

// snapshotJS annotates every element with its computed style under
// htmldom.SnapshotStyleAttr, copies live input values into the value
// attribute, and returns the serialised document.
const snapshotJS = `() => {
	const props = ['display', 'visibility', 'opacity', 'transition'];
	for (const el of document.querySelectorAll('*')) {
		const cs = getComputedStyle(el);
		el.setAttribute('data-av-style',
			props.map(p => p + ':' + cs.getPropertyValue(p)).join(';'));
		if (el.tagName === 'INPUT') {
			el.setAttribute('value', el.value);
		}
	}
	return document.documentElement.outerHTML;
}`

// Snapshot captures the page's current DOM with real computed styles.
func Snapshot(ctx context.Context, page *rod.Page) (*htmldom.Document, error) {
	if page == nil {
		return nil, ErrNilPage
	}

	info, err := page.Context(ctx).Info()
	if err != nil {
		return nil, fmt.Errorf("livedom: page info: %w", err)
	}

	res, err := page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("livedom: snapshot eval: %w", err)
	}

	doc, err := htmldom.Parse(res.Value.Str(), htmldom.WithLocation(info.URL))
	if err != nil {
		return nil, fmt.Errorf("livedom: parse snapshot: %w", err)
	}
	return doc, nil
}
