package htmldom

import "github.com/aliasvault/formcore/dom"

// The htmldom event surface is dispatch-driven: there is no live page, so
// the test harness (or the formscan CLI) fires the events a browser would.
// Handler bookkeeping matches the dom.Events contract: synchronous delivery
// in registration order, no replay of past structural changes.

// OnSubmit registers a submit handler.
func (d *Document) OnSubmit(fn func(form dom.Element)) dom.CancelFunc {
	return register(d, d.submitH, fn)
}

// OnClick registers a click handler.
func (d *Document) OnClick(fn func(target dom.Element)) dom.CancelFunc {
	return register(d, d.clickH, fn)
}

// OnAdded registers a structural-change handler.
func (d *Document) OnAdded(fn func(root dom.Element)) dom.CancelFunc {
	return register(d, d.addedH, fn)
}

// DispatchSubmit fires the submit handlers for a form element.
func (d *Document) DispatchSubmit(form dom.Element) {
	for _, id := range orderedKeys(d.submitH) {
		d.submitH[id](form)
	}
}

// DispatchClick fires the click handlers for a target element.
func (d *Document) DispatchClick(target dom.Element) {
	for _, id := range orderedKeys(d.clickH) {
		d.clickH[id](target)
	}
}

func (d *Document) fireAdded(root dom.Element) {
	for _, id := range orderedKeys(d.addedH) {
		d.addedH[id](root)
	}
}

func register(d *Document, m map[int]func(dom.Element), fn func(dom.Element)) dom.CancelFunc {
	id := d.nextHandler
	d.nextHandler++
	m[id] = fn
	return func() { delete(m, id) }
}

// orderedKeys returns handler ids in registration order. IDs are assigned
// from a single increasing counter, so sorted order is registration order.
func orderedKeys(m map[int]func(dom.Element)) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
