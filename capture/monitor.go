package capture

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aliasvault/formcore/detect"
	"github.com/aliasvault/formcore/dom"
)

// ErrNoDocument is returned when a Monitor is constructed without a
// document or event capability. This is programmer error, not page noise.
var ErrNoDocument = errors.New("capture: nil document or event source")

// Monitor is the login capture state machine for one document. Lifecycle:
// New → Initialize → (events) → Destroy. After Destroy, Initialize starts
// fresh: no listener, callback, or debounce entry survives.
type Monitor struct {
	doc    dom.Document
	events dom.Events
	cfg    Config
	logger *slog.Logger

	deb    *debouncer
	router *router

	nextCB    int
	callbacks map[int]CallbackFunc
	cbOrder   []int

	cancels     []dom.CancelFunc
	initialized bool
}

// New creates a Monitor. Sinks receive every captured login after the
// registered callbacks; both survive until Destroy.
func New(doc dom.Document, events dom.Events, cfg Config, logger *slog.Logger, sinks ...Sink) (*Monitor, error) {
	if doc == nil || events == nil {
		return nil, ErrNoDocument
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	return &Monitor{
		doc:        doc,
		events:     events,
		cfg:        cfg,
		logger:     logger,
		deb:       newDebouncer(cfg.DebounceWindow, cfg.MaxDebounceEntries),
		router:    newRouter(logger, sinks...),
		callbacks: make(map[int]CallbackFunc),
	}, nil
}

// Initialize wires submit, click and structural listeners. Calling it on an
// already-initialized Monitor is a no-op: listeners are never registered
// twice.
func (m *Monitor) Initialize() {
	if m.initialized {
		return
	}
	m.initialized = true

	m.cancels = append(m.cancels,
		m.events.OnSubmit(m.handleSubmit),
		m.events.OnClick(m.handleClick),
		m.events.OnAdded(m.handleAdded),
	)

	m.discoverForms(m.doc.Root())
}

// OnLoginCapture registers a callback for captured logins. Delivery is
// synchronous, in registration order, on the tick that observed the
// trigger. The returned cancel removes the callback.
func (m *Monitor) OnLoginCapture(fn CallbackFunc) dom.CancelFunc {
	id := m.nextCB
	m.nextCB++
	m.callbacks[id] = fn
	m.cbOrder = append(m.cbOrder, id)
	return func() { delete(m.callbacks, id) }
}

// Destroy removes all listeners and observers, clears callbacks and
// debounce state, and closes sinks. The Monitor is safe to drop afterwards;
// nothing fires later.
func (m *Monitor) Destroy() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
	m.callbacks = make(map[int]CallbackFunc)
	m.cbOrder = nil
	m.deb.reset()
	m.router.close()
	m.initialized = false
}

// AutoDismiss exposes the configured popup lifetime for the caller's UI
// timer.
func (m *Monitor) AutoDismiss() time.Duration { return m.cfg.AutoDismiss }

func (m *Monitor) handleSubmit(form dom.Element) {
	if !m.initialized || form == nil {
		return
	}
	m.capture(form)
}

func (m *Monitor) handleClick(target dom.Element) {
	if !m.initialized || target == nil {
		return
	}
	if !submitLike(target) {
		return
	}
	form := dom.OwnerForm(target)
	if form == nil {
		return
	}
	m.capture(form)
}

// handleAdded observes dynamically added form containers. Listeners are
// document-delegated, so no per-form registration happens here; historical
// mutations are never replayed by contract with dom.Events.
func (m *Monitor) handleAdded(root dom.Element) {
	if !m.initialized || root == nil {
		return
	}
	m.discoverForms(root)
}

// discoverForms logs how many forms a subtree carries. Diagnostic only; it
// holds no element references.
func (m *Monitor) discoverForms(root dom.Element) {
	if root == nil {
		return
	}
	n := 0
	dom.Walk(root, func(el dom.Element) bool {
		if dom.IsTag(el, "form") {
			n++
		}
		return true
	})
	if n > 0 {
		m.logger.Debug("capture: forms discovered", "count", n)
	}
}

// capture runs the full pipeline for one trigger: exclusion checks, field
// extraction, debounce, emit.
func (m *Monitor) capture(form dom.Element) {
	if m.excluded() {
		return
	}

	// Invisible password fields are skipped during value search; the first
	// visible field per role wins.
	fields := detect.FindFields(form, detect.IsVisible)
	if fields == nil || !fields.LoginCapable() {
		return
	}

	username := fieldValue(fields.Username)
	if username == "" {
		username = fieldValue(fields.Email)
	}
	password := fieldValue(fields.Password)
	if username == "" && password == "" {
		return
	}

	domain := m.domain()
	key := fingerprint(domain, username, password)
	if !m.deb.shouldEmit(key) {
		m.logger.Debug("capture: duplicate submission suppressed", "domain", domain)
		return
	}

	login := CapturedLogin{
		ID:         uuid.NewString(),
		Username:   username,
		Password:   password,
		URL:        m.doc.Location(),
		Domain:     domain,
		FaviconURL: m.faviconURL(),
		At:         time.Now(),
	}

	m.logger.Info("capture: login captured", "domain", domain, "id", login.ID)
	m.emit(login)
}

func (m *Monitor) emit(login CapturedLogin) {
	for _, id := range m.cbOrder {
		fn, ok := m.callbacks[id]
		if !ok {
			continue
		}
		m.emitOne(fn, login)
	}
	m.router.send(login)
}

// emitOne delivers to a single callback; a panicking callback is recovered
// and logged so the remaining callbacks still run.
func (m *Monitor) emitOne(fn CallbackFunc, login CapturedLogin) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("capture: callback panicked", "panic", rec)
		}
	}()
	fn(login)
}

// excluded checks the self-referential domain list and the page-level
// disable marker before any capture logic runs.
func (m *Monitor) excluded() bool {
	domain := m.domain()
	for _, excl := range m.cfg.ExcludedDomains {
		if domain == excl || strings.HasSuffix(domain, "."+excl) {
			return true
		}
	}

	root := m.doc.Root()
	if root == nil {
		return false
	}
	if m.disabledOn(root) {
		return true
	}
	for _, c := range root.Children() {
		if dom.IsTag(c, "body") && m.disabledOn(c) {
			return true
		}
	}
	return false
}

// disabledOn requires the exact value "true"; "false", empty, or absence do
// not suppress.
func (m *Monitor) disabledOn(el dom.Element) bool {
	v, ok := el.Attr(m.cfg.DisableAttr)
	return ok && v == DisableValue
}

func (m *Monitor) domain() string {
	loc := m.doc.Location()
	if loc == "" {
		return ""
	}
	u, err := url.Parse(loc)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// faviconURL finds the page icon: the first <link rel~=icon> resolved
// against the page URL, falling back to /favicon.ico.
func (m *Monitor) faviconURL() string {
	loc := m.doc.Location()
	base, err := url.Parse(loc)
	if err != nil || base.Host == "" {
		return ""
	}

	href := ""
	dom.Walk(m.doc.Root(), func(el dom.Element) bool {
		if !dom.IsTag(el, "link") {
			return true
		}
		rel := strings.ToLower(dom.AttrDefault(el, "rel", ""))
		for _, tok := range strings.Fields(rel) {
			if tok == "icon" || tok == "shortcut" || tok == "apple-touch-icon" {
				if h, ok := el.Attr("href"); ok && h != "" {
					href = h
					return false
				}
			}
		}
		return true
	})

	if href == "" {
		href = "/favicon.ico"
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// submitLike reports whether a click target is a submission control:
// button[type=submit], typeless buttons inside a form, input[type=submit],
// and role="button" elements driving AJAX flows. button[type=button] is
// explicitly excluded.
func submitLike(el dom.Element) bool {
	switch strings.ToLower(el.Tag()) {
	case "button":
		typ := strings.ToLower(dom.AttrDefault(el, "type", ""))
		switch typ {
		case "submit":
			return true
		case "button", "reset":
			return false
		}
		// No declared type: submits when inside a form.
		return dom.Closest(el, func(e dom.Element) bool { return dom.IsTag(e, "form") }) != nil
	case "input":
		return strings.EqualFold(dom.AttrDefault(el, "type", ""), "submit")
	}
	role, ok := el.Attr("role")
	return ok && strings.EqualFold(role, "button")
}

func fieldValue(el dom.Element) string {
	if el == nil || !el.Connected() {
		return ""
	}
	return dom.AttrDefault(el, "value", "")
}
