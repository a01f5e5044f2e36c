// Command formscan runs the detection and matching engine from the command
// line, against a static HTML file or a live page.
//
// Usage:
//
//	formscan -html page.html                        # detect login form
//	formscan -html page.html -click "#password"     # classify a clicked field
//	formscan -html page.html -submit "form"         # simulate submit, print capture
//	formscan -url https://example.com               # detect on a live page
//	formscan -credentials vault.json -search example.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/aliasvault/formcore/capture"
	"github.com/aliasvault/formcore/config"
	"github.com/aliasvault/formcore/detect"
	"github.com/aliasvault/formcore/dom"
	"github.com/aliasvault/formcore/dom/htmldom"
	"github.com/aliasvault/formcore/dom/livedom"
	"github.com/aliasvault/formcore/match"
)

func main() {
	htmlPath := flag.String("html", "", "path to an HTML file, or - for stdin")
	location := flag.String("location", "", "page URL to assume for -html input")
	pageURL := flag.String("url", "", "live page URL (launches a browser)")
	clickSel := flag.String("click", "", "CSS selector of the clicked/focused field")
	submitSel := flag.String("submit", "", "CSS selector of a form to submit for capture")
	credsPath := flag.String("credentials", "", "path to a JSON credential file")
	search := flag.String("search", "", "search key for credential matching")
	rpID := flag.String("rpid", "", "relying-party id for passkey matching")
	configPath := flag.String("config", "", "path to engine YAML config")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			logger.Error("formscan: config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var err error
	switch {
	case *credsPath != "":
		err = runMatch(cfg, *credsPath, *search, *rpID)
	case *htmlPath != "":
		err = runStatic(cfg, logger, *htmlPath, *location, *clickSel, *submitSel)
	case *pageURL != "":
		err = runLive(ctx, cfg, logger, *pageURL, *clickSel)
	default:
		fmt.Fprintln(os.Stderr, "usage: formscan -html <file> | -url <url> | -credentials <file> -search <key>")
		os.Exit(1)
	}
	if err != nil {
		logger.Error("formscan: fatal", "error", err)
		os.Exit(1)
	}
}

// report is the JSON shape printed for a detection run.
type report struct {
	ContainsLoginForm bool              `json:"contains_login_form"`
	ClickedRole       string            `json:"clicked_role,omitempty"`
	AutofillTrigger   bool              `json:"autofill_triggerable,omitempty"`
	Fields            map[string]string `json:"fields,omitempty"`
}

func runStatic(cfg *config.Config, logger *slog.Logger, path, location, clickSel, submitSel string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	doc, err := htmldom.Parse(src, htmldom.WithLocation(location))
	if err != nil {
		return fmt.Errorf("formscan: parse html: %w", err)
	}

	if submitSel != "" {
		return runCapture(cfg, logger, doc, submitSel)
	}

	var clicked dom.Element
	if clickSel != "" {
		clicked = doc.QuerySelector(clickSel)
		if clicked == nil {
			return fmt.Errorf("formscan: no element matches %q", clickSel)
		}
	}

	return printReport(doc, clicked)
}

func runLive(ctx context.Context, cfg *config.Config, logger *slog.Logger, pageURL, clickSel string) error {
	browser := rod.New().Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("formscan: connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return fmt.Errorf("formscan: open page: %w", err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		logger.Warn("formscan: wait load timeout", "url", pageURL, "error", err)
	}

	doc, err := livedom.Snapshot(ctx, page)
	if err != nil {
		return err
	}

	var clicked dom.Element
	if clickSel != "" {
		clicked = doc.QuerySelector(clickSel)
	}
	return printReport(doc, clicked)
}

func runCapture(cfg *config.Config, logger *slog.Logger, doc *htmldom.Document, submitSel string) error {
	form := doc.QuerySelector(submitSel)
	if form == nil {
		return fmt.Errorf("formscan: no form matches %q", submitSel)
	}

	mon, err := capture.New(doc, doc, cfg.Capture, logger, buildSinks(cfg, logger, os.Stdout)...)
	if err != nil {
		return err
	}
	mon.Initialize()
	defer mon.Destroy()

	doc.DispatchSubmit(form)
	return nil
}

// buildSinks realises the configured sink declarations. With none declared
// the capture output still goes to w.
func buildSinks(cfg *config.Config, logger *slog.Logger, w io.Writer) []capture.Sink {
	var sinks []capture.Sink
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "stdout":
			sinks = append(sinks, capture.NewStdoutSink(w))
		case "callback":
			// Registered in-process via Monitor.OnLoginCapture; nothing
			// to build from configuration.
		default:
			logger.Warn("formscan: unknown sink type", "type", sc.Type)
		}
	}
	if len(sinks) == 0 {
		sinks = append(sinks, capture.NewStdoutSink(w))
	}
	return sinks
}

func runMatch(cfg *config.Config, credsPath, search, rpID string) error {
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("formscan: read credentials: %w", err)
	}

	var creds []match.Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("formscan: parse credentials: %w", err)
	}

	m := cfg.Matcher()
	var result []match.Credential
	if rpID != "" {
		result = m.FilterForRP(creds, rpID, search)
	} else {
		result = m.Filter(creds, search)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printReport(doc dom.Document, clicked dom.Element) error {
	det := detect.New(doc, clicked)

	rep := report{
		ContainsLoginForm: det.ContainsLoginForm(),
		Fields:            make(map[string]string),
	}
	if clicked != nil {
		rep.ClickedRole = det.DetectedFieldRole().String()
		rep.AutofillTrigger = det.IsAutofillTriggerable()
	}

	if f := det.Form(); f != nil {
		for _, r := range []detect.Role{
			detect.RoleUsername, detect.RoleEmail, detect.RolePassword,
			detect.RolePasswordConfirm, detect.RoleFullName, detect.RoleTotp,
		} {
			if el := f.Field(r); el != nil {
				rep.Fields[r.String()] = describe(el)
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// describe renders an element as tag#id or tag[name=...] for the report.
func describe(el dom.Element) string {
	if id, ok := el.Attr("id"); ok && id != "" {
		return el.Tag() + "#" + id
	}
	if name, ok := el.Attr("name"); ok && name != "" {
		return el.Tag() + "[name=" + name + "]"
	}
	return el.Tag()
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("formscan: read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("formscan: read %s: %w", path, err)
	}
	return string(data), nil
}
