package webcheck

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/config"
	"github.com/JustJay7/nyaya-mitra/pkg/logger"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DashboardRow is one case as rendered in the dashboard table.
type DashboardRow struct {
	ID          string
	Title       string
	Parties     string
	SubmittedOn string
	Status      string
}

// Checker drives the served front end in a real browser.
type Checker struct {
	cfg     *config.Config
	browser *rod.Browser
	mu      sync.Mutex
	logger  *logger.Logger
}

// NewChecker launches a browser configured from cfg.
func NewChecker(cfg *config.Config, logger *logger.Logger) (*Checker, error) {
	l := launcher.New().
		Headless(cfg.HeadlessMode).
		Set("user-agent", cfg.UserAgent)

	if cfg.BrowserPath != "" {
		l = l.Bin(cfg.BrowserPath)
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Checker{
		cfg:     cfg,
		browser: browser,
		logger:  logger,
	}, nil
}

// Close shuts the browser down.
func (c *Checker) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.browser.Close()
}

// Dashboard loads the dashboard page and returns the rows it renders.
func (c *Checker) Dashboard(ctx context.Context, baseURL string) ([]DashboardRow, error) {
	page, cancel, err := c.open(ctx, strings.TrimRight(baseURL, "/")+"/dashboard")
	if err != nil {
		return nil, err
	}
	defer cancel()

	// Wait for the loading placeholder to be replaced
	if _, err := page.ElementR("#cases-table-body td", `^(?!Loading cases)`); err != nil {
		return nil, fmt.Errorf("dashboard did not finish loading: %w", err)
	}

	rows, err := page.Elements("#cases-table-body tr")
	if err != nil {
		return nil, fmt.Errorf("failed to read table rows: %w", err)
	}

	var out []DashboardRow
	for _, row := range rows {
		cells, err := row.Elements("td")
		if err != nil {
			return nil, fmt.Errorf("failed to read table cells: %w", err)
		}

		if len(cells) < 5 {
			// Placeholder row: either the empty state or a load error
			text, _ := row.Text()
			if strings.HasPrefix(strings.TrimSpace(text), "Error") {
				return nil, fmt.Errorf("dashboard reported: %s", strings.TrimSpace(text))
			}
			continue
		}

		r := DashboardRow{
			Title:       cellText(cells[0]),
			Parties:     cellText(cells[1]),
			SubmittedOn: cellText(cells[2]),
			Status:      cellText(cells[3]),
		}
		if button, err := cells[4].Element("button"); err == nil {
			if id, err := button.Attribute("data-id"); err == nil && id != nil {
				r.ID = *id
			}
		}
		out = append(out, r)
	}

	c.logger.Debug("Dashboard rendered", "rows", len(out))
	return out, nil
}

// SubmitCase fills in and submits the case form, returning the message the
// page shows afterwards.
func (c *Checker) SubmitCase(ctx context.Context, baseURL, title, parties, description string) (string, error) {
	page, cancel, err := c.open(ctx, strings.TrimRight(baseURL, "/")+"/")
	if err != nil {
		return "", err
	}
	defer cancel()

	fields := []struct {
		selector string
		value    string
	}{
		{"#caseTitle", title},
		{"#partiesInvolved", parties},
		{"#caseDescription", description},
	}
	for _, f := range fields {
		el, err := page.Element(f.selector)
		if err != nil {
			return "", fmt.Errorf("field %s not found: %w", f.selector, err)
		}
		if err := el.Input(f.value); err != nil {
			return "", fmt.Errorf("failed to fill %s: %w", f.selector, err)
		}
	}

	button, err := page.Element("#submit-button")
	if err != nil {
		return "", fmt.Errorf("submit button not found: %w", err)
	}
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", fmt.Errorf("failed to click submit: %w", err)
	}

	msg, err := page.ElementR("#form-message", `\S`)
	if err != nil {
		return "", fmt.Errorf("no form message appeared: %w", err)
	}

	text, err := msg.Text()
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "Error") {
		return text, fmt.Errorf("form reported: %s", text)
	}
	return text, nil
}

func (c *Checker) open(ctx context.Context, url string) (*rod.Page, func(), error) {
	timeout := c.cfg.BrowserTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageCtx, cancel := context.WithTimeout(ctx, timeout)

	c.mu.Lock()
	base, err := c.browser.Page(proto.TargetCreateTarget{})
	c.mu.Unlock()
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create page: %w", err)
	}

	cleanup := func() {
		if err := base.Close(); err != nil {
			c.logger.Debug("Failed to close page", "error", err)
		}
		cancel()
	}

	page := base.Context(pageCtx)

	c.logger.Info("Navigating", "url", url)
	if err := page.Navigate(url); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("page did not load: %w", err)
	}

	return page, cleanup, nil
}

func cellText(el *rod.Element) string {
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
