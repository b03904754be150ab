// Package crawler collects restaurant reviews from the Naver and Kakao map
// platforms with a headless Chrome driven via Rod.
package crawler

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Mobile Safari UA; both platforms serve the lighter mobile review list.
const mobileUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"

// Browser owns one Chrome process for the lifetime of the service. Pages are
// opened per collection run and closed when the run ends.
type Browser struct {
	lnch *launcher.Launcher
	b    *rod.Browser
}

// NewBrowser launches Chrome and connects to it.
func NewBrowser(headless bool) (*Browser, error) {
	l := launcher.New().Headless(headless)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("crawler: launch chrome: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("crawler: connect chrome: %w", err)
	}
	return &Browser{lnch: l, b: b}, nil
}

// NewMobilePage opens a stealth page emulating a mobile viewport.
func (br *Browser) NewMobilePage() (*rod.Page, error) {
	page, err := stealth.Page(br.b)
	if err != nil {
		return nil, fmt.Errorf("crawler: create stealth page: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: mobileUA}); err != nil {
		page.Close()
		return nil, fmt.Errorf("crawler: set user agent: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             375,
		Height:            812,
		DeviceScaleFactor: 3,
		Mobile:            true,
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("crawler: set viewport: %w", err)
	}
	return page, nil
}

// Close shuts Chrome down and removes the launcher's temp data.
func (br *Browser) Close() {
	if br.b != nil {
		_ = br.b.Close()
	}
	if br.lnch != nil {
		br.lnch.Cleanup()
	}
}
