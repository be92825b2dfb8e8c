// Package platform implements the outbound actions available on a
// repository row: opening its link in the system browser and sharing it.
package platform

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"

	"github.com/mdp/qrterminal/v3"
	"github.com/pkg/browser"
)

// Browser opens links in the system browser.
type Browser struct {
	openURL func(string) error
	logger  *log.Logger
}

func NewBrowser(logger *log.Logger) *Browser {
	return &Browser{openURL: browser.OpenURL, logger: logger}
}

// Open hands link to the system browser. Only absolute http(s) links are
// accepted so that a crafted html_url cannot launch a local handler.
func (b *Browser) Open(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", link, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) link", link)
	}
	b.logger.Printf("Platform: opening %s\n", link)
	return b.openURL(link)
}

// Sharer is the terminal share sheet: it prints a plain-text payload and,
// optionally, a QR code of it for scanning with a phone.
type Sharer struct {
	out    io.Writer
	qr     bool
	logger *log.Logger
}

func NewSharer(out io.Writer, qr bool, logger *log.Logger) *Sharer {
	return &Sharer{out: out, qr: qr, logger: logger}
}

func (s *Sharer) Share(text string) error {
	if text == "" {
		return errors.New("nothing to share")
	}
	s.logger.Printf("Platform: sharing %s\n", text)
	if _, err := fmt.Fprintln(s.out, text); err != nil {
		return err
	}
	if s.qr {
		qrterminal.GenerateHalfBlock(text, qrterminal.L, s.out)
	}
	return nil
}
