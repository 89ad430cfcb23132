// Package extract turns raw pages and JSON payloads into typed records. There
// is one extractor per source shape. Missing required structure is reported
// as an *errors.ParseError; a malformed individual row is skipped and logged.
package extract

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/soccer-data-go/internal/util"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"go.uber.org/zap"
)

func newDocument(source string, body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewParseError(source, "document", fmt.Errorf("HTML parse failed: %w", err))
	}
	return doc, nil
}

func text(sel *goquery.Selection) string {
	return util.CollapseSpaces(sel.Text())
}

// AnchorText returns the text of the first anchor inside sel, falling back to
// sel's own text when it has no anchor.
func AnchorText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	anchor := sel.Find("a").First()
	if anchor.Length() == 0 {
		return strings.TrimSpace(sel.Text())
	}
	return strings.TrimSpace(anchor.Text())
}

// AnchorURL returns prefix + the href of the first anchor inside sel, or ""
// when there is no anchor or the href is blank.
func AnchorURL(sel *goquery.Selection, prefix string) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	href, ok := sel.Find("a").First().Attr("href")
	if !ok {
		return ""
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	return absolute(prefix, href)
}

func absolute(prefix, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return prefix + href
}

// IdentifierFromURL parses the numeric id at the end of a source URL such as
// ".../clemson/clgid-30". It returns false for blank or malformed URLs.
func IdentifierFromURL(url string) (int, bool) {
	raw := util.TrailingID(url)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func skipRow(logger *zap.Logger, source string, index int, reason string) {
	logger.Debug("Skipping malformed row",
		zap.String("source", source),
		zap.Int("row", index),
		zap.String("reason", reason))
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
