// Package goquery reads linter documentation directories rendered as HTML.
package goquery

import (
	"context"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/extrules"
)

var _ extrules.DocLister = (*Lister)(nil)

// Lister lists the Markdown documents of a GitHub directory page.
type Lister struct {
	loader extrules.SourceLoader
}

// NewLister creates a Lister that downloads directory pages with loader.
// The loader must return raw HTML, so it must not convert documents.
func NewLister(loader extrules.SourceLoader) *Lister {
	return &Lister{loader: loader}
}

// ListDocs returns the documents published in the directory at dirURL.
func (l *Lister) ListDocs(ctx context.Context, dirURL string) (map[string]bool, error) {
	html, err := l.loader.Load(ctx, dirURL)
	if err != nil {
		return nil, err
	}
	return ListMarkdownFiles(html)
}

// embeddedName matches file names in the JSON payload GitHub embeds in
// directory pages rendered client side.
var embeddedName = regexp.MustCompile(`"name":"([^"/]+)\.md"`)

// ListMarkdownFiles returns the base names, without extension, of the
// Markdown files linked from a GitHub directory page. README is excluded.
func ListMarkdownFiles(html string) (map[string]bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, extrules.Errorf(extrules.EINVALID, "failed to parse HTML: %v", err)
	}

	names := make(map[string]bool)
	add := func(name string) {
		if name != "" && !strings.EqualFold(name, "README") {
			names[name] = true
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		base := path.Base(u.Path)
		if strings.HasSuffix(base, ".md") {
			add(strings.TrimSuffix(base, ".md"))
		}
	})

	doc.Find(`script[type="application/json"]`).Each(func(_ int, sel *goquery.Selection) {
		for _, m := range embeddedName.FindAllStringSubmatch(sel.Text(), -1) {
			add(m[1])
		}
	})

	return names, nil
}
