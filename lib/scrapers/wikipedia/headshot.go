package wikipedia

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"loyalty-rankings/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/wikipedia")

// ErrNoHeadshot means the article page carries no usable image, which
// is common for members without an official portrait.
var ErrNoHeadshot = errors.New("no headshot image found")

// NormalizeArticleURL makes scheme-less article links (as they appear
// in the spreadsheets) absolute against the english wikipedia.
func NormalizeArticleURL(link string) string {
	if !strings.HasPrefix(link, "http") {
		return "https://en.wikipedia.org" + link
	}
	return link
}

// HeadshotURL resolves the full-resolution portrait image of a
// wikipedia article. The page markup gives a thumbnail; the original
// upload URL is reconstructed from it, falling back to the Commons
// file page and finally to the thumbnail itself.
func (c *Client) HeadshotURL(ctx context.Context, articleURL string) (string, error) {
	ctx, span := tracer.Start(ctx, "HeadshotURL")
	defer span.End()
	span.SetAttributes(attribute.String("article", articleURL))

	articleURL = NormalizeArticleURL(articleURL)

	res, err := c.get(ctx, articleURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch article")
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse article html")
		return "", err
	}

	cand, err := headshotCandidate(doc)
	if err != nil {
		return "", err
	}

	if full, ok := fullResolutionURL(cand.src); ok {
		return full, nil
	}
	if imageBaseRegex.MatchString(cand.src) {
		// matched a .jpg base but the path is too shallow to carry a
		// hash directory, the thumbnail is the best we have
		slog.WarnContext(ctx, "using thumbnail url as fallback", "article", articleURL)
		return absoluteSrc(cand.src), nil
	}

	fileName := commonsFileName(cand.href)
	if fileName == "" {
		slog.WarnContext(ctx, "using thumbnail url as fallback", "article", articleURL)
		return absoluteSrc(cand.src), nil
	}

	full, err := c.commonsFullImage(ctx, fileName)
	if err == nil && full != "" {
		return full, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve through commons", "file", fileName, "err", err)
	}

	if constructed := constructedCommonsURL(fileName); constructed != "" {
		return constructed, nil
	}
	return absoluteSrc(cand.src), nil
}

type candidate struct {
	href string
	src  string
}

// headshotCandidate picks the image-description link out of the
// article markup.
func headshotCandidate(doc *goquery.Document) (candidate, error) {
	link := doc.Find("a.mw-file-description").First()
	if link.Length() == 0 {
		return candidate{}, ErrNoHeadshot
	}
	href := link.AttrOr("href", "")
	if href == "" {
		return candidate{}, ErrNoHeadshot
	}
	img := link.Find("img").First()
	if img.Length() == 0 {
		return candidate{}, ErrNoHeadshot
	}
	src := img.AttrOr("src", "")
	if src == "" {
		return candidate{}, ErrNoHeadshot
	}
	return candidate{href: href, src: src}, nil
}

var imageBaseRegex = regexp.MustCompile(`(/[^/]+\.jpg)`)

// fullResolutionURL rebuilds the original upload URL from a thumbnail
// src like
// //upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Name.jpg/220px-Name.jpg
// where "a/ab" is the content-hash directory.
func fullResolutionURL(src string) (string, bool) {
	groups := imageBaseRegex.FindStringSubmatch(src)
	if len(groups) < 2 {
		return "", false
	}
	parts := strings.Split(src, "/")
	if len(parts) < 4 {
		return "", false
	}
	hashDir := parts[len(parts)-4] + "/" + parts[len(parts)-3]
	return "https://upload.wikimedia.org/wikipedia/commons/" + hashDir + groups[1], true
}

func commonsFileName(href string) string {
	name := path.Base(href)
	name = strings.ReplaceAll(name, "File:", "")
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// commonsFullImage asks the Wikimedia Commons file page for the
// original upload link.
func (c *Client) commonsFullImage(ctx context.Context, fileName string) (string, error) {
	ctx, span := tracer.Start(ctx, "commonsFullImage")
	defer span.End()

	res, err := c.get(ctx, fmt.Sprintf("%s/wiki/File:%s", c.commonsBase, fileName))
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", err
	}
	return fullImageHref(ctx, doc), nil
}

func fullImageHref(ctx context.Context, doc *goquery.Document) string {
	anchors := htmlutil.GetAnchors(ctx, doc.Find(".fullImageLink a"))
	for _, a := range anchors {
		if a.Href != "" {
			return absoluteSrc(a.Href)
		}
	}
	return ""
}

// constructedCommonsURL guesses the upload URL from the file name
// alone, the layout Commons uses when no file page can be fetched.
func constructedCommonsURL(fileName string) string {
	name := strings.ReplaceAll(fileName, " ", "_")
	if len(name) < 2 {
		return ""
	}
	return fmt.Sprintf(
		"https://upload.wikimedia.org/wikipedia/commons/thumb/%s/%s/%s",
		name[0:1], name[0:2], name,
	)
}

func absoluteSrc(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}
