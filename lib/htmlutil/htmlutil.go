package htmlutil

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("loyalty.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

type Anchor struct {
	Name string
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func cleanText(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			b.WriteRune(c)
		}
	}
	out := strings.Trim(b.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(out, " ")
}

// GetAnchors extracts every link in the selection, dropping anchors
// whose href does not parse as a url.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	sel.Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			return
		}

		var name string
		if len(s.Nodes) > 0 {
			name = cleanText(GetText(s.Nodes[0]))
		}
		anchors = append(anchors, Anchor{
			Name: name,
			Href: link.String(),
		})
	})

	span.SetAttributes(attribute.Int("count", len(anchors)))
	return anchors
}
