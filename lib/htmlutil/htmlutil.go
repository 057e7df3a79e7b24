package htmlutil

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

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
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText collapses the whitespace soup goquery text extraction leaves
// behind and drops non-printable characters.
func CleanText(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			b.WriteRune(c)
		} else {
			b.WriteRune(' ')
		}
	}
	out := strings.TrimSpace(b.String())
	return innerWhitespace.ReplaceAllString(out, " ")
}

var digitRegex = regexp.MustCompile(`[0-9]`)

// ParseCount pulls a ticket count out of a dashboard cell. French locale
// grouping ("1 234", narrow no-break spaces) and suffixes ("512 vendus")
// are tolerated. Returns nil when the cell holds no number.
func ParseCount(s string) *int {
	if !digitRegex.MatchString(s) {
		return nil
	}
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		} else if b.Len() > 0 && !unicode.IsSpace(c) && c != ' ' && c != ' ' && c != '.' && c != ',' {
			break
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseAmount pulls a monetary amount out of a cell like "1 234,56 €".
func ParseAmount(s string) *float64 {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ',':
			b.WriteRune('.')
		case c == '.':
			b.WriteRune('.')
		}
	}
	if b.Len() == 0 {
		return nil
	}
	cleaned := b.String()
	// keep only the last decimal separator, the rest were grouping
	if i := strings.LastIndex(cleaned, "."); i >= 0 {
		cleaned = strings.ReplaceAll(cleaned[:i], ".", "") + cleaned[i:]
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}
