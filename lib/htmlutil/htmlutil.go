package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node` in document order.
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

// numberSpaces are stripped from counts, the results publish thousands
// separated with non-breaking spaces.
var numberSpaces = strings.NewReplacer("\u00a0", "", " ", "")

// CleanNumber removes every non-breaking space and plain space from a
// formatted count and trims what is left, "1 234 567" becomes "1234567".
func CleanNumber(value string) string {
	return strings.TrimSpace(numberSpaces.Replace(value))
}

// CellTexts returns the text of every node matched by `selector` under
// `row`, with surrounding whitespace trimmed.
func CellTexts(row *goquery.Selection, selector string) []string {
	nodes := row.Find(selector).Nodes
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = strings.TrimSpace(GetText(n))
	}
	return out
}
