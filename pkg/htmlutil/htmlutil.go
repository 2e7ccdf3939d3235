package htmlutil

import (
	"bytes"
	"strings"

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

// StripExtraASCII removes every character outside of the byte range 26-126
// (inclusive) from s.
func StripExtraASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 26 && r <= 126 {
			return r
		}
		return -1
	}, s)
}
