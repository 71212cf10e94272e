package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sevigo/md2poui/internal/menu"
)

var quotedKeyRegexp = regexp.MustCompile(`(?m)^(\s*)"(label|link|subItems)":`)

// menuItem mirrors the PoMenuItem (and ThfMenuItem) fields the generated service fills.
type menuItem struct {
	Label    string     `json:"label"`
	Link     string     `json:"link"`
	SubItems []menuItem `json:"subItems,omitempty"`
}

// MenuLiteral formats a menu forest as a TypeScript array literal with unquoted keys.
func MenuLiteral(nodes []menu.Node) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(toMenuItems(nodes)); err != nil {
		return "", fmt.Errorf("failed to encode menu items: %w", err)
	}

	literal := quotedKeyRegexp.ReplaceAllString(buf.String(), "$1$2:")
	return strings.TrimSuffix(literal, "\n"), nil
}

func toMenuItems(nodes []menu.Node) []menuItem {
	items := make([]menuItem, 0, len(nodes))
	for _, n := range nodes {
		item := menuItem{Label: n.Label, Link: n.Link}
		if len(n.Children) > 0 {
			item.SubItems = toMenuItems(n.Children)
		}
		items = append(items, item)
	}
	return items
}
