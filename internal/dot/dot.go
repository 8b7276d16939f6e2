// Package dot cleans and sanity-checks the graph-description documents
// emitted by the model before they reach a renderer. The model is asked
// for bare DOT, but in practice wraps it in markdown fences or chatty
// prefixes often enough that stripping them here is mandatory.
package dot

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?is)```(?:dot|graphviz)?\\s*\\n?(.*?)\\n?```")
	edgeTicksRe   = regexp.MustCompile("^`+|`+$")

	prefixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Here's the DOT code:?\s*`),
		regexp.MustCompile(`(?i)^The DOT code is:?\s*`),
		regexp.MustCompile(`(?i)^DOT code:?\s*`),
		regexp.MustCompile(`(?i)^Graph:\s*`),
		regexp.MustCompile(`(?i)^Here is the digraph:?\s*`),
	}
	suffixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*This creates the knowledge graph\.?$`),
		regexp.MustCompile(`(?i)\s*The graph is now ready\.?$`),
		regexp.MustCompile(`(?i)\s*Hope this helps!?\.?$`),
	}

	graphStartRe = regexp.MustCompile(`(?i)^\s*(di)?graph\s`)
	graphFindRe  = regexp.MustCompile(`(?is)((?:di)?graph\s.*)`)
)

// Clean strips markdown syntax, stray backticks, and known LLM
// prefixes/suffixes from raw model output and extracts the DOT body.
// Returns "" when no DOT-looking content remains.
func Clean(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	if m := fencedBlockRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}
	cleaned = strings.TrimSpace(edgeTicksRe.ReplaceAllString(cleaned, ""))

	for _, re := range prefixRes {
		cleaned = strings.TrimSpace(re.ReplaceAllString(cleaned, ""))
	}
	for _, re := range suffixRes {
		cleaned = strings.TrimSpace(re.ReplaceAllString(cleaned, ""))
	}

	if !graphStartRe.MatchString(cleaned) {
		if m := graphFindRe.FindStringSubmatch(cleaned); m != nil {
			cleaned = m[1]
		}
	}

	return strings.TrimSpace(FixFillColors(cleaned))
}

// Validate performs the syntax sanity checks applied before rendering.
// It does not attempt to repair the document.
func Validate(src string) error {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return fmt.Errorf("dot: document is empty")
	}
	if !graphStartRe.MatchString(trimmed) {
		return fmt.Errorf("dot: document must start with 'digraph' or 'graph'")
	}
	open := strings.Count(trimmed, "{")
	closed := strings.Count(trimmed, "}")
	if open != closed {
		return fmt.Errorf("dot: unbalanced braces: %d opening, %d closing", open, closed)
	}
	if open == 0 {
		return fmt.Errorf("dot: document has no graph body")
	}
	return nil
}

var (
	bareLightColorRe   = regexp.MustCompile(`([\[,]\s*)color=(light\w+)`)
	quotedLightColorRe = regexp.MustCompile(`([\[,]\s*)color="(light\w+)"`)
	nodeAttrsRe        = regexp.MustCompile(`(\w+\s*\[)([^\]]+)(\])`)
)

// FixFillColors rewrites color=lightX attributes to fillcolor=lightX when
// the graph uses style=filled, and forces an explicit fontcolor so labels
// stay readable on filled nodes.
func FixFillColors(src string) string {
	if !strings.Contains(src, "style=filled") && !strings.Contains(src, `style="filled"`) {
		return src
	}

	out := bareLightColorRe.ReplaceAllString(src, "${1}fillcolor=$2")
	out = quotedLightColorRe.ReplaceAllString(out, `${1}fillcolor="$2"`)

	out = nodeAttrsRe.ReplaceAllStringFunc(out, func(node string) string {
		m := nodeAttrsRe.FindStringSubmatch(node)
		attrs := m[2]
		if strings.Contains(attrs, "fontcolor=") {
			return node
		}
		if strings.HasSuffix(strings.TrimSpace(attrs), ",") {
			attrs += " fontcolor=black"
		} else {
			attrs += ", fontcolor=black"
		}
		return m[1] + attrs + m[3]
	})

	return out
}

// colorMapping replaces named colors the hosted renderer does not
// support with close, readable substitutes.
var colorMapping = map[string]string{
	"lightgray":      "white",
	"lightgrey":      "white",
	"lightblue":      "cyan",
	"lightgreen":     "yellow",
	"lightcyan":      "cyan",
	"lightpink":      "pink",
	"lightyellow":    "yellow",
	"lightsalmon":    "orange",
	"lightcoral":     "pink",
	"lightsteelblue": "cyan",
	"lightseagreen":  "yellow",
	"lightslategray": "white",
	"lightslategrey": "white",
}

var darkColors = map[string]bool{
	"blue":   true,
	"purple": true,
	"red":    true,
	"green":  true,
}

var fillColorValueRe = regexp.MustCompile(`fillcolor="?(\w+)"?`)
var fontColorAttrRe = regexp.MustCompile(`fontcolor="?\w+"?`)

// MapUnsupportedColors swaps light* color names for the basic palette the
// hosted renderer accepts and picks a contrasting fontcolor per node.
func MapUnsupportedColors(src string) string {
	out := src
	for unsupported, supported := range colorMapping {
		for _, attr := range []string{"fillcolor", "color"} {
			out = strings.ReplaceAll(out, attr+"="+unsupported, attr+"="+supported)
			out = strings.ReplaceAll(out, attr+`="`+unsupported+`"`, attr+`="`+supported+`"`)
		}
	}

	out = nodeAttrsRe.ReplaceAllStringFunc(out, func(node string) string {
		m := nodeAttrsRe.FindStringSubmatch(node)
		attrs := m[2]

		fc := fillColorValueRe.FindStringSubmatch(attrs)
		if fc == nil {
			return node
		}
		fontcolor := "black"
		if darkColors[strings.ToLower(fc[1])] {
			fontcolor = "white"
		}

		if fontColorAttrRe.MatchString(attrs) {
			attrs = fontColorAttrRe.ReplaceAllString(attrs, "fontcolor="+fontcolor)
		} else if strings.HasSuffix(strings.TrimSpace(attrs), ",") {
			attrs += " fontcolor=" + fontcolor
		} else {
			attrs += ", fontcolor=" + fontcolor
		}
		return m[1] + attrs + m[3]
	})

	return out
}
