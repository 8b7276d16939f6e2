// Package prompt holds the fixed templates sent to the model for each
// pipeline stage. The templates use single-brace placeholders
// ({input_text}, {lecture}, {summary}) filled verbatim with user content.
package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed templates/validate.txt
	validateTemplate string

	//go:embed templates/summarize.txt
	summarizeTemplate string

	//go:embed templates/graph.txt
	graphTemplate string
)

// Validate returns the content-classification prompt for the given input.
// The model is instructed to answer with exactly VALID or INVALID.
func Validate(inputText string) string {
	return strings.ReplaceAll(validateTemplate, "{input_text}", inputText)
}

// Summarize returns the hierarchical-summary prompt for the given lecture.
func Summarize(lecture string) string {
	return strings.ReplaceAll(summarizeTemplate, "{lecture}", lecture)
}

// DescribeGraph returns the DOT-generation prompt for the given summary.
func DescribeGraph(summary string) string {
	return strings.ReplaceAll(graphTemplate, "{summary}", summary)
}
