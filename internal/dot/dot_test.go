package dot

import (
	"strings"
	"testing"
)

func TestCleanFencedBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain fence",
			raw:  "```\ndigraph G { a -> b; }\n```",
			want: "digraph G { a -> b; }",
		},
		{
			name: "dot language fence",
			raw:  "```dot\ndigraph G { a -> b; }\n```",
			want: "digraph G { a -> b; }",
		},
		{
			name: "graphviz fence with surrounding prose",
			raw:  "Here's the DOT code:\n```graphviz\ndigraph G { a -> b; }\n```",
			want: "digraph G { a -> b; }",
		},
		{
			name: "no fence",
			raw:  "digraph G { a -> b; }",
			want: "digraph G { a -> b; }",
		},
		{
			name: "stray backticks",
			raw:  "``digraph G { a -> b; }``",
			want: "digraph G { a -> b; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanPrefixesAndSuffixes(t *testing.T) {
	raw := "The DOT code is:\ndigraph G { a -> b; }\nHope this helps!"
	want := "digraph G { a -> b; }"
	if got := Clean(raw); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanExtractsEmbeddedGraph(t *testing.T) {
	raw := "Sure! Below is your graph.\n\ndigraph Topic {\n  a -> b;\n}"
	got := Clean(raw)
	if !strings.HasPrefix(got, "digraph Topic") {
		t.Errorf("got %q, want digraph prefix", got)
	}
}

func TestCleanEmpty(t *testing.T) {
	if got := Clean("   \n  "); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := Clean(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{"valid digraph", "digraph G { a -> b; }", false},
		{"valid undirected graph", "graph G { a -- b; }", false},
		{"empty", "", true},
		{"whitespace only", "  \n ", true},
		{"prose", "I could not generate a graph.", true},
		{"unbalanced braces", "digraph G { a -> b;", true},
		{"no body", "digraph G", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.src)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFixFillColorsRewritesLightColors(t *testing.T) {
	src := `digraph G {
    node [shape=box, style=filled];
    AI [label="AI", color=lightgray];
    ML [label="ML", color="lightblue"];
    AI -> ML;
}`
	got := FixFillColors(src)

	if strings.Contains(got, "color=lightgray") && !strings.Contains(got, "fillcolor=lightgray") {
		t.Error("bare light color not rewritten to fillcolor")
	}
	if !strings.Contains(got, "fillcolor=lightgray") {
		t.Errorf("missing fillcolor=lightgray in %q", got)
	}
	if !strings.Contains(got, `fillcolor="lightblue"`) {
		t.Errorf("missing quoted fillcolor in %q", got)
	}
	if !strings.Contains(got, "fontcolor=black") {
		t.Error("fontcolor=black not added for filled nodes")
	}
}

func TestFixFillColorsNoFilledStyle(t *testing.T) {
	src := `digraph G { AI [label="AI", color=lightgray]; }`
	if got := FixFillColors(src); got != src {
		t.Errorf("unfilled graph modified: %q", got)
	}
}

func TestMapUnsupportedColors(t *testing.T) {
	src := `digraph G {
    AI [label="AI", fillcolor=lightgray];
    ML [label="ML", fillcolor="lightblue"];
    DL [label="DL", fillcolor=blue];
}`
	got := MapUnsupportedColors(src)

	if strings.Contains(got, "lightgray") {
		t.Error("lightgray not replaced")
	}
	if !strings.Contains(got, "fillcolor=white") {
		t.Errorf("lightgray should map to white, got %q", got)
	}
	if !strings.Contains(got, `fillcolor="cyan"`) {
		t.Errorf("lightblue should map to cyan, got %q", got)
	}
	// Dark backgrounds get white text, light backgrounds black text.
	if !strings.Contains(got, "fillcolor=blue, fontcolor=white") {
		t.Errorf("dark fill should get white fontcolor, got %q", got)
	}
	if !strings.Contains(got, "fillcolor=white, fontcolor=black") {
		t.Errorf("light fill should get black fontcolor, got %q", got)
	}
}

func TestCleanAppliesFillColorFix(t *testing.T) {
	raw := "```dot\ndigraph G {\n  node [shape=box, style=filled];\n  A [label=\"A\", color=lightgreen];\n}\n```"
	got := Clean(raw)

	if !strings.Contains(got, "fillcolor=lightgreen") {
		t.Errorf("Clean should apply fill color fixes, got %q", got)
	}
}
