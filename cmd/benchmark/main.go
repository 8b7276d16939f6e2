package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

type modelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type processRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
}

type processResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	GraphPath string `json:"graph_path"`
	Summary   string `json:"summary"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

type result struct {
	Sample       string
	Chars        int
	Run          int
	WallMs       int64
	SummaryChars int
	GraphRef     string
	Error        string
}

func main() {
	url := flag.String("url", "http://localhost:8090", "API base URL")
	apiKey := flag.String("api-key", "", "server API key for X-API-Key (optional)")
	providerID := flag.String("provider", "anthropic", "LLM provider ID")
	model := flag.String("model", "", "model ID (default: first listed by the provider)")
	llmKey := flag.String("llm-key", "", "provider API key sent with each request")
	runs := flag.Int("runs", 3, "number of runs per sample")
	concurrency := flag.Int("concurrency", 0, "concurrent-mode: fire N parallel requests and check graph refs are distinct")
	jsonOut := flag.String("json", "", "write results to JSON file (e.g. results.json)")
	flag.Parse()

	if *llmKey == "" {
		fmt.Fprintln(os.Stderr, "-llm-key is required (the pipeline forwards it to the provider)")
		os.Exit(1)
	}

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 10 * time.Minute}

	modelID := *model
	if modelID == "" {
		modelID = discoverModel(client, baseURL, *apiKey, *providerID)
	}

	if *concurrency > 0 {
		runConcurrentMode(client, baseURL, *apiKey, *providerID, modelID, *llmKey, *concurrency)
		return
	}

	fmt.Printf("Benchmarking against %s using %s/%s (%d runs per sample)\n", baseURL, *providerID, modelID, *runs)

	var results []result
	var failures int
	for _, sample := range Samples {
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := benchmark(client, baseURL, *apiKey, *providerID, modelID, *llmKey, sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.WallMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, baseURL, *providerID, modelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func discoverModel(client *http.Client, baseURL, apiKey, providerID string) string {
	req, err := http.NewRequest("GET", baseURL+"/api/models/"+providerID, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching models: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Models endpoint returned %d: %s\n", resp.StatusCode, body)
		os.Exit(1)
	}

	var mr struct {
		Models []modelInfo `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding models: %v\n", err)
		os.Exit(1)
	}
	if len(mr.Models) == 0 {
		fmt.Fprintf(os.Stderr, "No models available for provider %s\n", providerID)
		os.Exit(1)
	}

	return mr.Models[0].ID
}

func process(client *http.Client, baseURL, apiKey, providerID, modelID, llmKey, text string) (processResponse, int64, error) {
	payload, _ := json.Marshal(processRequest{
		Text:     text,
		Provider: providerID,
		Model:    modelID,
		APIKey:   llmKey,
	})

	req, err := http.NewRequest("POST", baseURL+"/api/process", strings.NewReader(string(payload)))
	if err != nil {
		return processResponse{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	start := time.Now()
	resp, err := client.Do(req)
	wallMs := time.Since(start).Milliseconds()
	if err != nil {
		return processResponse{}, wallMs, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return processResponse{}, wallMs, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr processResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return processResponse{}, wallMs, err
	}
	return pr, wallMs, nil
}

func benchmark(client *http.Client, baseURL, apiKey, providerID, modelID, llmKey string, sample Sample, run int) result {
	fail := func(err string) result {
		return result{Sample: sample.Name, Chars: len(sample.Text), Run: run, Error: err}
	}

	pr, wallMs, err := process(client, baseURL, apiKey, providerID, modelID, llmKey, sample.Text)
	if err != nil {
		return fail(err.Error())
	}
	if !pr.Success {
		return fail(fmt.Sprintf("%s (%s)", pr.Error, pr.ErrorCode))
	}

	return result{
		Sample:       sample.Name,
		Chars:        len(sample.Text),
		Run:          run,
		WallMs:       wallMs,
		SummaryChars: len(pr.Summary),
		GraphRef:     pr.GraphPath,
	}
}

// runConcurrentMode fires n identical requests in parallel and verifies
// every run produced its own rendered file.
func runConcurrentMode(client *http.Client, baseURL, apiKey, providerID, modelID, llmKey string, n int) {
	sample := Samples[1]
	fmt.Printf("Concurrent mode: %d parallel requests against %s using %s/%s\n", n, baseURL, providerID, modelID)

	var wg sync.WaitGroup
	results := make([]result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = benchmark(client, baseURL, apiKey, providerID, modelID, llmKey, sample, i+1)
		}(i)
	}
	wg.Wait()

	var failures int
	refs := make(map[string]int)
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("  run %d: FAILED (%s)\n", r.Run, r.Error)
			failures++
			continue
		}
		fmt.Printf("  run %d: %dms -> %s\n", r.Run, r.WallMs, r.GraphRef)
		refs[r.GraphRef]++
	}

	for ref, count := range refs {
		if count > 1 {
			fmt.Fprintf(os.Stderr, "DUPLICATE: %s returned by %d runs\n", ref, count)
			failures++
		}
	}

	fmt.Printf("Done: %d/%d ok, %d distinct graph refs\n", n-failures, n, len(refs))
	if failures > 0 {
		os.Exit(1)
	}
}

func printTable(results []result) {
	fmt.Println("| Sample | Chars | Run | Wall (ms) | Summary Chars | Graph Ref |")
	fmt.Println("|--------|-------|-----|-----------|---------------|-----------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-6s | %5d | %d | %9s | %13s | %-9s |\n",
				r.Sample, r.Chars, r.Run, "FAIL", "-", "-")
			continue
		}
		fmt.Printf("| %-6s | %5d | %d | %9d | %13d | %-9s |\n",
			r.Sample, r.Chars, r.Run, r.WallMs, r.SummaryChars, r.GraphRef)
	}
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalWall int64
	var totalChars int
	minWall := ok[0].WallMs
	maxWall := ok[0].WallMs
	minSample := ok[0].Sample
	maxSample := ok[0].Sample

	for _, r := range ok {
		totalWall += r.WallMs
		totalChars += r.Chars
		if r.WallMs < minWall {
			minWall = r.WallMs
			minSample = r.Sample
		}
		if r.WallMs > maxWall {
			maxWall = r.WallMs
			maxSample = r.Sample
		}
	}

	avgMsPerChar := float64(totalWall) / float64(totalChars)

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg ms/char: %.2f\n", avgMsPerChar)
	fmt.Printf("- Min wall: %dms (%s)\n", minWall, minSample)
	fmt.Printf("- Max wall: %dms (%s)\n", maxWall, maxSample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL, providerID, modelID string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Provider:  providerID,
		Model:     modelID,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
