package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

func main() {
	var (
		serverURL  = flag.String("server", "http://localhost:8080", "armada-insight server base URL")
		inputPath  = flag.String("input", "", "Path to vehicle input JSON")
		outputPath = flag.String("output", "", "Path to write report markdown (defaults to stdout)")
		pdfPath    = flag.String("pdf", "", "Optional path to also download the PDF report")
		timeout    = flag.Duration("timeout", 2*time.Minute, "Request timeout")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}
	payload, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	client := &http.Client{}

	rep, err := analyze(ctx, client, *serverURL, payload)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "Catatan dinamis (%d):\n", len(rep.Warnings))
		for _, w := range rep.Warnings {
			fmt.Fprintf(os.Stderr, "  - %s\n", w)
		}
	}
	if rep.ReportMode == analysis.ReportModeDegraded {
		fmt.Fprintln(os.Stderr, "Mode DEGRADED: sebagian narasi memakai teks fallback.")
	}

	if err := writeMarkdown(*outputPath, rep.ReportMarkdown); err != nil {
		log.Fatalf("write markdown: %v", err)
	}

	if *pdfPath != "" {
		if err := downloadPDF(ctx, client, *serverURL, payload, *pdfPath); err != nil {
			log.Fatalf("download pdf: %v", err)
		}
		log.Printf("pdf written to %s", *pdfPath)
	}
}

func analyze(ctx context.Context, client *http.Client, baseURL string, payload []byte) (analysis.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/analyze", bytes.NewReader(payload))
	if err != nil {
		return analysis.Report{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return analysis.Report{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return analysis.Report{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return analysis.Report{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var rep analysis.Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return analysis.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}

func downloadPDF(ctx context.Context, client *http.Client, baseURL string, payload []byte, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/analyze/pdf", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}

func writeMarkdown(outputPath, markdown string) error {
	if outputPath == "" {
		_, err := fmt.Print(markdown)
		return err
	}
	return os.WriteFile(outputPath, []byte(markdown), 0o644)
}
