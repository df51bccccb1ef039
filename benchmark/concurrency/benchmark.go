package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/agrichain/agrichain/benchmark/client"
)

type WorkflowResult struct {
	Success  bool
	Latency  time.Duration
	ErrorMsg string
}

// Result aggregates the workflow results of one run
type Result struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	Duration       time.Duration
	TPS            float64
	AvgLatency     time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	LastError      string
}

// add folds one workflow result into r
func (r *Result) add(wr WorkflowResult) {
	r.TotalRequests++
	if !wr.Success {
		r.FailedReqs++
		r.LastError = wr.ErrorMsg
		return
	}

	r.SuccessfulReqs++
	if r.SuccessfulReqs == 1 || wr.Latency < r.MinLatency {
		r.MinLatency = wr.Latency
	}
	if wr.Latency > r.MaxLatency {
		r.MaxLatency = wr.Latency
	}
	// running mean over successful workflows
	r.AvgLatency += (wr.Latency - r.AvgLatency) / time.Duration(r.SuccessfulReqs)
}

// finish sets the run duration and throughput
func (r *Result) finish(elapsed time.Duration) {
	r.Duration = elapsed
	if elapsed > 0 {
		r.TPS = float64(r.SuccessfulReqs) / elapsed.Seconds()
	}
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func main() {
	workers := flag.Int("workers", 10, "Number of concurrent workers")
	duration := flag.Int("duration", 30, "Test duration in seconds")
	port := flag.String("port", "5000", "AgriChain HTTP port")
	role := flag.String("role", "consumer", "Role to log in as")
	flag.Parse()

	recordsDir := "./records"
	os.MkdirAll(recordsDir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(recordsDir, fmt.Sprintf(
		"concurrency_%s_w%d_d%ds_%s.csv",
		timestamp, *workers, *duration, *role,
	))

	baseURL := fmt.Sprintf("http://127.0.0.1:%s", *port)

	fmt.Println("========================================")
	fmt.Println("   CONCURRENCY BENCHMARK")
	fmt.Println("========================================")
	fmt.Printf("Workers:    %d\n", *workers)
	fmt.Printf("Duration:   %ds\n", *duration)
	fmt.Printf("URL:        %s\n", baseURL)
	fmt.Printf("Role:       %s\n", *role)
	fmt.Printf("Output:     %s\n", filename)
	fmt.Println("========================================")
	fmt.Println("")

	stopChan := make(chan struct{})
	resultsChan := make(chan WorkflowResult, *workers*10)

	var wg sync.WaitGroup
	fmt.Println("Starting workers...")
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		workflow := client.Workflow{
			Role:          *role,
			WalletAddress: fmt.Sprintf("0xbench%04d", i),
		}
		go worker(baseURL, workflow, stopChan, resultsChan, &wg)
	}

	// Collect results
	var result Result
	startTime := time.Now()
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for wr := range resultsChan {
			result.add(wr)
			if result.TotalRequests%10 == 0 {
				fmt.Printf("\rWorkflows: %d | Success: %d | Failed: %d | TPS: %.2f",
					result.TotalRequests, result.SuccessfulReqs, result.FailedReqs,
					float64(result.SuccessfulReqs)/time.Since(startTime).Seconds())
			}
		}
	}()

	fmt.Printf("Running benchmark for %d seconds...\n", *duration)
	time.Sleep(time.Duration(*duration) * time.Second)

	// Stop workers
	close(stopChan)
	wg.Wait()
	close(resultsChan)
	collectorWg.Wait()

	result.finish(time.Since(startTime))

	fmt.Println("\n\n========================================")
	fmt.Println("   BENCHMARK RESULTS")
	fmt.Println("========================================")
	fmt.Printf("Total Workflows:   %d\n", result.TotalRequests)
	fmt.Printf("Successful:        %d (%.2f%%)\n", result.SuccessfulReqs, percent(result.SuccessfulReqs, result.TotalRequests))
	fmt.Printf("Failed:            %d (%.2f%%)\n", result.FailedReqs, percent(result.FailedReqs, result.TotalRequests))
	fmt.Printf("Duration:          %v\n", result.Duration)
	fmt.Printf("Throughput (TPS):  %.2f\n", result.TPS)
	fmt.Printf("Avg Latency:       %v\n", result.AvgLatency)
	fmt.Printf("Min Latency:       %v\n", result.MinLatency)
	fmt.Printf("Max Latency:       %v\n", result.MaxLatency)
	if result.LastError != "" {
		fmt.Printf("Last Error:        %s\n", result.LastError)
	}
	fmt.Println("========================================")

	// Save to CSV
	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{
		"Role", "Workers", "Duration_s",
		"Total_Workflows", "Successful", "Failed",
		"TPS", "Avg_Latency_ms", "Min_Latency_ms", "Max_Latency_ms",
	})

	writer.Write([]string{
		*role,
		fmt.Sprintf("%d", *workers),
		fmt.Sprintf("%d", *duration),
		fmt.Sprintf("%d", result.TotalRequests),
		fmt.Sprintf("%d", result.SuccessfulReqs),
		fmt.Sprintf("%d", result.FailedReqs),
		fmt.Sprintf("%.2f", result.TPS),
		fmt.Sprintf("%.2f", float64(result.AvgLatency.Microseconds())/1000),
		fmt.Sprintf("%.2f", float64(result.MinLatency.Microseconds())/1000),
		fmt.Sprintf("%.2f", float64(result.MaxLatency.Microseconds())/1000),
	})

	fmt.Printf("\nResults saved to: %s\n", filename)
}

func worker(baseURL string, workflow client.Workflow, stopChan chan struct{}, resultsChan chan WorkflowResult, wg *sync.WaitGroup) {
	defer wg.Done()

	httpClient := client.NewHTTPClient(baseURL)

	for {
		select {
		case <-stopChan:
			return
		default:
			start := time.Now()
			_, err := workflow.Run(httpClient)
			result := WorkflowResult{
				Success: err == nil,
				Latency: time.Since(start),
			}
			if err != nil {
				result.ErrorMsg = err.Error()
			}

			resultsChan <- result
		}
	}
}
