package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agrichain/agrichain/benchmark/client"
)

func main() {
	iterations := flag.Int("n", 100, "Number of iterations")
	port := flag.String("port", "5000", "AgriChain HTTP port")
	role := flag.String("role", "consumer", "Role to log in as")
	wallet := flag.String("wallet", "0x71C7656EC7ab88b098defB751B7401B5f6d8976F", "Wallet address to log in with")
	flag.Parse()

	recordsDir := "./records"
	os.MkdirAll(recordsDir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(recordsDir, fmt.Sprintf(
		"latency_%s_n%d_%s.csv",
		timestamp, *iterations, *role,
	))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"Iteration", "Step", "Latency_ms"})

	baseURL := fmt.Sprintf("http://127.0.0.1:%s", *port)
	httpClient := client.NewHTTPClient(baseURL)
	workflow := client.Workflow{
		Role:          *role,
		WalletAddress: *wallet,
		Pause:         100 * time.Millisecond,
	}

	fmt.Println("========================================")
	fmt.Println("   LATENCY BENCHMARK")
	fmt.Println("========================================")
	fmt.Printf("Iterations: %d\n", *iterations)
	fmt.Printf("URL:        %s\n", baseURL)
	fmt.Printf("Role:       %s\n", *role)
	fmt.Printf("Output:     %s\n", filename)
	fmt.Println("========================================")
	fmt.Println("")

	successCount := 0
	failCount := 0

	for i := 0; i < *iterations; i++ {
		fmt.Printf("\r[%d/%d] ", i+1, *iterations)

		results, err := workflow.Run(httpClient)
		if err == nil {
			successCount++
			fmt.Print("✓")
			for _, r := range results {
				writer.Write([]string{
					strconv.Itoa(i + 1),
					r.Step,
					strconv.FormatFloat(float64(r.Latency.Microseconds())/1000, 'f', 3, 64),
				})
			}
		} else {
			failCount++
			fmt.Printf("✗ %v\n", err)
		}

		time.Sleep(50 * time.Millisecond)
	}

	fmt.Printf("\n\n========================================\n")
	fmt.Printf("Success: %d/%d\n", successCount, *iterations)
	if failCount > 0 {
		fmt.Printf("Failed:  %d\n", failCount)
	}
	fmt.Printf("Results: %s\n", filename)
	fmt.Println("========================================")
}
