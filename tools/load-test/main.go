package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	// Configuration
	url := "http://localhost:8080/api/v1/clock"
	contentType := "application/json"

	// The job and coordinates must exist in the local seed data; the
	// coordinates sit inside the seeded site's geofence.
	jobID := "load-test-job"
	lat, lng := 51.5155, -0.0922

	numContractors := 5000
	requestsPerContractor := 2 // one clock-in, one clock-out
	totalRequests := numContractors * requestsPerContractor
	concurrency := 50 // Number of concurrent requests to avoid local port exhaustion

	fmt.Printf("Starting load test: %d contractors (%d requests each) to %s with concurrency %d\n", numContractors, requestsPerContractor, url, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency) // Semaphore to limit concurrency

	var successCount int64
	var failCount int64

	startTime := time.Now()

	for i := 0; i < numContractors; i++ {
		wg.Add(1)
		sem <- struct{}{} // Acquire token

		contractorID := fmt.Sprintf("load-test-sub-%d", i)

		go func(subID string) {
			defer wg.Done()
			defer func() { <-sem }() // Release token

			payload := []byte(fmt.Sprintf(`{"contractorId": %q, "jobId": %q, "latitude": %v, "longitude": %v}`, subID, jobID, lat, lng))

			for j := 0; j < requestsPerContractor; j++ {
				resp, err := http.Post(url, contentType, bytes.NewBuffer(payload))
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(contractorID)
	}

	wg.Wait()
	duration := time.Since(startTime)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}
