package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// A simple struct to capture the incoming pay record
type PayRecord struct {
	SessionID    int64     `json:"sessionId"`
	ContractorID string    `json:"contractorId"`
	HoursWorked  string    `json:"hoursWorked"`
	NetEarnings  string    `json:"netEarnings"`
	ClockOutTime time.Time `json:"clockOutTime"`
}

func exportHandler(w http.ResponseWriter, r *http.Request) {
	var record PayRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	log.Printf("Received pay record for ContractorID: %s, Hours: %s, Net: %s", record.ContractorID, record.HoursWorked, record.NetEarnings)
	w.WriteHeader(http.StatusOK)
}

func main() {
	http.HandleFunc("/", exportHandler)
	log.Println("Accounting API mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}
