package dashboard

import "strings"

// TimelineStep is one stage of a batch's journey
type TimelineStep struct {
	Step        string `json:"step"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location"`
	Actor       string `json:"actor,omitempty"`
	Status      string `json:"status"`
	Details     string `json:"details,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Humidity    string `json:"humidity,omitempty"`
}

// Timeline is the full trace of one batch
type Timeline struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	BatchID     string         `json:"batchId"`
	HarvestDate string         `json:"harvestDate"`
	Location    string         `json:"location"`
	Steps       []TimelineStep `json:"timeline"`
}

// scanTimeline is attached to every product a consumer scans
func scanTimeline() []TimelineStep {
	return []TimelineStep{
		{Step: "Harvested", Date: "2024-01-15", Location: "Farm A, Nashik, Maharashtra", Status: "completed"},
		{Step: "Processed", Date: "2024-01-16", Location: "Processing Plant A", Status: "completed"},
		{Step: "Distributed", Date: "2024-01-20", Location: "Distribution Center B", Status: "completed"},
		{Step: "Retailed", Date: "2024-01-22", Location: "Fresh Market Store", Status: "completed"},
	}
}

// ProductTimeline returns the traced journey for a batch. Every batch
// currently resolves to the same mock record.
func ProductTimeline(batchID string) Timeline {
	id := strings.TrimSpace(batchID)
	if id == "" {
		id = "BATCH-001"
	}
	return Timeline{
		ID:          id,
		Name:        "Organic Tomatoes",
		BatchID:     "BATCH-001",
		HarvestDate: "2024-01-15",
		Location:    "Farm A, Nashik, Maharashtra",
		Steps: []TimelineStep{
			{Step: "Harvested", Date: "2024-01-15", Time: "08:30 AM", Location: "Farm A, Nashik, Maharashtra", Actor: "Ravi Kumar", Status: "completed", Details: "Tomatoes harvested from greenhouse section 3A", Temperature: "22°C", Humidity: "65%"},
			{Step: "Quality Check", Date: "2024-01-15", Time: "10:15 AM", Location: "Farm A, Nashik, Maharashtra", Actor: "Ravi Kumar", Status: "completed", Details: "Passed quality inspection - Grade A tomatoes", Temperature: "20°C", Humidity: "60%"},
			{Step: "Processing", Date: "2024-01-16", Time: "09:00 AM", Location: "Processing Plant A", Actor: "Green Valley Processing", Status: "completed", Details: "Washed, sorted, and packaged in eco-friendly containers", Temperature: "4°C", Humidity: "70%"},
			{Step: "Distribution", Date: "2024-01-20", Time: "06:00 AM", Location: "Distribution Center B", Actor: "Fresh Distribution Co.", Status: "completed", Details: "Loaded onto refrigerated truck for retail delivery", Temperature: "3°C", Humidity: "65%"},
			{Step: "Retail", Date: "2024-01-22", Time: "11:30 AM", Location: "Fresh Market Store", Actor: "Green Grocery Store", Status: "completed", Details: "Received and placed on store shelves", Temperature: "5°C", Humidity: "60%"},
			{Step: "Consumer", Date: "2024-01-25", Time: "02:15 PM", Location: "Consumer Home", Actor: "You", Status: "current", Details: "Product scanned and verified for authenticity", Temperature: "Room Temperature", Humidity: "N/A"},
		},
	}
}
