// Command gentemplate generates the Excel import template for sites.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	// Rename Sheet1 to Sites
	if err := f.SetSheetName("Sheet1", "Sites"); err != nil {
		log.Fatal(err)
	}

	// Add headers
	headers := []string{"site_id", "name", "base_url", "enabled", "timeout", "search_param", "page_param", "action_param"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Sites", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	// Add example row 1
	row1 := []string{
		"ruyi",
		"如意资源",
		"https://cj.rycjapi.com/api.php/provide/vod/",
		"true",
		"15",
		"wd",
		"pg",
		"ac",
	}
	for i, v := range row1 {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Sites", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	// Add example row 2
	row2 := []string{"bfzy", "暴风资源", "https://bfzyapi.com/api.php/provide/vod/", "false", "20", "", "", ""}
	for i, v := range row2 {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Sites", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	// Create Instructions sheet
	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"site_id - Required. Unique identifier for the site",
		"name - Required. Display name shown in search results",
		"base_url - Required. API base URL (must start with http:// or https://)",
		"enabled - Optional. true/false/1/0/yes/no (default: false)",
		"timeout - Optional. Per-request timeout in seconds (default: 15)",
		"search_param - Optional. Query parameter carrying the keyword (default: wd)",
		"page_param - Optional. Query parameter carrying the page number (default: pg)",
		"action_param - Optional. Query parameter carrying the API action (default: ac)",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	// Ensure examples directory exists
	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	// Save the file
	if err := f.SaveAs("examples/site-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/site-import-template.xlsx")
}
