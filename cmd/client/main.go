// Package main implements a small terminal client for the reading log:
// it logs in, fetches the reading records and runs the filtering,
// sorting and summary logic locally, mirroring what the web view does in
// the browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/tkhr-dev/teamlog/internal/client/records"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "server base URL")
		name     = flag.String("user", "", "user name")
		password = flag.String("password", "", "password")
		search   = flag.String("search", "", "filter by title or author substring")
		tags     = flag.String("tags", "", "comma-separated tags; records matching any are kept")
		sortBy   = flag.String("sort", "date", "sort order: date or rating")
		showAll  = flag.Bool("all", false, "show records of all users")
	)
	flag.Parse()

	if *name == "" || *password == "" {
		log.Fatal("both -user and -password are required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("cookie jar: %v", err)
	}
	client := &records.Client{
		HTTP:    &http.Client{Jar: jar},
		BaseURL: *baseURL,
	}

	ctx := context.Background()
	if err := client.Login(ctx, *name, *password); err != nil {
		log.Fatalf("login: %v", err)
	}

	fetched, err := client.Fetch(ctx, *showAll)
	if err != nil {
		log.Fatalf("fetch records: %v", err)
	}

	filters := records.Filters{SearchText: *search}
	if *tags != "" {
		filters.SelectedTags = strings.Split(*tags, ",")
	}

	shown := records.Apply(fetched, filters, records.SortKey(*sortBy))
	for _, rec := range shown {
		finished := rec.FinishedDate
		if finished == "" {
			finished = "-"
		}
		fmt.Printf("%-10s %.1f  %s (%s)\n", finished, rec.Rating, rec.Book.Title, strings.Join(rec.Book.Authors, ", "))
	}

	summary := records.Summarize(shown)
	fmt.Printf("\n%d records, average rating %.2f, %d rated 4+, %d reviewed\n",
		summary.Total, summary.AverageRating, summary.HighlyRated, summary.Reviewed)

	if universe := records.TagUniverse(fetched); len(universe) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(universe, ", "))
	}
}
