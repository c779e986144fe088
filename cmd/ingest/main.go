// Command ingest bulk-loads campaign entrants from a spreadsheet CSV
// export. Rows are recorded through the entry service under a rate limit;
// identities the ledger has already seen count as skips, not failures.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/config"
	"github.com/prizepacket/prizepacket/internal/database"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/service"
)

// IngestResult gathers aggregated counters for the run. Atomic counters are
// used so workers never contend on a lock.
type IngestResult struct {
	Recorded   int64
	Duplicates int64
	Failed     int64
}

// validateFlags rejects inputs the run cannot make progress with. A rate
// below one row per second would park every worker on the limiter forever.
func validateFlags(campaignID int64, filePath string, rps, workers int) error {
	if campaignID <= 0 {
		return errors.New("-campaign is required")
	}
	if filePath == "" {
		return errors.New("-file is required")
	}
	if rps < 1 {
		return errors.New("-rps must be at least 1")
	}
	if workers < 1 {
		return errors.New("-workers must be at least 1")
	}
	return nil
}

func main() {
	var (
		campaignID int64
		filePath   string
		platform   string
		rps        int
		workers    int
	)
	flag.Int64Var(&campaignID, "campaign", 0, "campaign id to record entries into")
	flag.StringVar(&filePath, "file", "", "CSV file: display_name,platform_user_id,is_subscriber")
	flag.StringVar(&platform, "platform", string(model.PlatformGoogleSheet), "entry platform")
	flag.IntVar(&rps, "rps", 50, "rows per second")
	flag.IntVar(&workers, "workers", 4, "concurrent workers")
	flag.Parse()

	if err := validateFlags(campaignID, filePath, rps, workers); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	store := config.NewFileStore(os.Getenv("PRIZEPACKET_CONFIG"))
	if !store.Exists() {
		log.Fatalf("Not installed: no configuration at %s", store.Path())
	}
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load persisted configuration: %v", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	entries := service.NewEntryService(db.Postgres)

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", filePath, err)
	}
	defer file.Close()

	rows := make(chan service.NewEntry, workers*2)
	limiter := rate.NewLimiter(rate.Limit(rps), 1)

	var result IngestResult
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range rows {
				if err := limiter.Wait(ctx); err != nil {
					// Keep draining so the producer never blocks on a
					// channel nobody reads.
					atomic.AddInt64(&result.Failed, 1)
					continue
				}
				_, err := entries.Record(ctx, entry)
				switch {
				case err == nil:
					atomic.AddInt64(&result.Recorded, 1)
				case errors.Is(err, apperrors.ErrDuplicateEntry):
					atomic.AddInt64(&result.Duplicates, 1)
				default:
					atomic.AddInt64(&result.Failed, 1)
					log.Printf("row %q: %v", entry.DisplayName, err)
				}
			}
		}()
	}

	sourceDetail := fmt.Sprintf("csv import: %s", filePath)
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV: %v", err)
		}
		lineNo++
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		entry := service.NewEntry{
			CampaignID:   campaignID,
			Platform:     model.Platform(platform),
			DisplayName:  strings.TrimSpace(record[0]),
			SourceDetail: &sourceDetail,
		}
		if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
			userID := strings.TrimSpace(record[1])
			entry.PlatformUserID = &userID
		}
		if len(record) > 2 {
			entry.IsSubscriber = strings.EqualFold(strings.TrimSpace(record[2]), "true")
		}
		rows <- entry
	}
	close(rows)
	wg.Wait()

	fmt.Printf("ingested %d rows: %d recorded, %d duplicates, %d failed\n",
		lineNo, result.Recorded, result.Duplicates, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
