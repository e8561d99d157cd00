package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/DanielTheTeacher/ActivityHub/internal/catalog"
)

// Loader fetches every registered source and produces the normalized
// activity set. All sources load concurrently and the results join before
// normalization; if any one source fails, the whole load fails and no
// partial dataset is returned.
type Loader struct {
	Registry *Registry
	Fetcher  *Fetcher
}

func NewLoader(reg *Registry) *Loader {
	return &Loader{Registry: reg, Fetcher: NewFetcher()}
}

// Load returns the full normalized activity set, or an error naming the
// first failing source.
func (l *Loader) Load(ctx context.Context) ([]catalog.Activity, error) {
	sources := l.Registry.Sources
	raw := make([][]catalog.RawRecord, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			records, err := l.loadSource(ctx, src)
			if err != nil {
				return fmt.Errorf("source %q: %w", src.ID, err)
			}
			raw[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	activities := catalog.Normalize(raw...)
	total := 0
	for _, r := range raw {
		total += len(r)
	}
	log.Printf("Loaded %d activities from %d sources (%d raw records)", len(activities), len(sources), total)
	return activities, nil
}

func (l *Loader) loadSource(ctx context.Context, src SourceConfig) ([]catalog.RawRecord, error) {
	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].FullDescription = catalog.FlexString(SanitizeDescription(records[i].FullDescription.String()))
	}
	return records, nil
}

func (l *Loader) read(ctx context.Context, src SourceConfig) ([]byte, error) {
	if strings.HasPrefix(src.URL, "http://") || strings.HasPrefix(src.URL, "https://") {
		return l.Fetcher.Fetch(ctx, src.URL, src.Fetch)
	}
	return os.ReadFile(src.URL)
}

// decodeRecords parses a source payload, requiring a JSON array at the top
// level. Anything else is a hard ingestion failure.
func decodeRecords(data []byte) ([]catalog.RawRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("payload is not a JSON array")
	}

	var records []catalog.RawRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return records, nil
}
