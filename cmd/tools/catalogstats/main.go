// catalogstats loads the configured sources and prints what the catalog
// looks like: per-facet value counts and a sample of the normalized records.
package main

import (
	"context"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/DanielTheTeacher/ActivityHub/internal/catalog"
	"github.com/DanielTheTeacher/ActivityHub/internal/ingest"
)

func main() {
	reg, err := ingest.LoadRegistry(os.Getenv("SOURCES_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	activities, err := ingest.NewLoader(reg).Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	facets := []catalog.Facet{
		catalog.FacetMainCategory,
		catalog.FacetSubCategory,
		catalog.FacetCEFRLevel,
		catalog.FacetGroupSize,
		catalog.FacetPreparationRequired,
		catalog.FacetMaterialsResources,
		catalog.FacetActivityType,
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Facets (%d activities)", len(activities))
	t.AppendHeader(table.Row{"Facet", "Distinct", "Values"})
	for _, f := range facets {
		values := catalog.ExtractFacet(activities, f)
		t.AppendRow(table.Row{f, len(values), ingest.TruncateText(joinValues(values), 80)})
	}
	t.Render()

	sample := table.NewWriter()
	sample.SetOutputMirror(os.Stdout)
	sample.SetTitle("Sample records")
	sample.AppendHeader(table.Row{"ID", "Title", "Category", "CEFR", "Description"})
	for i, a := range activities {
		if i >= 10 {
			break
		}
		sample.AppendRow(table.Row{
			a.ID,
			ingest.TruncateText(a.Title, 30),
			a.Tags.MainCategory,
			joinValues(a.Tags.CEFRLevel),
			ingest.TruncateText(ingest.PlainText(a.FullDescription), 50),
		})
	}
	sample.Render()
}

func joinValues(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
