// Package advsearch embeds the adventure search engine in a Go program.
//
// The client talks to Elasticsearch directly and, when configured, caches
// autocomplete lookups in Redis or Valkey. It serves the same operations as
// the HTTP API without the HTTP hop.
//
//	client, err := advsearch.New(ctx,
//	    advsearch.WithElastic("http://localhost:9200"),
//	    advsearch.WithIndex("adventures"),
//	    advsearch.WithFields(
//	        advsearch.TextField("title", 5),
//	        advsearch.IntegerField("numPages", "numPages"),
//	        advsearch.StringField("publisher", "publisher.keyword"),
//	    ),
//	)
//	res, _ := client.Search(ctx, advsearch.SearchParams{
//	    Query:   "lost mine",
//	    Filters: map[string]string{"numPages": advsearch.IntRange(nil, &maxPages, false)},
//	})
package advsearch
