package traits

import (
	"fmt"
	"strings"
)

// Strategy selects how a dump target is split into chunks.
type Strategy int

const (
	// StrategyNone fetches the whole target with a single query.
	StrategyNone Strategy = iota
	// StrategyByPredicate discovers the distinct predicate URIs present
	// in the data and fetches one chunk per predicate.
	StrategyByPredicate
)

// Target describes one output table of the dump: its name, the file it
// produces inside the archive, its fixed column schema and its chunking
// strategy.
type Target struct {
	// Name identifies the target in chunk keys and diagnostics.
	Name string

	// File is the fixed member name inside the archive.
	File string

	// Columns is the CSV header, in query output order.
	Columns []string

	// Strategy determines partitioning: none, or by discovered predicate.
	Strategy Strategy

	build     func(clade int) string
	buildPart func(clade int) string
	discovery string
}

// Query returns the full-table query for an unpartitioned target.
// The clade argument restricts the result to a subtree when positive.
func (t Target) Query(clade int) Query {
	return NewQuery(t.build(clade), t.Columns)
}

// DiscoveryQuery returns the query that enumerates the distinct predicate
// URIs present in the data for a partitioned target.
func (t Target) DiscoveryQuery() Query {
	return NewQuery(t.discovery, []string{"uri"})
}

// PartitionQuery returns the query for a single predicate partition.
// The predicate passes the allow-list check before interpolation; callers
// are expected to have filtered values already, this is the mandatory
// second gate.
func (t Target) PartitionQuery(predicate string, clade int) (Query, error) {
	q := NewQuery(t.buildPart(clade), t.Columns)
	return q.Bind("predicate", predicate)
}

// Targets returns the fixed set of dump targets in archive order.
func Targets() []Target {
	return []Target{
		pagesTarget(),
		termsTarget(),
		termParentsTarget(),
		inferredTarget(),
		traitsTarget(),
		metadataTarget(),
	}
}

// predicateDiscovery enumerates every predicate URI attached to traits.
// The ORDER BY keeps partition indices stable across resumed runs.
const predicateDiscovery = `MATCH (trait:Trait)-[:predicate]->(term:Term)
RETURN DISTINCT term.uri
ORDER BY term.uri`

// cladePages restricts a (page:Page) match to the subtree rooted at the
// given page. A non-positive clade means no restriction.
func cladePages(clade int) string {
	if clade <= 0 {
		return ""
	}
	return fmt.Sprintf(
		",\n      (page)-[:parent*0..]->(:Page { page_id: %d })", clade,
	)
}

func pagesTarget() Target {
	return Target{
		Name:     "pages",
		File:     "pages.csv",
		Columns:  []string{"page_id", "parent_id", "rank", "canonical"},
		Strategy: StrategyNone,
		build: func(clade int) string {
			return strings.TrimSpace(fmt.Sprintf(`
MATCH (page:Page)%s
OPTIONAL MATCH (page)-[:parent]->(parent:Page)
RETURN page.page_id, parent.page_id, page.rank, page.canonical`,
				cladePages(clade)))
		},
	}
}

func termsTarget() Target {
	return Target{
		Name: "terms",
		File: "terms.csv",
		Columns: []string{
			"uri", "name", "type", "parent_uri", "definition",
			"attribution", "is_hidden_from_overview",
			"is_hidden_from_glossary",
		},
		Strategy: StrategyNone,
		// Terms are global vocabulary, the clade never applies.
		build: func(int) string {
			return strings.TrimSpace(`
MATCH (term:Term)
OPTIONAL MATCH (term)-[:parent_term]->(parent:Term)
RETURN term.uri, term.name, term.type, parent.uri, term.definition,
       term.attribution, term.is_hidden_from_overview,
       term.is_hidden_from_glossary
ORDER BY term.uri`)
		},
	}
}

func termParentsTarget() Target {
	return Target{
		Name:     "term_parents",
		File:     "term_parents.csv",
		Columns:  []string{"term_uri", "parent_uri"},
		Strategy: StrategyNone,
		build: func(int) string {
			return strings.TrimSpace(`
MATCH (term:Term)-[:parent_term]->(parent:Term)
RETURN term.uri, parent.uri
ORDER BY term.uri, parent.uri`)
		},
	}
}

func inferredTarget() Target {
	return Target{
		Name:     "inferred",
		File:     "inferred.csv",
		Columns:  []string{"page_id", "inferred_trait"},
		Strategy: StrategyNone,
		build: func(clade int) string {
			return strings.TrimSpace(fmt.Sprintf(`
MATCH (page:Page)-[:inferred_trait]->(trait:Trait)%s
RETURN page.page_id, trait.eol_pk`,
				cladePages(clade)))
		},
	}
}

func traitsTarget() Target {
	return Target{
		Name: "traits",
		File: "traits.csv",
		Columns: []string{
			"eol_pk", "page_id", "resource_pk", "resource_id",
			"source", "scientific_name", "predicate",
			"object_page_id", "value_uri", "normal_measurement",
			"normal_units_uri", "normal_units", "measurement",
			"units_uri", "units", "literal",
		},
		Strategy:  StrategyByPredicate,
		discovery: predicateDiscovery,
		buildPart: func(clade int) string {
			return strings.TrimSpace(fmt.Sprintf(`
MATCH (trait:Trait)-[:predicate]->(predicate:Term { uri: '{predicate}' }),
      (page:Page)-[:trait]->(trait),
      (trait)-[:supplier]->(resource:Resource)%s
OPTIONAL MATCH (trait)-[:object_page]->(object_page:Page)
OPTIONAL MATCH (trait)-[:object_term]->(object_term:Term)
OPTIONAL MATCH (trait)-[:normal_units_term]->(normal_units:Term)
OPTIONAL MATCH (trait)-[:units_term]->(units:Term)
RETURN trait.eol_pk, page.page_id, trait.resource_pk,
       resource.resource_id, trait.source, trait.scientific_name,
       predicate.uri, object_page.page_id, object_term.uri,
       trait.normal_measurement, normal_units.uri, normal_units.name,
       trait.measurement, units.uri, units.name, trait.literal`,
				cladePages(clade)))
		},
	}
}

func metadataTarget() Target {
	return Target{
		Name: "metadata",
		File: "metadata.csv",
		Columns: []string{
			"eol_pk", "trait_eol_pk", "predicate", "literal",
			"measurement", "value_uri", "units_uri", "sex",
			"lifestage", "statistical_method", "source",
		},
		Strategy:  StrategyByPredicate,
		discovery: predicateDiscovery,
		buildPart: func(clade int) string {
			return strings.TrimSpace(fmt.Sprintf(`
MATCH (trait:Trait)-[:metadata]->(meta:MetaData),
      (meta)-[:predicate]->(predicate:Term { uri: '{predicate}' }),
      (page:Page)-[:trait]->(trait)%s
OPTIONAL MATCH (meta)-[:object_term]->(object_term:Term)
OPTIONAL MATCH (meta)-[:units_term]->(units:Term)
OPTIONAL MATCH (meta)-[:sex_term]->(sex:Term)
OPTIONAL MATCH (meta)-[:lifestage_term]->(lifestage:Term)
OPTIONAL MATCH (meta)-[:statistical_method_term]->(stat:Term)
RETURN meta.eol_pk, trait.eol_pk, predicate.uri, meta.literal,
       meta.measurement, object_term.uri, units.uri, sex.name,
       lifestage.name, stat.name, meta.source`,
				cladePages(clade)))
		},
	}
}
