// Package report runs the fixed catalog of analytical queries against the
// classicmodels schema, prints each result as a table, and optionally writes
// one CSV file per query.
package report

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed queries.yaml
var catalogYAML []byte

// defaultQualifier is the schema prefix the embedded SQL is written against.
const defaultQualifier = "classicmodels."

type Query struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	SQL   string `yaml:"sql"`
}

type Catalog struct {
	Queries []Query `yaml:"queries"`
}

// LoadCatalog parses the embedded query catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse query catalog: %w", err)
	}
	if len(c.Queries) == 0 {
		return nil, fmt.Errorf("query catalog is empty")
	}
	return &c, nil
}

// Qualify rewrites the schema qualifier the catalog was written against. An
// empty schemaName strips the qualifier, for providers that address tables
// unqualified.
func (c *Catalog) Qualify(schemaName string) {
	qualifier := ""
	if schemaName != "" {
		qualifier = schemaName + "."
	}
	if qualifier == defaultQualifier {
		return
	}
	for i := range c.Queries {
		c.Queries[i].SQL = strings.ReplaceAll(c.Queries[i].SQL, defaultQualifier, qualifier)
	}
}
