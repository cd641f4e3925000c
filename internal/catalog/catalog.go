// Package catalog holds the read-only product table served by the storefront.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"onestop/internal/domain"
)

//go:embed catalog.yaml
var bundled []byte

// Catalog maps slugs to products. It is never mutated after construction.
type Catalog struct {
	products map[string]domain.Product
}

// New copies the given products into a catalog keyed by their slug.
func New(products ...domain.Product) *Catalog {
	c := &Catalog{products: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		c.products[p.Slug] = p
	}
	return c
}

// Parse reads a YAML document of slug -> product.
func Parse(data []byte) (*Catalog, error) {
	raw := map[string]domain.Product{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{products: make(map[string]domain.Product, len(raw))}
	for slug, p := range raw {
		p.Slug = slug
		c.products[slug] = p
	}
	return c, nil
}

// Load reads the catalog at path, or the bundled one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(bundled)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func (c *Catalog) Get(slug string) (domain.Product, bool) {
	p, ok := c.products[slug]
	return p, ok
}

// Lookup returns the product or a zero Product for unknown slugs.
func (c *Catalog) Lookup(slug string) domain.Product {
	p, _ := c.Get(slug)
	return p
}

func (c *Catalog) Slugs() []string {
	out := make([]string, 0, len(c.products))
	for s := range c.products {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
