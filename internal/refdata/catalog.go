package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gstbill/internal/domain"
)

// Catalog is the file-backed product catalog. Additions are written back to
// product_catalog.json; a mutex serializes concurrent additions from the
// HTTP layer.
type Catalog struct {
	path string

	mu       sync.Mutex
	products []domain.CatalogProduct
}

type catalogFile struct {
	Products []domain.CatalogProduct `json:"products"`
}

// OpenCatalog loads product_catalog.json from the reference data directory.
func OpenCatalog(dir string) (*Catalog, error) {
	path := filepath.Join(dir, CatalogFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Catalog{path: path, products: file.Products}, nil
}

// Products returns a copy of the catalog entries.
func (c *Catalog) Products() []domain.CatalogProduct {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CatalogProduct, len(c.products))
	copy(out, c.products)
	return out
}

// Add appends a product and persists the catalog. Names are unique
// case-insensitively; the new ID is one past the current maximum.
func (c *Catalog) Add(name, hsnCode string) (domain.CatalogProduct, error) {
	name = strings.TrimSpace(name)
	hsnCode = strings.TrimSpace(hsnCode)
	if name == "" {
		return domain.CatalogProduct{}, fmt.Errorf("%w: product name is required", domain.ErrInvalidArgument)
	}
	if hsnCode == "" {
		return domain.CatalogProduct{}, fmt.Errorf("%w: HSN code is required", domain.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	maxID := 0
	for _, p := range c.products {
		if strings.EqualFold(p.Name, name) {
			return domain.CatalogProduct{}, domain.ErrDuplicateProduct
		}
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	product := domain.CatalogProduct{ID: maxID + 1, Name: name, HSNCode: hsnCode}
	c.products = append(c.products, product)

	if err := c.save(); err != nil {
		c.products = c.products[:len(c.products)-1]
		return domain.CatalogProduct{}, err
	}
	return product, nil
}

func (c *Catalog) save() error {
	data, err := json.MarshalIndent(catalogFile{Products: c.products}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}
	return nil
}
