package domain

import (
	"fmt"
	"time"
)

// CatalogItem is a product record agents draw on when answering customers.
type CatalogItem struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the item against domain constraints.
func (c *CatalogItem) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if c.Category == "" {
		return fmt.Errorf("%w: item category cannot be empty", ErrValidation)
	}
	if c.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if c.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}

// InStock returns true if at least one unit is available.
func (c *CatalogItem) InStock() bool {
	return c.Stock > 0
}

// CatalogPatch is a partial update to a catalog item. Nil fields are left
// unchanged.
type CatalogPatch struct {
	Category    *string   `json:"category,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Apply merges the patch into a copy of the item and returns it.
func (p CatalogPatch) Apply(c CatalogItem) CatalogItem {
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Stock != nil {
		c.Stock = *p.Stock
	}
	if p.Images != nil {
		c.Images = *p.Images
	}
	if p.Tags != nil {
		c.Tags = *p.Tags
	}
	return c
}

// Validate checks the patch's provided fields against domain constraints.
func (p CatalogPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if p.Category != nil && *p.Category == "" {
		return fmt.Errorf("%w: item category cannot be empty", ErrValidation)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}
