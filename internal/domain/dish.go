package domain

import "time"

// Dish is a menu entry. Prices are held in cents to avoid float drift.
type Dish struct {
	ID              int64     `json:"id"`
	CategoryID      *int64    `json:"categoryId,omitempty"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description,omitempty"`
	Image           string    `json:"image,omitempty"`
	PriceCents      int64     `json:"priceCents"`
	Available       bool      `json:"available"`
	IsFeatured      bool      `json:"isFeatured"`
	PreparationTime int       `json:"preparationTime,omitempty"`
	SortOrder       int       `json:"sortOrder"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DishVariant is one selectable option on a variant axis, e.g. type "size",
// name "large". PriceDeltaCents is added on top of the dish price.
type DishVariant struct {
	ID              int64     `json:"id"`
	DishID          int64     `json:"dishId"`
	Type            string    `json:"type"`
	Name            string    `json:"name"`
	PriceDeltaCents int64     `json:"priceDeltaCents"`
	IsDefault       bool      `json:"isDefault"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
