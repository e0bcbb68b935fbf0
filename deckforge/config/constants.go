package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Pagination
	CardsPerPage    = 10
	DefaultPageSize = 10

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
)

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	SearchTimeout       = 10 * time.Second
	CatalogSyncTimeout  = 5 * time.Minute
	GenerateTimeout     = 30 * time.Second
)

// Catalog sync
const (
	DefaultCatalogPageSize = 200
	MaxConcurrentPages     = 4
)
