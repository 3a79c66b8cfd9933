// Package openapi embeds the OpenAPI documents of both services.
package openapi

import _ "embed"

// ProductYAML is the OpenAPI document of the product service.
//
//go:embed product.yaml
var ProductYAML []byte

// StockYAML is the OpenAPI document of the stock service.
//
//go:embed stock.yaml
var StockYAML []byte
