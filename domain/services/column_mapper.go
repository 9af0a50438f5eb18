package services

import (
	"strings"

	"casetrack/domain"
	"casetrack/domain/entities"
)

// IdentifierHeader is the literal header the first import column must carry.
// Its cell values are matched against the telecaller roster for auto-assignment.
const IdentifierHeader = "EMPID"

// Typed failures of header resolution
var (
	ErrMissingIdentifierColumn = domain.NewValidationError("headers", "first column must be "+IdentifierHeader)
	ErrNoColumnsMatched        = domain.NewValidationError("headers", "no headers matched the configured columns")
)

// HeaderMapping is the result of resolving a spreadsheet's header row
// against a tenant's column configuration
type HeaderMapping struct {
	// columns maps header index to internal field key (identifier excluded)
	columns map[int]string
	// Ignored lists headers that matched no configured column
	Ignored []string
}

// ColumnMapper resolves external spreadsheet headers to internal field keys
type ColumnMapper struct{}

// NewColumnMapper creates a new ColumnMapper
func NewColumnMapper() *ColumnMapper {
	return &ColumnMapper{}
}

// ResolveHeaders maps a header row against the tenant's configured columns.
// The first header must be the EMPID identifier (case-insensitive, trimmed);
// other headers are matched against display names. Unmatched headers are
// ignored, but if nothing at all matches the resolution fails rather than
// silently importing nothing.
func (m *ColumnMapper) ResolveHeaders(configs []*entities.ColumnConfiguration, headers []string) (*HeaderMapping, error) {
	if len(headers) == 0 || !strings.EqualFold(strings.TrimSpace(headers[0]), IdentifierHeader) {
		return nil, ErrMissingIdentifierColumn
	}

	byLabel := make(map[string]string, len(configs))
	for _, cfg := range configs {
		byLabel[normalizeHeader(cfg.DisplayName)] = cfg.InternalKey
	}

	mapping := &HeaderMapping{columns: make(map[int]string)}
	for i, header := range headers[1:] {
		key, ok := byLabel[normalizeHeader(header)]
		if !ok {
			mapping.Ignored = append(mapping.Ignored, strings.TrimSpace(header))
			continue
		}
		mapping.columns[i+1] = key
	}

	if len(mapping.columns) == 0 {
		return nil, ErrNoColumnsMatched
	}
	return mapping, nil
}

// MapRows applies a resolved header mapping to the data rows. Every output
// row carries the EMPID value plus one entry per matched key; empty cells
// become empty strings, not omissions.
func (m *ColumnMapper) MapRows(mapping *HeaderMapping, rows [][]string) []entities.MappedRow {
	mapped := make([]entities.MappedRow, 0, len(rows))
	for i, row := range rows {
		out := entities.MappedRow{
			Index:  i,
			Fields: make(map[string]string, len(mapping.columns)),
		}
		if len(row) > 0 {
			out.EmployeeID = strings.TrimSpace(row[0])
		}
		for col, key := range mapping.columns {
			var cell string
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			out.Fields[key] = cell
		}
		mapped = append(mapped, out)
	}
	return mapped
}

// ExportHeaders renders the export direction of the mapping: the identifier
// column followed by configured display labels in position order
func (m *ColumnMapper) ExportHeaders(configs []*entities.ColumnConfiguration) []string {
	headers := make([]string, 0, len(configs)+1)
	headers = append(headers, IdentifierHeader)
	for _, cfg := range configs {
		headers = append(headers, cfg.DisplayName)
	}
	return headers
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
