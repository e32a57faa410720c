// Package paging turns raw pageNumber/pageSize/sortBy/sortOrder parameters
// into validated, deterministic page requests and wraps result slices in the
// standard paged response envelope.
package paging

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/sbecom/storeapi/pkg/errors"
)

// idColumn is the tiebreak column appended to every ordering so that pages
// are reproducible across calls against an unchanged data set.
const idColumn = "id"

// Request is a validated, normalized page request.
type Request struct {
	Number     int
	Size       int
	SortColumn string
	Descending bool
}

// Build validates and normalizes the raw paging parameters. sortable maps the
// externally visible sort field names to their storage columns; an unknown
// sortBy is an error. sortOrder is compared case-insensitively against "asc";
// any other value falls back to descending rather than failing, for
// compatibility with existing clients.
func Build(number, size int, sortBy, sortOrder string, sortable map[string]string) (Request, error) {
	if number < 0 {
		return Request{}, apperrors.InvalidInput("pageNumber must not be negative")
	}
	if size < 1 {
		return Request{}, apperrors.InvalidInput("pageSize must be a positive integer")
	}

	column, ok := sortable[sortBy]
	if !ok {
		known := make([]string, 0, len(sortable))
		for name := range sortable {
			known = append(known, name)
		}
		return Request{}, apperrors.InvalidInput(
			fmt.Sprintf("unknown sort field %q, must be one of: %s", sortBy, strings.Join(sorted(known), ", ")))
	}

	return Request{
		Number:     number,
		Size:       size,
		SortColumn: column,
		Descending: !strings.EqualFold(sortOrder, "asc"),
	}, nil
}

// Offset returns the row offset for the request (page numbers are 0-based).
func (r Request) Offset() int {
	return r.Number * r.Size
}

// Limit returns the maximum number of rows for the request.
func (r Request) Limit() int {
	return r.Size
}

// OrderBy renders the ORDER BY clause body for the request. Secondary
// columns are appended ascending after the primary sort, and the identifier
// column closes the clause as a tiebreak. Columns already present earlier in
// the clause are not repeated; anything ordered after the unique identifier
// could never take effect.
func (r Request) OrderBy(secondary ...string) string {
	direction := "ASC"
	if r.Descending {
		direction = "DESC"
	}

	var clause strings.Builder
	fmt.Fprintf(&clause, "%s %s", r.SortColumn, direction)

	seen := map[string]bool{r.SortColumn: true}
	for _, column := range secondary {
		if seen[column] || seen[idColumn] {
			continue
		}
		seen[column] = true
		fmt.Fprintf(&clause, ", %s ASC", column)
	}
	if !seen[idColumn] {
		fmt.Fprintf(&clause, ", %s ASC", idColumn)
	}
	return clause.String()
}

// Response is the paged response envelope returned by listing operations.
type Response[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

// NewResponse wraps a page of content plus the total row count into the
// response envelope, computing TotalPages and LastPage.
func NewResponse[T any](content []T, req Request, totalElements int64) Response[T] {
	totalPages := int(totalElements) / req.Size
	if int(totalElements)%req.Size > 0 {
		totalPages++
	}
	if content == nil {
		content = []T{}
	}
	return Response[T]{
		Content:       content,
		PageNumber:    req.Number,
		PageSize:      req.Size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		LastPage:      req.Number >= totalPages-1,
	}
}

// sorted returns a copy of names in lexical order so error messages are stable.
func sorted(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}
