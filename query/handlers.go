package query

import (
	"context"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

type SchemeReader interface {
	ListSchemes(ctx context.Context) ([]core.SchemeDefinition, error)
	GetScheme(ctx context.Context, name string) (core.SchemeDefinition, error)
}

type SchemeViewReader interface {
	DescribeScheme(ctx context.Context, name string) (core.SchemeDescription, error)
}

type ListSchemesQuery struct {
	reader SchemeReader
}

func NewListSchemesQuery(reader SchemeReader) *ListSchemesQuery {
	return &ListSchemesQuery{reader: reader}
}

func (q *ListSchemesQuery) Query(ctx context.Context, _ ListSchemesMessage) ([]core.SchemeDefinition, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: scheme reader is required")
	}
	return q.reader.ListSchemes(ctx)
}

type GetSchemeQuery struct {
	reader SchemeReader
}

func NewGetSchemeQuery(reader SchemeReader) *GetSchemeQuery {
	return &GetSchemeQuery{reader: reader}
}

func (q *GetSchemeQuery) Query(ctx context.Context, msg GetSchemeMessage) (core.SchemeDefinition, error) {
	if q == nil || q.reader == nil {
		return core.SchemeDefinition{}, queryDependencyError("query: scheme reader is required")
	}
	return q.reader.GetScheme(ctx, msg.SchemeName)
}

type DescribeSchemeQuery struct {
	reader SchemeViewReader
}

func NewDescribeSchemeQuery(reader SchemeViewReader) *DescribeSchemeQuery {
	return &DescribeSchemeQuery{reader: reader}
}

func (q *DescribeSchemeQuery) Query(ctx context.Context, msg DescribeSchemeMessage) (core.SchemeDescription, error) {
	if q == nil || q.reader == nil {
		return core.SchemeDescription{}, queryDependencyError("query: scheme view reader is required")
	}
	return q.reader.DescribeScheme(ctx, msg.SchemeName)
}
