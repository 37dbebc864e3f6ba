package query

import (
	"fmt"
	"strings"
)

const (
	TypeListSchemes    = "dynauth.query.scheme.list"
	TypeGetScheme      = "dynauth.query.scheme.get"
	TypeDescribeScheme = "dynauth.query.scheme.describe"
)

type ListSchemesMessage struct{}

func (ListSchemesMessage) Type() string { return TypeListSchemes }

func (ListSchemesMessage) Validate() error { return nil }

type GetSchemeMessage struct {
	SchemeName string
}

func (GetSchemeMessage) Type() string { return TypeGetScheme }

func (m GetSchemeMessage) Validate() error {
	if strings.TrimSpace(m.SchemeName) == "" {
		return fmt.Errorf("query: scheme name is required")
	}
	return nil
}

type DescribeSchemeMessage struct {
	SchemeName string
}

func (DescribeSchemeMessage) Type() string { return TypeDescribeScheme }

func (m DescribeSchemeMessage) Validate() error {
	if strings.TrimSpace(m.SchemeName) == "" {
		return fmt.Errorf("query: scheme name is required")
	}
	return nil
}
