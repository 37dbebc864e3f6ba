package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

var (
	_ gocmd.Querier[ListSchemesMessage, []core.SchemeDefinition]   = (*ListSchemesQuery)(nil)
	_ gocmd.Querier[GetSchemeMessage, core.SchemeDefinition]       = (*GetSchemeQuery)(nil)
	_ gocmd.Querier[DescribeSchemeMessage, core.SchemeDescription] = (*DescribeSchemeQuery)(nil)
)
