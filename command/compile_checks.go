package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RegisterSchemeMessage]       = (*RegisterSchemeCommand)(nil)
	_ gocmd.Commander[RegisterRemoteSchemeMessage] = (*RegisterRemoteSchemeCommand)(nil)
	_ gocmd.Commander[RemoveSchemeMessage]         = (*RemoveSchemeCommand)(nil)
	_ gocmd.Commander[ReconfigureSchemeMessage]    = (*ReconfigureSchemeCommand)(nil)
	_ gocmd.Commander[ResolveOptionsMessage]       = (*ResolveOptionsCommand)(nil)
	_ gocmd.Commander[ClearOptionsMessage]         = (*ClearOptionsCommand)(nil)
)
