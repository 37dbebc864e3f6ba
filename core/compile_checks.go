package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Registry          = (*HandlerTypeRegistry)(nil)
	_ SchemeProvider    = (*SchemeDefinitionRegistry)(nil)
	_ OptionsPeeker     = (*OptionsCache)(nil)
	_ PostConfigureHook = PostConfigureHookFunc{}
	_ RemoteOptions     = (*RemoteSchemeOptions)(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
