package core

import (
	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// Registry is the handler-type bookkeeping surface consumed by hosts that
// wire protocol handlers outside this core.
type Registry interface {
	Register(handlerType HandlerTypeID) error
	HandlerTypes() []HandlerTypeID
}
