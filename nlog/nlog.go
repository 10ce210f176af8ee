// Package nlog is the structured-logging façade used throughout this
// module. It wraps go.uber.org/zap's sugared logger behind the call shape
// of the teacher's internal cmn/nlog package (nlog.Infoln, nlog.Infof,
// nlog.Errorln, nlog.Warningf), whose source was not retrieved -- only its
// call sites were, in xact/xs/tcb.go and ais/prxs3.go.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package nlog

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	sugar  *zap.SugaredLogger
	vlevel int32 // current verbosity threshold, see FastV
)

func logger() *zap.SugaredLogger {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		sugar = l.Sugar()
	})
	return sugar
}

func Infoln(args ...any)            { logger().Infoln(args...) }
func Infof(format string, a ...any) { logger().Infof(format, a...) }

func Warningln(args ...any)            { logger().Warnln(args...) }
func Warningf(format string, a ...any) { logger().Warnf(format, a...) }

func Errorln(args ...any)            { logger().Errorln(args...) }
func Errorf(format string, a ...any) { logger().Errorf(format, a...) }

// SetVerbosity adjusts the threshold FastV gates against, mirroring the
// teacher's cmn.Rom.FastV(level, module) runtime verbosity knob.
func SetVerbosity(v int) { atomic.StoreInt32(&vlevel, int32(v)) }

// FastV reports whether logging at the given level is enabled for module.
// The module argument is accepted (and ignored beyond being a label) to
// keep call sites identical in shape to cmn.Rom.FastV(5, cos.SmoduleMirror).
func FastV(level int, module string) bool {
	_ = module
	return atomic.LoadInt32(&vlevel) >= int32(level)
}

// Sync flushes any buffered log entries; call before process exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

// Module name constants, mirroring cos.Smodule* in the teacher.
const (
	ModuleSeries    = "series"
	ModuleFlush     = "flush"
	ModuleChunkDist = "chunkdist"
	ModuleBackend   = "backend"
	ModuleConfig    = "config"
	ModuleGroupComm = "groupcomm"
)
