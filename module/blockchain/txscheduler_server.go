/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package blockchain wires the metadata registry, resolver, scheduler and executor of one chain
package blockchain

import (
	"context"
	"fmt"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/logger"
	"techtradechain.com/txscheduler/module/core"
	"techtradechain.com/txscheduler/module/core/provider/conf"
	"techtradechain.com/txscheduler/module/executor"
	"techtradechain.com/txscheduler/module/metadata"
	"techtradechain.com/txscheduler/module/resolver"
	"techtradechain.com/txscheduler/protocol"
)

const (
	moduleNameStore     = "Store"
	moduleNameMetadata  = "Metadata"
	moduleNameResolver  = "Resolver"
	moduleNameScheduler = "Scheduler"
	moduleNameExecutor  = "Executor"
)

// TxSchedulerServer owns the modules needed to schedule and execute blocks
type TxSchedulerServer struct {
	conf *localconf.CMConfig
	log  protocol.Logger

	store     protocol.MetadataStore
	metadata  *metadata.Service
	resolver  *resolver.Resolver
	scheduler protocol.TxScheduler
	executor  protocol.TxExecutor

	startedModules map[string]struct{}
}

// NewTxSchedulerServer create a new TxSchedulerServer instance.
func NewTxSchedulerServer(c *localconf.CMConfig) *TxSchedulerServer {
	return &TxSchedulerServer{
		conf:           c,
		log:            logger.GetLogger(logger.MODULE_CORE),
		startedModules: make(map[string]struct{}),
	}
}

// Init creates every module, the ones created before a failure are stopped again
func (s *TxSchedulerServer) Init() error {
	s.log.Debug("begin init tx scheduler server...")
	initModules := []struct {
		name string
		init func() error
	}{
		{moduleNameStore, s.initStore},
		{moduleNameMetadata, s.initMetadata},
		{moduleNameResolver, s.initResolver},
		{moduleNameScheduler, s.initScheduler},
		{moduleNameExecutor, s.initExecutor},
	}
	for idx, m := range initModules {
		if err := m.init(); err != nil {
			s.log.Errorf("init module[%s] failed, %s", m.name, err)
			s.Stop()
			return err
		}
		s.startedModules[m.name] = struct{}{}
		s.log.Infof("INIT STEP (%d/%d) => init module[%s] success :)", idx+1, len(initModules), m.name)
	}
	return nil
}

func (s *TxSchedulerServer) initStore() (err error) {
	s.store, err = metadata.NewStore(&s.conf.StoreConfig, logger.GetLogger(logger.MODULE_STORE))
	return err
}

func (s *TxSchedulerServer) initMetadata() error {
	s.metadata = metadata.NewService(s.store, logger.GetLogger(logger.MODULE_METADATA))
	return s.metadata.EnsureTransferMethod()
}

func (s *TxSchedulerServer) initResolver() (err error) {
	s.resolver, err = resolver.NewResolver(s.metadata, s.conf.SchedulerConfig.MetadataCacheSize,
		logger.GetLogger(logger.MODULE_RESOLVER))
	return err
}

func (s *TxSchedulerServer) initScheduler() (err error) {
	s.scheduler, err = core.Factory().NewTxScheduler(s.conf.SchedulerConfig.Mode, &conf.CoreEngineConfig{
		SchedulerConfig: s.conf.SchedulerConfig,
		Resolver:        s.resolver,
		Log:             logger.GetLogger(logger.MODULE_SCHEDULER),
	})
	return err
}

func (s *TxSchedulerServer) initExecutor() (err error) {
	p := executor.GetExecutorProvider(s.conf.ExecutorConfig.Type)
	if p == nil {
		return fmt.Errorf("unsupported executor type %s", s.conf.ExecutorConfig.Type)
	}
	s.executor, err = p(logger.GetLogger(logger.MODULE_EXECUTOR))
	return err
}

// Metadata returns the function metadata service
func (s *TxSchedulerServer) Metadata() *metadata.Service {
	return s.metadata
}

// Resolver returns the resource resolver
func (s *TxSchedulerServer) Resolver() *resolver.Resolver {
	return s.resolver
}

// Scheduler returns the tx scheduler
func (s *TxSchedulerServer) Scheduler() protocol.TxScheduler {
	return s.scheduler
}

// Executor returns the job executor
func (s *TxSchedulerServer) Executor() protocol.TxExecutor {
	return s.executor
}

// Schedule schedules a candidate block
func (s *TxSchedulerServer) Schedule(ctx context.Context, txs []*common.Transaction) (*common.Schedule, error) {
	return s.scheduler.Schedule(ctx, txs)
}

// RunBlock schedules and executes a candidate block within the configured block deadline
func (s *TxSchedulerServer) RunBlock(ctx context.Context, txs []*common.Transaction,
	commit protocol.CommitFunc) (*common.Schedule, *common.ExecutionReport, error) {
	sched, err := s.scheduler.Schedule(ctx, txs)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.conf.SchedulerConfig.BlockDeadline)
	defer cancel()
	report, err := s.scheduler.Execute(ctx, sched, s.executor, commit)
	return sched, report, err
}
