/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockchain

// Stop all the modules.
func (s *TxSchedulerServer) Stop() {
	// stop sequence：
	// 1、scheduler
	// 2、store
	// metadata, resolver and executor hold no resources

	var stopModules = make([]map[string]func() error, 0)

	if s.isModuleStartUp(moduleNameStore) {
		stopModules = append(stopModules, map[string]func() error{moduleNameStore: s.stopStore})
	}
	if s.isModuleStartUp(moduleNameScheduler) {
		stopModules = append(stopModules, map[string]func() error{moduleNameScheduler: s.stopScheduler})
	}

	total := len(stopModules)

	// stop with total order
	for idx := total - 1; idx >= 0; idx-- {
		stopModule := stopModules[idx]
		for name, stopFunc := range stopModule {
			if err := stopFunc(); err != nil {
				s.log.Errorf("stop module[%s] failed, %s", name, err)
				continue
			}
			delete(s.startedModules, name)
			s.log.Infof("STOP STEP (%d/%d) => stop module[%s] success :)", total-idx, total, name)
		}
	}
}

func (s *TxSchedulerServer) isModuleStartUp(name string) bool {
	_, ok := s.startedModules[name]
	return ok
}

func (s *TxSchedulerServer) stopStore() error {
	return s.store.Close()
}

func (s *TxSchedulerServer) stopScheduler() error {
	s.scheduler.Halt()
	return nil
}
