/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package scheduler

import "errors"

var (
	// ErrSchedulerHalted the scheduler has been halted and its worker pool released
	ErrSchedulerHalted = errors.New("tx scheduler halted")
	// ErrNilExecutor Execute was called without an executor
	ErrNilExecutor = errors.New("nil tx executor")
	// ErrNilSchedule Execute was called without a schedule
	ErrNilSchedule = errors.New("nil schedule")
)
