/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logger

import "strings"

// LogConfig the config of log module
type LogConfig struct {
	SystemLog LogNodeConfig            `mapstructure:"system"`
	ModuleLog map[string]LogNodeConfig `mapstructure:"module"`
}

// GetConfigByModuleName returns the config of a module, the system config if it has none
func (c *LogConfig) GetConfigByModuleName(pureName string) LogNodeConfig {
	for name, config := range c.ModuleLog {
		if strings.EqualFold(name, pureName) {
			return config
		}
	}
	return c.SystemLog
}

// LogNodeConfig the log config of one output
type LogNodeConfig struct {
	LogLevelDefault string            `mapstructure:"log_level_default"`
	LogLevels       map[string]string `mapstructure:"log_levels"`
	// FilePath empty means console only
	FilePath        string `mapstructure:"file_path"`
	MaxAge          int    `mapstructure:"max_age"`
	RotationTime    int    `mapstructure:"rotation_time"`
	RotationSize    int64  `mapstructure:"rotation_size"`
	LogInConsole    bool   `mapstructure:"log_in_console"`
	JsonFormat      bool   `mapstructure:"json_format"`
	ShowLine        bool   `mapstructure:"show_line"`
	StackTraceLevel string `mapstructure:"stack_trace_level"`
}

// LevelOf returns the level configured for a module
func (cfg LogNodeConfig) LevelOf(module string) string {
	for name, lvl := range cfg.LogLevels {
		if strings.EqualFold(name, module) {
			return lvl
		}
	}
	if cfg.LogLevelDefault == "" {
		return INFO
	}
	return cfg.LogLevelDefault
}
