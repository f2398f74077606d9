/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/hpcloud/tail"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/logger"
	"techtradechain.com/txscheduler/module/blockchain"
	"techtradechain.com/txscheduler/protocol"
)

// StartCMD follows a transaction log and schedules it block by block
func StartCMD() *cobra.Command {
	o := &cliOptions{}
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Startup txscheduler",
		Long:  "Follow a transaction log, cut it into blocks and schedule and execute every block",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLocalConfig(); err != nil {
				return err
			}
			err := mainStart(o)
			fmt.Fprintln(cmd.OutOrStdout(), "txscheduler exit")
			return err
		},
	}
	attachFlags(startCmd, o, []string{
		flagNameOfConfigFilepath, flagNameOfContracts, flagNameOfTxLog, flagNameOfBlockSize,
		flagNameOfBlockInterval, flagNameOfMetricsAddr, flagNameOfTraceMemory,
	})
	_ = startCmd.MarkFlagRequired(flagNameOfTxLog)
	return startCmd
}

func mainStart(o *cliOptions) error {
	log := logger.GetLogger(logger.MODULE_CLI)
	if o.traceMemory != "" {
		traceMemoryUsage(o.traceMemory, log)
	}

	server := blockchain.NewTxSchedulerServer(localconf.TxSchedulerConfig)
	if err := server.Init(); err != nil {
		log.Errorf("txscheduler server init failed, %s", err.Error())
		return err
	}
	defer func() {
		log.Info("Stopping txscheduler server... ")
		server.Stop()
		log.Info("All is stopped!")
	}()

	if o.contracts != "" {
		result, err := registerContracts(server, o.contracts)
		if err != nil {
			return err
		}
		log.Infof("registered %d methods from %s", len(result.Registered), o.contracts)
	}

	if o.metricsAddr != "" {
		if !localconf.TxSchedulerConfig.SchedulerConfig.EnableMetrics {
			log.Warnf("metrics are served on %s but scheduler.enable_metrics is off", o.metricsAddr)
		}
		startMetrics(o.metricsAddr, log)
	}

	t, err := tail.TailFile(o.txLog, tail.Config{Follow: true, ReOpen: true, Logger: tail.DiscardingLogger})
	if err != nil {
		return errors.Wrapf(err, "follow %s", o.txLog)
	}
	defer t.Cleanup()

	// new an error channel to receive errors
	errorC := make(chan error, 1)
	go handleExitSignal(errorC)

	printLogo(log)

	f := &follower{
		server:    server,
		blockSize: o.blockSize,
		interval:  o.blockInterval,
		log:       log,
	}
	errC := f.follow(t.Lines, errorC)
	if errC != nil {
		log.Error("txscheduler encounters error ", errC)
	}
	_ = t.Stop()
	return errC
}

// follower cuts the lines of a transaction log into blocks
type follower struct {
	server    *blockchain.TxSchedulerServer
	blockSize int
	interval  time.Duration
	log       protocol.Logger

	pending []*common.Transaction
	blocks  int
}

// follow runs until lines is closed or stop receives, the last partial block is still run
func (f *follower) follow(lines <-chan *tail.Line, stop <-chan error) error {
	if f.blockSize <= 0 {
		f.blockSize = 1
	}
	if f.interval <= 0 {
		f.interval = time.Second
	}
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				f.cut()
				return nil
			}
			if line.Err != nil {
				f.log.Warnf("read tx log failed, %s", line.Err)
				continue
			}
			f.add(line.Text)
			if len(f.pending) >= f.blockSize {
				f.cut()
			}
		case <-ticker.C:
			f.cut()
		case err := <-stop:
			f.cut()
			return err
		}
	}
}

func (f *follower) add(text string) {
	if text == "" {
		return
	}
	tx := &common.Transaction{}
	if err := json.Unmarshal([]byte(text), tx); err != nil {
		f.log.Warnf("skip malformed tx line %q, %s", text, err)
		return
	}
	f.pending = append(f.pending, tx)
}

func (f *follower) cut() {
	if len(f.pending) == 0 {
		return
	}
	txs := f.pending
	f.pending = nil
	f.blocks++
	sched, report, err := f.server.RunBlock(context.Background(), txs, func(tx *common.Transaction, r *common.TxResult) {
		if !r.Success {
			f.log.Debugf("tx %s failed, %s", tx.TxId, r.Message)
		}
	})
	if err != nil {
		f.log.Errorf("block %d of %d txs failed, %s", f.blocks, len(txs), err)
		return
	}
	f.log.Infof("block %d: %d txs in %d batches, rejected %d, committed %d, abandoned %d",
		f.blocks, len(txs), len(sched.Batches), len(sched.Rejected), len(report.Committed), len(report.Abandoned))
}

func handleExitSignal(exitC chan<- error) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, os.Interrupt, syscall.SIGINT)
	defer signal.Stop(signalChan)

	for sig := range signalChan {
		logger.GetLogger(logger.MODULE_CLI).Infof("received signal: %d (%s)", sig, sig)
		exitC <- nil
	}
}

func printLogo(log protocol.Logger) {
	log.Info(logo())
}

func startMetrics(addr string, log protocol.Logger) {
	go func() {
		log.Infof("metrics server start at [%s]", addr)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		if err := server.ListenAndServe(); err != nil {
			log.Errorf("metrics server stopped, %s", err)
		}
	}()
}

func traceMemoryUsage(p string, log protocol.Logger) {
	go func() {
		f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, 0755)
		if err != nil {
			log.Errorf("trace memory usage failed, %s", err)
			return
		}
		defer f.Close()
		w := csv.NewWriter(f)
		err = w.Write([]string{
			"Alloc", "TotalAlloc", "Sys", "Mallocs", "Frees", "HeapAlloc", "HeapSys",
			"HeapIdle", "HeapInuse", "HeapReleased", "HeapObjects", "StackInuse",
			"StackSys", "GCSys", "OtherSys",
		})
		if err != nil {
			log.Errorf("trace memory usage failed, %s", err)
			return
		}
		for range time.Tick(time.Second) {
			mem := new(runtime.MemStats)
			runtime.ReadMemStats(mem)
			err = w.Write([]string{
				bytefmt.ByteSize(mem.Alloc),
				bytefmt.ByteSize(mem.TotalAlloc),
				bytefmt.ByteSize(mem.Sys),
				fmt.Sprint(mem.Mallocs),
				fmt.Sprint(mem.Frees),
				bytefmt.ByteSize(mem.HeapAlloc),
				bytefmt.ByteSize(mem.HeapSys),
				bytefmt.ByteSize(mem.HeapIdle),
				bytefmt.ByteSize(mem.HeapInuse),
				bytefmt.ByteSize(mem.HeapReleased),
				fmt.Sprint(mem.HeapObjects),
				bytefmt.ByteSize(mem.StackInuse),
				bytefmt.ByteSize(mem.StackSys),
				bytefmt.ByteSize(mem.GCSys),
				bytefmt.ByteSize(mem.OtherSys),
			})
			if err != nil {
				log.Errorf("trace memory usage failed, %s", err)
				return
			}
			w.Flush()
		}
	}()
}
