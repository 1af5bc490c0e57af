// Command pagesim-worker is a worker launched as a genuine child process
// of cmd/oss when run with --net: it dials the coordinator's unix socket
// and drives one SyntheticAgent, the direct translation of worker.cpp
// attaching to shared memory and a System V message queue after being
// forked by oss.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/oss6/pagesim/ipc"
	"github.com/oss6/pagesim/worker"
)

func main() {
	var socketPath string
	var pid int

	cmd := &cobra.Command{
		Use:          "pagesim-worker",
		Short:        "Connect to a pagesim coordinator and generate memory references",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := ipc.Dial(socketPath)
			if err != nil {
				return err
			}
			defer ch.Close()

			agent := worker.NewSyntheticAgent(int64(pid))
			agent.Run(ch, int32(pid))
			return nil
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "/tmp/pagesim.sock", "coordinator unix socket path")
	cmd.Flags().IntVar(&pid, "pid", 0, "this worker's process id, as assigned by the coordinator")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
