package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"httplatencies/internal/dummy"
)

func newTargetCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Run the built-in target server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := dummy.Start(dummy.ServerConfig{Port: port})
			<-ctx.Done()

			return dummy.Shutdown(server)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")

	return cmd
}
