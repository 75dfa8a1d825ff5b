// chrono is a date-math MCP tool server and a companion LLM agent client.
//
//	chrono serve        run the MCP server on stdin/stdout
//	chrono ask <text>   answer a question, calling the server's tools as needed
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/voyago/chrono/internal/observability"
	"github.com/voyago/chrono/internal/profile"
	"github.com/voyago/chrono/plugin/ai"
	"github.com/voyago/chrono/plugin/ai/agent"
	"github.com/voyago/chrono/server/toolserver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chrono",
		Short:         "Date-math tools over MCP, with an LLM agent client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newAskCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server on stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := profile.Load()
			if err != nil {
				return err
			}
			observability.Init(p)

			slog.Info("starting chrono tool server",
				"version", p.Version,
				"mode", p.Mode)
			return toolserver.New(p).Run(cmd.Context())
		},
	}
}

func newAskCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question; the agent calls the tool server as needed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.Load()
			if err != nil {
				return err
			}
			observability.Init(p)

			provider, err := ai.NewProvider(&ai.Config{
				BaseURL:    p.AIBaseURL,
				APIKey:     p.AIAPIKey,
				ChatModel:  p.AIModel,
				MaxRetries: p.AIMaxRetries,
				Timeout:    p.AITimeout,
			})
			if err != nil {
				return err
			}

			serverCmd, err := serverCommand(p)
			if err != nil {
				return err
			}

			client := mcp.NewClient(&mcp.Implementation{
				Name:    "chrono-agent",
				Version: p.Version,
			}, nil)
			session, err := client.Connect(cmd.Context(), &mcp.CommandTransport{Command: serverCmd}, nil)
			if err != nil {
				return errors.Wrap(err, "connecting to tool server")
			}
			defer session.Close()

			var callback agent.Callback
			if verbose {
				callback = func(event, data string) {
					fmt.Fprintf(os.Stderr, "[%s] %s\n", event, data)
				}
			}

			a := agent.New(provider, session, agent.Config{
				Name:          "chrono",
				MaxIterations: p.MaxIterations,
			})
			answer, err := a.RunWithCallback(cmd.Context(), strings.Join(args, " "), callback)
			if err != nil {
				return err
			}

			fmt.Println(answer)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print tool calls and results to stderr")
	return cmd
}

// serverCommand builds the command the agent spawns to reach the tool
// server. With no explicit configuration it re-executes this binary with
// the serve subcommand.
func serverCommand(p *profile.Profile) (*exec.Cmd, error) {
	if p.ServerCommand != "" {
		return exec.Command(p.ServerCommand, p.ServerArgs...), nil
	}
	self, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, "resolving own executable path")
	}
	return exec.Command(self, "serve"), nil
}
