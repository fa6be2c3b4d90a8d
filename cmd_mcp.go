package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AkashAS-coder/Clarity-Care/generator"
	"github.com/AkashAS-coder/Clarity-Care/mcptools"
	"github.com/AkashAS-coder/Clarity-Care/translator"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the translator as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := []translator.Option{translator.WithLogger(logger)}

		llm, err := buildLLM(cfg)
		if err != nil {
			// Tools still work on the local rule table.
			logger.Warn("AI mode unavailable", zap.Error(err))
		} else {
			agent, err := generator.NewAgent(llm)
			if err != nil {
				return err
			}
			opts = append(opts, translator.WithRemote(agent))
		}

		s := mcptools.NewServer(Version, translator.NewOrchestrator(opts...))
		return server.ServeStdio(s)
	},
}
