package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tboutron/prisma-uml/pkg/config"
	"github.com/tboutron/prisma-uml/pkg/prismauml"
)

const example = `  prisma-uml prisma/schema.prisma
  prisma-uml prisma/schema.prisma -o docs/schema.puml
  prisma-uml --full-relation-links --notation crowsfoot`

// NewGenerateCmd builds the command that turns a schema into a diagram.
func NewGenerateCmd() *cobra.Command {
	var (
		configFile string
		output     string
		full       bool
		notation   string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "prisma-uml [schema]",
		Short:        "Generate a PlantUML class diagram from a Prisma schema",
		Example:      example,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(logrus.WarnLevel)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			var (
				cfg *config.Config
				err error
			)
			if configFile != "" {
				cfg, err = config.Load(configFile)
			} else {
				cfg, err = config.LoadDir(".")
			}
			if err != nil {
				return err
			}

			if len(args) == 1 {
				cfg.Schema = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("full-relation-links") {
				cfg.FullRelationLinks = full
			}
			if flags.Changed("notation") {
				cfg.Notation = notation
			}

			n, err := prismauml.ParseNotation(cfg.Notation)
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"schema":            cfg.Schema,
				"fullRelationLinks": cfg.FullRelationLinks,
				"notation":          n,
			}).Debug("Generating diagram")

			uml, err := prismauml.Generate(cfg.Schema, prismauml.Options{
				FullRelationLinks: cfg.FullRelationLinks,
				Notation:          n,
				Logger:            logger,
			})
			if err != nil {
				return err
			}

			if cfg.Output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), uml)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(cfg.Output, []byte(uml), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Infof("Wrote %s", cfg.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the diagram to this file instead of stdout")
	cmd.Flags().BoolVar(&full, "full-relation-links", false, "Draw both directions of every relation")
	cmd.Flags().StringVar(&notation, "notation", "multiplicity", "Cardinality notation: multiplicity or crowsfoot")
	cmd.Flags().StringVar(&configFile, "config", "", "Config file (default: prisma-uml.{yml,yaml,toml} in the working directory)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}
