// Command exprsafe is a thin operator-facing CLI around the exprsafe
// library: evaluate one expression, or render one template file, against
// an optional JSON-seeded registry. It exists for host-side debugging and
// for exercising the library in CI without embedding it in a full survey
// runtime.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/surveyrt/exprsafe"
	"github.com/surveyrt/exprsafe/builtins"
	"github.com/surveyrt/exprsafe/regconfig"
)

var logLevel string

func newEvaluator(varsPath, reservedPath string) (*exprsafe.Evaluator, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	log := logrus.New()
	log.SetLevel(level)

	ev := exprsafe.NewEvaluator()
	ev.SetLogger(log)
	ev.RegisterFunctions(builtins.CatalogWithLogger(log))

	if varsPath != "" {
		payload, err := os.ReadFile(varsPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", varsPath, err)
		}
		if err := regconfig.Import(ev.Registry(), payload, regconfig.KindVariable, regconfig.MergeAdditive); err != nil {
			return nil, err
		}
	}
	if reservedPath != "" {
		payload, err := os.ReadFile(reservedPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", reservedPath, err)
		}
		if err := regconfig.Import(ev.Registry(), payload, regconfig.KindReserved, regconfig.MergeAdditive); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

func newEvalCmd() *cobra.Command {
	var parseOnly bool
	var varsPath, reservedPath string

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a single expression against an optional registered vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := newEvaluator(varsPath, reservedPath)
			if err != nil {
				return err
			}

			if ok := ev.Evaluate(args[0], parseOnly); !ok {
				fmt.Fprint(os.Stderr, ev.GetReadableErrors())
				os.Exit(1)
				return nil
			}

			if parseOnly {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			result, _ := ev.GetResult()
			fmt.Fprintln(cmd.OutOrStdout(), exprsafe.FromScalar(result, 0).ToText())
			return nil
		},
	}

	cmd.Flags().BoolVar(&parseOnly, "parse-only", false, "check syntax without evaluating")
	cmd.Flags().StringVar(&varsPath, "vars", "", "JSON file of variable registrations")
	cmd.Flags().StringVar(&reservedPath, "reserved", "", "JSON file of reserved-word registrations")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var maxDepth int
	var varsPath, reservedPath string

	cmd := &cobra.Command{
		Use:   "template <file>",
		Short: "Render a text file's { expr } substitutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := newEvaluator(varsPath, reservedPath)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			out := ev.ProcessTemplate(string(content), maxDepth)
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum template re-expansion depth (0 = default)")
	cmd.Flags().StringVar(&varsPath, "vars", "", "JSON file of variable registrations")
	cmd.Flags().StringVar(&reservedPath, "reserved", "", "JSON file of reserved-word registrations")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "exprsafe",
		Short: "Sandboxed expression evaluator CLI",
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "logrus level: panic|fatal|error|warn|info|debug|trace")
	root.AddCommand(newEvalCmd(), newTemplateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
