/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleet-policy/pkg/header"
	"github.com/NVIDIA/fleet-policy/pkg/policy"
	"github.com/NVIDIA/fleet-policy/pkg/serializer"
)

const (
	statusValid   = "valid"
	statusInvalid = "invalid"
)

// IntentValidation is the per-intent outcome of a validate run.
type IntentValidation struct {
	Intent    string `json:"intent" yaml:"intent"`
	Policy    string `json:"policy,omitempty" yaml:"policy,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty"`
	Manifests int    `json:"manifests" yaml:"manifests"`
	Status    string `json:"status" yaml:"status"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ValidationReport aggregates validation outcomes across intents.
type ValidationReport struct {
	header.Header `yaml:",inline"`

	Results []IntentValidation `json:"results" yaml:"results"`
	Total   int                `json:"total" yaml:"total"`
	Valid   int                `json:"valid" yaml:"valid"`
	Invalid int                `json:"invalid" yaml:"invalid"`
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate policy intents without generating bundles",
		Description: `Validate one or more policy intent files.

Each intent is parsed, its fields checked, its manifests resolved, and
its placement rule computed. The command reports per-intent outcomes
and fails if any intent is invalid.

# Examples

Validate a single intent:
  themis validate --intent intent.yaml

Validate several intents and emit a JSON report:
  themis validate -i gpu-policy.yaml -i net-policy.yaml --format json

Write the validation report to a file:
  themis validate --intent intent.yaml --output report.yaml`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "intent",
				Aliases:  []string{"i"},
				Required: true,
				Usage: `Path/URI to a policy intent file (can be repeated).
	Supports: file paths, HTTP/HTTPS URLs, or cm://namespace/name ConfigMap URIs.
	Intents without filesystem context must use inline manifests.`,
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for intent URLs",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			intents := cmd.StringSlice("intent")
			insecureTLS := cmd.Bool("insecure-tls")
			kubeconfig := cmd.String("kubeconfig")

			titleCaser := cases.Title(language.English)
			report := &ValidationReport{
				Header: *header.New(
					header.WithKind(header.KindValidationReport),
					header.WithAPIVersion(policy.IntentAPIVersion),
					header.WithMetadata("generatedBy", fmt.Sprintf("%s/%s", name, version)),
				),
				Total: len(intents),
			}

			for _, path := range intents {
				res := IntentValidation{
					Intent: path,
					Status: titleCaser.String(statusValid),
				}

				spec, err := loadSpec(ctx, path, kubeconfig, insecureTLS)
				if err == nil {
					res.Policy = spec.Name
					res.Namespace = spec.Namespace
					res.Manifests = spec.Manifests.Len()

					var rule, ruleErr = spec.ResolvePlacement()
					if ruleErr != nil {
						err = ruleErr
					} else {
						res.Placement = string(rule.Kind)
					}
				}

				if err != nil {
					res.Status = titleCaser.String(statusInvalid)
					res.Error = err.Error()
					report.Invalid++
					slog.Warn("intent invalid", "intent", path, "error", err)
				} else {
					report.Valid++
					slog.Info("intent valid",
						"intent", path,
						"policy", res.Policy,
						"placement", res.Placement,
					)
				}

				report.Results = append(report.Results, res)
			}

			output := cmd.String("output")
			ser := serializer.NewFileWriterOrStdout(format, output)
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to serialize validation report: %w", err)
			}

			if report.Invalid > 0 {
				return fmt.Errorf("validation failed: %d of %d intent(s) invalid",
					report.Invalid, report.Total)
			}
			return nil
		},
	}
}
