/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleet-policy/pkg/bundler"
	"github.com/NVIDIA/fleet-policy/pkg/defaults"
	"github.com/NVIDIA/fleet-policy/pkg/oci"
	"github.com/NVIDIA/fleet-policy/pkg/policy"
	"github.com/NVIDIA/fleet-policy/pkg/serializer"
)

const defaultOCITag = "latest"

// generateCmdOptions holds parsed options for the generate command.
type generateCmdOptions struct {
	intentPaths []string
	output      string
	format      serializer.Format
	kubeconfig  string
	tag         string
	plainHTTP   bool
	insecureTLS bool
	target      *oci.Reference
}

// parseGenerateCmdOptions parses and validates command options.
func parseGenerateCmdOptions(cmd *cli.Command) (*generateCmdOptions, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}

	opts := &generateCmdOptions{
		intentPaths: cmd.StringSlice("intent"),
		output:      cmd.String("output"),
		format:      format,
		kubeconfig:  cmd.String("kubeconfig"),
		tag:         cmd.String("tag"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
	}

	if len(opts.intentPaths) == 0 {
		return nil, fmt.Errorf("at least one --intent is required")
	}

	opts.target, err = oci.ParseOutputTarget(opts.output)
	if err != nil {
		return nil, err
	}

	// Single-destination outputs cannot fan out.
	multiIntent := len(opts.intentPaths) > 1
	if multiIntent && opts.target.IsOCI {
		return nil, fmt.Errorf("OCI output supports exactly one --intent")
	}
	if multiIntent && strings.HasPrefix(opts.output, serializer.ConfigMapURIScheme) {
		return nil, fmt.Errorf("ConfigMap output supports exactly one --intent")
	}

	if opts.tag != "" && !opts.target.IsOCI {
		return nil, fmt.Errorf("--tag requires an oci:// output target")
	}

	return opts, nil
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		EnableShellCompletion: true,
		Usage:                 "Generate a policy bundle from one or more policy intents",
		Description: `Generate an Open Cluster Management policy bundle from a policy intent.

Each intent produces a multi-document YAML bundle containing the Policy,
the Placement resources that target it, and the PlacementBinding that
connects them. Cluster-set placements additionally produce one
ManagedClusterSetBinding per cluster set.

# Examples

Generate a bundle to stdout:
  themis generate --intent intent.yaml

Write the bundle to a file:
  themis generate --intent intent.yaml --output bundle.yaml

Generate bundles for several intents into a directory:
  themis generate -i gpu-policy.yaml -i net-policy.yaml --output ./bundles

Write the bundle to a cluster ConfigMap:
  themis generate --intent intent.yaml --output cm://fleet-system/gpu-policy-bundle

Push the bundle to an OCI registry:
  themis generate --intent intent.yaml \
    --output oci://ghcr.io/nvidia/policies --tag v1.0.0

Load the intent from a URL (manifests must be inline):
  themis generate --intent https://example.com/intents/gpu.yaml`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "intent",
				Aliases:  []string{"i"},
				Required: true,
				Usage: `Path/URI to a policy intent file (can be repeated).
	Supports: file paths, HTTP/HTTPS URLs, or cm://namespace/name ConfigMap URIs.
	Intents without filesystem context must use inline manifests.`,
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: fmt.Sprintf("OCI image tag (default: %s, only used with oci:// output)", defaultOCITag),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for OCI registry and intent URLs",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseGenerateCmdOptions(cmd)
			if err != nil {
				return err
			}

			slog.Info("generating bundles",
				"intents", len(opts.intentPaths),
				"output", opts.output,
			)

			// The kube client discovers its config through the
			// KUBECONFIG env var.
			if opts.kubeconfig != "" {
				if err := os.Setenv("KUBECONFIG", opts.kubeconfig); err != nil {
					return fmt.Errorf("failed to set KUBECONFIG: %w", err)
				}
			}

			if len(opts.intentPaths) > 1 && opts.output != "" {
				return generateToDirectory(ctx, opts)
			}

			for _, path := range opts.intentPaths {
				if err := generateOne(ctx, path, opts.output, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// generateToDirectory fans multiple intents out into per-policy bundle
// files under the output directory.
func generateToDirectory(ctx context.Context, opts *generateCmdOptions) error {
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", opts.output, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, path := range opts.intentPaths {
		g.Go(func() error {
			spec, bundle, err := buildBundle(gctx, path, opts.kubeconfig, opts.insecureTLS)
			if err != nil {
				return err
			}
			out := filepath.Join(opts.output, spec.Name+".yaml")
			return writeBundle(gctx, bundle, spec.Name, opts.format, out)
		})
	}
	return g.Wait()
}

// generateOne builds a single intent and routes the bundle to the
// output target.
func generateOne(ctx context.Context, intentPath, output string, opts *generateCmdOptions) error {
	spec, bundle, err := buildBundle(ctx, intentPath, opts.kubeconfig, opts.insecureTLS)
	if err != nil {
		return err
	}

	if opts.target.IsOCI {
		return pushBundle(ctx, bundle, spec.Name, opts)
	}

	return writeBundle(ctx, bundle, spec.Name, opts.format, output)
}

// buildBundle loads an intent from a file path, URL, or ConfigMap URI
// and builds its bundle.
func buildBundle(ctx context.Context, intentPath, kubeconfig string, insecureTLS bool) (*policy.Spec, *bundler.Bundle, error) {
	spec, err := loadSpec(ctx, intentPath, kubeconfig, insecureTLS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load intent from %q: %w", intentPath, err)
	}

	rule, err := spec.ResolvePlacement()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve placement for %q: %w", spec.Name, err)
	}

	bundle, err := bundler.Build(spec, rule)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build bundle for %q: %w", spec.Name, err)
	}

	slog.Info("bundle built",
		"policy", spec.Name,
		"namespace", spec.Namespace,
		"resources", bundle.Len(),
	)

	return spec, bundle, nil
}

// loadSpec resolves an intent from a local file, an HTTP(S) URL, or a
// ConfigMap URI (cm://namespace/name). Sources without filesystem
// context (URLs and ConfigMaps) must use inline manifests.
func loadSpec(ctx context.Context, intentPath, kubeconfig string, insecureTLS bool) (*policy.Spec, error) {
	if strings.HasPrefix(intentPath, "http://") || strings.HasPrefix(intentPath, "https://") {
		data, err := serializer.NewHttpReader(
			serializer.WithInsecureSkipVerify(insecureTLS),
		).ReadWithContext(ctx, intentPath)
		if err != nil {
			return nil, err
		}
		in, err := policy.ParseIntent(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return in.ToSpecInline()
	}

	if strings.HasPrefix(intentPath, serializer.ConfigMapURIScheme) {
		in, err := serializer.FromFileWithKubeconfig[policy.Intent](intentPath, kubeconfig)
		if err != nil {
			return nil, err
		}
		if err := in.CheckTypeMeta(); err != nil {
			return nil, err
		}
		return in.ToSpecInline()
	}

	in, err := serializer.FromFile[policy.Intent](intentPath)
	if err != nil {
		return nil, err
	}
	if err := in.CheckTypeMeta(); err != nil {
		return nil, err
	}
	return in.ToSpec(filepath.Dir(intentPath))
}

// writeBundle serializes a bundle to stdout, a file, or a ConfigMap.
func writeBundle(ctx context.Context, bundle *bundler.Bundle, policyName string, format serializer.Format, output string) error {
	ser := serializer.NewFileWriterOrStdout(format, output)
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, bundle); err != nil {
		return fmt.Errorf("failed to write bundle for %q: %w", policyName, err)
	}

	if output != "" {
		slog.Info("bundle written", "policy", policyName, "output", output)
	}
	return nil
}

// pushBundle publishes a bundle to the OCI registry named by the
// output target.
func pushBundle(ctx context.Context, bundle *bundler.Bundle, policyName string, opts *generateCmdOptions) error {
	tag := opts.tag
	if tag == "" {
		tag = opts.target.Tag
	}
	if tag == "" {
		tag = defaultOCITag
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	slog.Info("pushing bundle to OCI registry",
		"registry", opts.target.Registry,
		"repository", opts.target.Repository,
		"tag", tag,
	)

	result, err := oci.PushBundle(ctx, bundle, oci.PushOptions{
		Registry:    opts.target.Registry,
		Repository:  opts.target.Repository,
		Tag:         tag,
		PolicyName:  policyName,
		PlainHTTP:   opts.plainHTTP,
		InsecureTLS: opts.insecureTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to push bundle for %q: %w", policyName, err)
	}

	slog.Info("bundle pushed",
		"reference", result.Reference,
		"digest", result.Digest,
	)
	return nil
}
