package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subrename/internal/signature"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "match <name> <name>",
		Short: "Report whether two file names carry the same season/episode signature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := policy
			if !cmd.Flags().Changed("policy") {
				if cfg := ctx.configValue(); cfg != nil {
					value = cfg.Matching.Policy
				}
			}
			parsed, err := signature.ParsePolicy(value)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, name := range args {
				fmt.Fprintf(out, "%s: %s\n", name, describeSignature(name))
			}

			matcher := signature.Matcher{Policy: parsed}
			result := matcher.Match(args[0], args[1])
			kind := statusWarn
			if result == signature.Match {
				kind = statusOK
			}
			fmt.Fprintln(out, renderStatusLine("Result", kind, fmt.Sprintf("%s (%s policy)", result, parsed), colorize))
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Signature comparison policy (exact or numeric)")
	return cmd
}

func describeSignature(name string) string {
	sig, ok := signature.Extract(name)
	if !ok {
		return "no signature"
	}
	return sig.String()
}
