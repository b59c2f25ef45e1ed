package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ochairo/distcheck/internal/domain-adapters/gateways"
	"github.com/ochairo/distcheck/internal/domain/interfaces"
	"github.com/ochairo/distcheck/internal/external-adapters/yaml"
)

var keysCmd = &cobra.Command{
	Use:   "keys <project>",
	Short: "Load and list a project's trusted keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := yaml.NewConfigLoader().Load(configPath)
		if err != nil {
			return err
		}

		logger := &interfaces.ConsoleLogger{Out: cmd.ErrOrStderr(), Quiet: quiet}
		loader := gateways.NewKeychainLoader(cfg.DistDir, cfg.KeychainDir, logger)

		project := args[0]
		keychain, records, err := loader.Load(cmd.Context(), project)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d key(s) in the trust store for %s\n", keychain.Size(), project)

		fingerprints := make([]string, 0, len(records))
		for fp := range records {
			fingerprints = append(fingerprints, fp)
		}
		sort.Strings(fingerprints)

		for _, fp := range fingerprints {
			key := records[fp]
			expires := "never"
			if key.Expires != 0 {
				expires = time.Unix(key.Expires, 0).UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(out, "%s expires=%s\n", key.Fingerprint, expires)
			for _, identity := range key.Identities {
				fmt.Fprintf(out, "    %s\n", identity)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
