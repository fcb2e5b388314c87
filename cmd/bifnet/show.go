package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bornobob/bifnet/bifparser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show <network.bif>",
	Short: "Parse a BIF file and print the network structure",
	Long:  "Parse a .bif file and print the network name, each variable's domain and parents, and its probability tables.",
	Args:  cobra.ExactArgs(1),
	RunE:  showNetwork,
}

func init() {
	showCmd.Flags().Bool("lint", false, "Run validation rules after parsing")
	rootCmd.AddCommand(showCmd)
}

func showNetwork(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	lint, _ := cmd.Flags().GetBool("lint")

	net, err := bifparser.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing network: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Network: %s (%d variables)\n", net.Name, len(net.Variables))
	}

	fmt.Printf("network %s\n", net.Name)
	for _, v := range net.Variables {
		fmt.Printf("  %s: domain [%s]\n", v.Name, strings.Join(v.Domain, ", "))
		switch v.Dist.Kind {
		case bifparser.DistTable:
			fmt.Printf("    table %v\n", v.Dist.Table)
		case bifparser.DistConditional:
			fmt.Printf("    given %s: %d rows\n", strings.Join(v.Parents, ", "), len(v.Dist.Rows))
		default:
			fmt.Printf("    no distribution\n")
		}
	}

	if lint {
		diags, err := bifparser.ValidateOrError(net)
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
