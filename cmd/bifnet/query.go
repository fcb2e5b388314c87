package main

import (
	"fmt"

	"github.com/bornobob/bifnet/bifparser"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <network.bif> <variable> [value...]",
	Short: "Look up a probability vector by parent assignment",
	Long:  "Parse a .bif file and print the probability vector of a variable for the given parent assignment, one value per parent in declaration order. Omit the values for a variable without parents.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  queryNetwork,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func queryNetwork(cmd *cobra.Command, args []string) error {
	net, err := bifparser.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing network: %w", err)
	}

	v := net.VariableByName(args[1])
	if v == nil {
		return fmt.Errorf("variable %q not found in network %q", args[1], net.Name)
	}

	probs, err := v.Probability(args[2:])
	if err != nil {
		return err
	}

	for i, label := range v.Domain {
		fmt.Printf("P(%s=%s) = %g\n", v.Name, label, probs[i])
	}
	return nil
}
