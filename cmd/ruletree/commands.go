package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loaderkit/ruletree/pkg/config"
	"github.com/loaderkit/ruletree/pkg/normalize"
	"github.com/loaderkit/ruletree/pkg/rules"
)

var (
	flagProcessor string
	flagResource  string
	flagPhase     string
	flagQuery     string
	flagAll       bool
)

var listCmd = &cobra.Command{
	Use:   "list <config-file>",
	Short: "List rules matching a criterion",
	Long: `List the rules in a configuration file that match the given criterion.
By default first-match semantics apply: within a one_of set, only the
earliest matching rule is reported. Use --all to report every match.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadRuleSet(args[0])
		if err != nil {
			return err
		}

		criterion, err := buildCriterion()
		if err != nil {
			return err
		}

		var matched []*rules.Rule
		if flagAll {
			matched = rs.FilterAll(criterion)
		} else {
			matched = rs.FilterFirst(criterion)
		}

		if len(matched) == 0 {
			fmt.Println(mutedStyle().Render("no matching rules"))
			return nil
		}
		for _, rule := range matched {
			fmt.Println(describeRule(rule))
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <config-file>",
	Short: "Fetch the single rule matching a criterion",
	Long: `Fetch exactly one rule from a configuration file. Fails when the
criterion matches zero rules or more than one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadRuleSet(args[0])
		if err != nil {
			return err
		}

		criterion, err := buildCriterion()
		if err != nil {
			return err
		}

		rule, err := rs.GetExactlyOne(criterion)
		if err != nil {
			return err
		}
		fmt.Println(describeRule(rule))
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter rule file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".ruletree.toml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, getCmd} {
		cmd.Flags().StringVar(&flagProcessor, "processor", "", "Match rules referencing a processor containing this fragment")
		cmd.Flags().StringVar(&flagResource, "resource", "", "Match rules whose resource predicate accepts this path or extension")
		cmd.Flags().StringVar(&flagPhase, "phase", "", "Match rules in this phase (pre, normal, post)")
		cmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Bare query string; sniffs processor name vs resource path")
	}
	listCmd.Flags().BoolVar(&flagAll, "all", false, "Disable one_of first-match short-circuit")
}

func loadRuleSet(path string) (*rules.RuleSet, error) {
	roots, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return rules.New(&roots, normalize.Rules)
}

// buildCriterion assembles a criterion from the command flags. A bare
// --query sets the clause its shape implies; explicit flags layer on top.
func buildCriterion() (rules.Criterion, error) {
	var criterion rules.Criterion
	if flagQuery != "" {
		criterion = rules.ByQuery(flagQuery)
	}
	if flagProcessor != "" {
		criterion.Processor = flagProcessor
	}
	if flagResource != "" {
		criterion.Resource = flagResource
	}
	if flagPhase != "" {
		phase := rules.Phase(flagPhase)
		if !phase.Valid() {
			return rules.Criterion{}, fmt.Errorf("unknown phase %q", flagPhase)
		}
		criterion.Phase = phase
	}
	return criterion, nil
}
