package padcli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/padshift/padshift/mappers"
	"github.com/padshift/padshift/padapi/paddsl"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <definition>...",
		Short: "Validate mapper definition strings",
		Long: "Parses each mapper definition string and reports the element mapper\n" +
			"it describes. Known types: " + strings.Join(mappers.MapperTypeNames(), ", ") + ".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, definition := range args {
				expr, err := paddsl.Parse(definition)
				if err != nil {
					return err
				}
				mapper, err := mappers.ParseElementMapper(definition)
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", expr)
				for _, target := range mapper.TargetElements() {
					printf(cmd, "  -> %s\n", target)
				}
			}
			return nil
		},
	}
}
