package padcli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/mappers"
)

// loadProfile builds a mapper from a profile file. The profile assigns a
// definition string to each physical element by name:
//
//	name: wasd-layout
//	elements:
//	  StickLeftX: Axis(X)
//	  StickLeftY: Axis(Y)
//	  ButtonA: Button(1)
func loadProfile(path string) (*mappers.Mapper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var elements mappers.ElementMap
	for name, definition := range v.GetStringMapString("elements") {
		element, ok := mappers.PhysicalElementByName(name)
		if !ok {
			// Viper lowercases keys; retry against the canonical names.
			element, ok = physicalElementByFoldedName(name)
		}
		if !ok {
			return nil, fmt.Errorf("unknown physical element %q", name)
		}
		mapper, err := mappers.ParseElementMapper(definition)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		elements.SetByIndex(element, mapper)
	}

	return mappers.NewMapper(v.GetString("name"), elements, forcefeedback.DefaultActuatorMap())
}

func physicalElementByFoldedName(folded string) (mappers.PhysicalElement, bool) {
	for e := mappers.PhysicalElement(0); e < mappers.PhysicalElementCount; e++ {
		if strings.EqualFold(e.String(), folded) {
			return e, true
		}
	}
	return 0, false
}

func newCapsCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print the capabilities of a mapper profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mapper, err := loadProfile(profile)
			if err != nil {
				return err
			}

			caps := mapper.Capabilities()
			if name := mapper.Name(); name != "" {
				printf(cmd, "mapper: %s\n", name)
			}
			printf(cmd, "axes:\n")
			for _, axis := range caps.Axes {
				ff := ""
				if axis.SupportsForceFeedback {
					ff = " (force feedback)"
				}
				printf(cmd, "  %s%s\n", axis.Axis, ff)
			}
			printf(cmd, "buttons: %d\n", caps.NumButtons)
			printf(cmd, "pov: %v\n", caps.HasPov)
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "profile file (yaml, json or toml)")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
