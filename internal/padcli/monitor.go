package padcli

import (
	"context"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/internal/padsvc"
	"github.com/padshift/padshift/mappers"
	"github.com/padshift/padshift/padapi"
)

func newMonitorCmd(newLogger func() (*zap.Logger, error)) *cobra.Command {
	var (
		profile  string
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the translation layer against a synthetic input source",
		Long: "Builds a mapper from the profile, drives it with a built-in synthetic\n" +
			"wave source, and logs the buffered state-change events.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			mapper, err := loadProfile(profile)
			if err != nil {
				return err
			}

			svc, err := padsvc.New(log, newSyntheticInput(), []*mappers.Mapper{mapper}, padsvc.Options{})
			if err != nil {
				return err
			}

			device, _ := svc.Device(0)
			controller := device.NewController()
			defer controller.Close()
			controller.SetEventBufferCapacity(64)

			notify := padapi.NewChanNotify()
			controller.SetStateChangeNotify(notify)

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			group, ctx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return svc.Run(ctx)
			})
			group.Go(func() error {
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-notify.Wait():
					}
					for {
						event, ok := controller.EventBufferEvent(0)
						if !ok {
							break
						}
						controller.PopOldestEvents(1)
						log.Info("state change",
							zap.String("element", event.Data.Element.String()),
							zap.Int32("axis", event.Data.AxisValue),
							zap.Bool("button", event.Data.ButtonPressed),
							zap.String("pov", event.Data.PovDirection.String()),
							zap.Uint32("sequence", event.Sequence),
							zap.Uint32("timestamp", event.Timestamp))
					}
				}
			})
			return group.Wait()
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "profile file (yaml, json or toml)")
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "how long to run, 0 for forever")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

// syntheticInput fabricates slowly moving stick coordinates and a button
// that toggles every second. It stands in for a platform input backend.
type syntheticInput struct {
	start time.Time
}

func newSyntheticInput() *syntheticInput {
	return &syntheticInput{start: time.Now()}
}

func (s *syntheticInput) Poll(uint32) (padapi.PhysicalState, error) {
	t := time.Since(s.start).Seconds()

	state := padapi.PhysicalState{
		Status:     padapi.PhysicalStatusOk,
		StickLeftX: int16(math.Sin(t) * padapi.AnalogValueMax),
		StickLeftY: int16(math.Cos(t) * padapi.AnalogValueMax),
	}
	if int(t)%2 == 0 {
		state.Buttons |= padapi.PhysicalButtonA
	}
	return state, nil
}

func (s *syntheticInput) WriteActuators(uint32, forcefeedback.PhysicalActuatorComponents) error {
	return nil
}
