// Package padsvc runs the physical controller side of the translation
// layer: it polls physical controllers, pushes fresh states into every
// registered virtual controller, and writes force feedback output back to
// the physical actuators.
package padsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/mappers"
	"github.com/padshift/padshift/padapi"
	"github.com/padshift/padshift/vcontroller"
)

// PhysicalInput is the platform collaborator the service polls. Poll
// returns the current state atomically; transient failures are reported
// either through the returned error or a PhysicalStatusError state.
type PhysicalInput interface {
	Poll(controllerID uint32) (padapi.PhysicalState, error)
	WriteActuators(controllerID uint32, output forcefeedback.PhysicalActuatorComponents) error
}

// Options tune the service loops.
type Options struct {
	// PollInterval is the physical input polling period.
	PollInterval time.Duration

	// ForceFeedbackInterval is the actuator output period.
	ForceFeedbackInterval time.Duration

	Clock padapi.Clock
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.PollInterval <= 0 {
		out.PollInterval = 8 * time.Millisecond
	}
	if out.ForceFeedbackInterval <= 0 {
		out.ForceFeedbackInterval = 16 * time.Millisecond
	}
	if out.Clock == nil {
		out.Clock = padapi.NewSystemClock()
	}
	return out
}

// Device is the service-side representation of one physical controller:
// its configured mapper, the shared force feedback engine, and the set of
// registered virtual controllers that receive every fresh state.
//
// Device implements vcontroller.ForceFeedbackRegistry.
type Device struct {
	id     uint32
	log    *zap.Logger
	mapper *mappers.Mapper

	ffDevice    *forcefeedback.Device
	controllers *xsync.MapOf[*vcontroller.Controller, struct{}]

	lastActuators forcefeedback.PhysicalActuatorComponents
}

func newDevice(id uint32, log *zap.Logger, mapper *mappers.Mapper, clock padapi.Clock) *Device {
	return &Device{
		id:          id,
		log:         log.With(zap.Uint32("controller", id)),
		mapper:      mapper,
		ffDevice:    forcefeedback.NewDevice(clock),
		controllers: xsync.NewMapOf[*vcontroller.Controller, struct{}](),
	}
}

// ID returns the physical controller identifier.
func (d *Device) ID() uint32 {
	return d.id
}

// Mapper returns the layout configured for this physical controller.
func (d *Device) Mapper() *mappers.Mapper {
	return d.mapper
}

// NewController creates a virtual controller bound to this physical
// device and registers it for state distribution. The caller must Close
// the controller when done with it.
func (d *Device) NewController(opts ...vcontroller.Option) *vcontroller.Controller {
	opts = append([]vcontroller.Option{vcontroller.WithForceFeedbackRegistry(d)}, opts...)
	c := vcontroller.NewController(d.id, d.mapper, opts...)
	d.controllers.Store(c, struct{}{})
	return c
}

// RegisterController hands out the shared force feedback device. Part of
// the vcontroller.ForceFeedbackRegistry contract; the controller set is
// maintained by NewController and UnregisterController.
func (d *Device) RegisterController(c *vcontroller.Controller) *forcefeedback.Device {
	d.controllers.Store(c, struct{}{})
	return d.ffDevice
}

// UnregisterController detaches a controller from the device entirely:
// it stops receiving both state refreshes and force feedback output.
// Invoked by the controller's Close.
func (d *Device) UnregisterController(c *vcontroller.Controller) {
	d.controllers.Delete(c)
}

// ForceFeedbackDevice returns the shared force feedback engine.
func (d *Device) ForceFeedbackDevice() *forcefeedback.Device {
	return d.ffDevice
}

// distribute pushes one physical reading into every registered virtual
// controller.
func (d *Device) distribute(state padapi.PhysicalState) {
	d.controllers.Range(func(c *vcontroller.Controller, _ struct{}) bool {
		c.Refresh(state)
		return true
	})
}

// Service owns one Device per physical controller slot and the workers
// that keep them fresh.
type Service struct {
	log     *zap.Logger
	input   PhysicalInput
	opts    Options
	devices []*Device
}

// New creates a service with one physical device per mapper. The mapper
// at index i defines the layout of controller identifier i.
func New(log *zap.Logger, input PhysicalInput, deviceMappers []*mappers.Mapper, opts Options) (*Service, error) {
	if len(deviceMappers) == 0 {
		return nil, fmt.Errorf("%w: no controllers configured", padapi.ErrInvalidParameter)
	}
	resolved := opts.withDefaults()
	svc := &Service{
		log:   log,
		input: input,
		opts:  resolved,
	}
	for i, mapper := range deviceMappers {
		if mapper == nil {
			mapper = mappers.GetNull()
		}
		svc.devices = append(svc.devices, newDevice(uint32(i), log, mapper, resolved.Clock))
	}
	return svc, nil
}

// Device returns the physical device with the given identifier.
func (s *Service) Device(id uint32) (*Device, bool) {
	if int(id) >= len(s.devices) {
		return nil, false
	}
	return s.devices[id], true
}

// NumDevices returns the number of configured physical controller slots.
func (s *Service) NumDevices() int {
	return len(s.devices)
}

// Run polls every physical controller until the context is canceled. One
// worker runs per controller; a second worker per controller drives force
// feedback output.
func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, device := range s.devices {
		device := device
		group.Go(func() error {
			return s.pollLoop(ctx, device)
		})
		group.Go(func() error {
			return s.forceFeedbackLoop(ctx, device)
		})
	}
	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollLoop polls one controller at the configured interval. Transient
// errors back off exponentially and reset on the first good poll.
func (s *Service) pollLoop(ctx context.Context, device *Device) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = s.opts.PollInterval
	retry.MaxInterval = time.Second
	retry.MaxElapsedTime = 0

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		state, err := s.input.Poll(device.id)
		if err != nil {
			state = padapi.PhysicalState{Status: padapi.PhysicalStatusError}
			if errors.Is(err, padapi.ErrDeviceNotConnected) {
				state.Status = padapi.PhysicalStatusNotConnected
			} else {
				wait := retry.NextBackOff()
				device.log.Warn("poll failed",
					zap.Error(err),
					zap.Duration("backoff", wait))
				ticker.Reset(wait)
			}
		} else {
			retry.Reset()
			ticker.Reset(s.opts.PollInterval)
		}

		device.distribute(state)
	}
}

// forceFeedbackLoop periodically converts the device's active effects to
// actuator output. Output is only written when it changes, and actuators
// are silenced when the last effect stops.
func (s *Service) forceFeedbackLoop(ctx context.Context, device *Device) error {
	if !device.mapper.ActuatorMap().HasActuators() {
		return nil
	}

	ticker := time.NewTicker(s.opts.ForceFeedbackInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		// Device gain is already applied by ComputeAxisMagnitudes.
		magnitudes := device.ffDevice.ComputeAxisMagnitudes(s.opts.Clock.NowMs())
		output := device.mapper.MapForceFeedback(magnitudes, 1)
		if output == device.lastActuators {
			continue
		}
		device.lastActuators = output

		if err := s.input.WriteActuators(device.id, output); err != nil {
			device.log.Warn("actuator write failed", zap.Error(err))
		}
	}
}
