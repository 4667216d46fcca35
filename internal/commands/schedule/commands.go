package schedulecmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-publisher/internal/commands"
	"github.com/goliatone/go-publisher/internal/scheduling"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

const (
	bulkScheduleMessageType = "publisher.schedule.bulk"
	unscheduleMessageType   = "publisher.schedule.revert"
)

// BulkScheduleCommand requests a full scheduling run against one target.
type BulkScheduleCommand struct {
	TargetID  any        `json:"target_id"`
	Total     int        `json:"total"`
	Cadence   string     `json:"cadence"`
	PerPeriod int        `json:"per_period"`
	StartDate *time.Time `json:"start_date,omitempty"`
	BaseTime  string     `json:"base_time"`
}

// Type implements command.Message.
func (BulkScheduleCommand) Type() string { return bulkScheduleMessageType }

// Validate ensures required fields and basic payload consistency.
func (m BulkScheduleCommand) Validate() error {
	errs := validation.Errors{}
	if m.TargetID == nil || m.TargetID == "" {
		errs["target_id"] = validation.NewError("publisher.schedule.target_required", "target_id is required")
	}
	if m.Total < 1 {
		errs["total"] = validation.NewError("publisher.schedule.total_invalid", "total must be at least one")
	}
	if m.PerPeriod < 1 {
		errs["per_period"] = validation.NewError("publisher.schedule.per_period_invalid", "per_period must be at least one")
	}
	if m.Cadence == "" {
		errs["cadence"] = validation.NewError("publisher.schedule.cadence_required", "cadence is required")
	}
	if m.BaseTime == "" {
		errs["base_time"] = validation.NewError("publisher.schedule.base_time_required", "base_time is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Scheduler is the slice of the scheduling service the handlers drive.
type Scheduler interface {
	Schedule(ctx context.Context, req scheduling.ScheduleRequest) (*scheduling.RunReport, error)
	Unschedule(ctx context.Context, itemID any) error
}

// BulkScheduleHandler runs a scheduling pass via the scheduling service.
type BulkScheduleHandler struct {
	inner *commands.Handler[BulkScheduleCommand]
}

// NewBulkScheduleHandler constructs a handler wired to the provided service.
// onReport, when non-nil, receives the run report after a successful pass.
func NewBulkScheduleHandler(service Scheduler, logger interfaces.Logger, onReport func(scheduling.RunReport), opts ...commands.HandlerOption[BulkScheduleCommand]) *BulkScheduleHandler {
	exec := func(ctx context.Context, msg BulkScheduleCommand) error {
		report, err := service.Schedule(ctx, scheduling.ScheduleRequest{
			TargetID:  msg.TargetID,
			Total:     msg.Total,
			Cadence:   msg.Cadence,
			PerPeriod: msg.PerPeriod,
			StartDate: msg.StartDate,
			BaseTime:  msg.BaseTime,
		})
		if err != nil {
			return err
		}
		if onReport != nil {
			onReport(*report)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BulkScheduleCommand]{
		commands.WithLogger[BulkScheduleCommand](logger),
		commands.WithOperation[BulkScheduleCommand]("schedule.bulk"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BulkScheduleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BulkScheduleCommand].
func (h *BulkScheduleHandler) Execute(ctx context.Context, msg BulkScheduleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnscheduleCommand reverts one scheduled item back to draft.
type UnscheduleCommand struct {
	ItemID any `json:"item_id"`
}

// Type implements command.Message.
func (UnscheduleCommand) Type() string { return unscheduleMessageType }

// Validate ensures the item reference is present.
func (m UnscheduleCommand) Validate() error {
	errs := validation.Errors{}
	if m.ItemID == nil || m.ItemID == "" {
		errs["item_id"] = validation.NewError("publisher.schedule.item_required", "item_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnscheduleHandler reverts an item via the scheduling service.
type UnscheduleHandler struct {
	inner *commands.Handler[UnscheduleCommand]
}

// NewUnscheduleHandler constructs a handler wired to the provided service.
func NewUnscheduleHandler(service Scheduler, logger interfaces.Logger, opts ...commands.HandlerOption[UnscheduleCommand]) *UnscheduleHandler {
	exec := func(ctx context.Context, msg UnscheduleCommand) error {
		return service.Unschedule(ctx, msg.ItemID)
	}

	handlerOpts := []commands.HandlerOption[UnscheduleCommand]{
		commands.WithLogger[UnscheduleCommand](logger),
		commands.WithOperation[UnscheduleCommand]("schedule.revert"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnscheduleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnscheduleCommand].
func (h *UnscheduleHandler) Execute(ctx context.Context, msg UnscheduleCommand) error {
	return h.inner.Execute(ctx, msg)
}
