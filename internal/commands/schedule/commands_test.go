package schedulecmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-publisher/internal/scheduling"
)

type stubScheduler struct {
	scheduleReq   *scheduling.ScheduleRequest
	scheduleErr   error
	report        scheduling.RunReport
	unscheduled   []any
	unscheduleErr error
}

func (s *stubScheduler) Schedule(_ context.Context, req scheduling.ScheduleRequest) (*scheduling.RunReport, error) {
	s.scheduleReq = &req
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	report := s.report
	return &report, nil
}

func (s *stubScheduler) Unschedule(_ context.Context, itemID any) error {
	s.unscheduled = append(s.unscheduled, itemID)
	return s.unscheduleErr
}

func TestBulkScheduleHandler_Execute(t *testing.T) {
	svc := &stubScheduler{report: scheduling.RunReport{Success: 3, Total: 3}}

	var got *scheduling.RunReport
	handler := NewBulkScheduleHandler(svc, nil, func(report scheduling.RunReport) {
		got = &report
	})

	msg := BulkScheduleCommand{
		TargetID:  10,
		Total:     3,
		Cadence:   "daily",
		PerPeriod: 1,
		BaseTime:  "08:00",
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if svc.scheduleReq == nil || svc.scheduleReq.Total != 3 || svc.scheduleReq.Cadence != "daily" {
		t.Fatalf("request not forwarded: %+v", svc.scheduleReq)
	}
	if got == nil || got.Success != 3 {
		t.Fatalf("report callback not invoked: %+v", got)
	}
}

func TestBulkScheduleHandler_ValidationRejected(t *testing.T) {
	svc := &stubScheduler{}
	handler := NewBulkScheduleHandler(svc, nil, nil)

	err := handler.Execute(context.Background(), BulkScheduleCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if svc.scheduleReq != nil {
		t.Fatal("invalid message must not reach the service")
	}
}

func TestBulkScheduleHandler_ServiceFailureTagged(t *testing.T) {
	svc := &stubScheduler{scheduleErr: scheduling.ErrNoEligibleItems}
	handler := NewBulkScheduleHandler(svc, nil, nil)

	msg := BulkScheduleCommand{TargetID: 10, Total: 1, Cadence: "daily", PerPeriod: 1, BaseTime: "08:00"}
	err := handler.Execute(context.Background(), msg)
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, scheduling.ErrNoEligibleItems) {
		t.Fatalf("underlying error lost: %v", err)
	}
}

func TestUnscheduleHandler_Execute(t *testing.T) {
	svc := &stubScheduler{}
	handler := NewUnscheduleHandler(svc, nil)

	if err := handler.Execute(context.Background(), UnscheduleCommand{ItemID: "42"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.unscheduled) != 1 || svc.unscheduled[0] != "42" {
		t.Fatalf("item id not forwarded: %v", svc.unscheduled)
	}
}

func TestUnscheduleHandler_ValidationRejected(t *testing.T) {
	svc := &stubScheduler{}
	handler := NewUnscheduleHandler(svc, nil)

	err := handler.Execute(context.Background(), UnscheduleCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.unscheduled) != 0 {
		t.Fatal("invalid message must not reach the service")
	}
}

func TestBulkScheduleCommand_Type(t *testing.T) {
	if got := (BulkScheduleCommand{}).Type(); got != "publisher.schedule.bulk" {
		t.Fatalf("unexpected message type %q", got)
	}
	if got := (UnscheduleCommand{}).Type(); got != "publisher.schedule.revert" {
		t.Fatalf("unexpected message type %q", got)
	}
}
