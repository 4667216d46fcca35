package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	publisher "github.com/goliatone/go-publisher"
	pubcontent "github.com/goliatone/go-publisher/content"
	"github.com/goliatone/go-publisher/domain"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

const pool = `[
	{"id": 1, "target_id": 100, "title": "Launch announcement", "body": "# We are live"},
	{"id": 2, "target_id": 100, "title": "Feature deep dive", "body": "## Under the hood"},
	{"id": 3, "target_id": 100, "title": "Customer story", "body": "A quick case study."},
	{"id": 4, "target_id": 100, "title": "Roadmap preview", "body": "What ships next."}
]`

// printGateway stands in for a live endpoint so the walkthrough runs offline.
type printGateway struct {
	nextRef int
}

func (g *printGateway) CreateScheduledPost(_ context.Context, creds interfaces.TargetCredentials, post interfaces.GatewayPost, localTimestamp string) (*interfaces.GatewayAcceptance, error) {
	g.nextRef++
	fmt.Printf("  -> %s: %q scheduled for %s\n", creds.Endpoint, post.Title, localTimestamp)
	return &interfaces.GatewayAcceptance{ExternalRef: fmt.Sprintf("%d", g.nextRef)}, nil
}

func (g *printGateway) CancelScheduledPost(_ context.Context, creds interfaces.TargetCredentials, externalRef string) error {
	fmt.Printf("  -> %s: post %s cancelled\n", creds.Endpoint, externalRef)
	return nil
}

func main() {
	ctx := context.Background()

	cfg := publisher.DefaultConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Format = "console"
	cfg.Scheduling.PacingInterval = 100 * time.Millisecond

	engine, err := publisher.New(cfg,
		publisher.WithGateway(&printGateway{}),
		publisher.WithProgressReporter(interfaces.ProgressFunc(func(processed, total int, percent float64) {
			fmt.Printf("progress: %d/%d (%.0f%%)\n", processed, total, percent)
		})))
	if err != nil {
		log.Fatalf("new engine: %v", err)
	}
	defer engine.Close()

	if _, err := engine.Targets().Create(ctx, &pubcontent.Target{
		ID:        uuid.New(),
		RemoteID:  domain.NewIdentifier(100),
		Name:      "demo site",
		Endpoint:  "https://demo.example.test",
		Principal: "editor",
		Secret:    "application-password",
	}); err != nil {
		log.Fatalf("create target: %v", err)
	}

	imported, err := engine.ImportPool(ctx, []byte(pool))
	if err != nil {
		log.Fatalf("import pool: %v", err)
	}
	fmt.Printf("imported %d items\n", imported)

	req := publisher.ScheduleRequest{
		TargetID:  100,
		Total:     3,
		Cadence:   "daily",
		PerPeriod: 1,
		BaseTime:  "09:00",
	}

	plan, err := engine.Scheduler().Plan(req)
	if err != nil {
		log.Fatalf("plan: %v", err)
	}
	fmt.Println("planned slots:")
	for _, slot := range plan {
		fmt.Printf("  %s\n", slot.Format(time.RFC1123))
	}

	report, err := engine.Scheduler().Schedule(ctx, req)
	if err != nil {
		log.Fatalf("schedule: %v", err)
	}
	fmt.Println(report.Message())

	// Revert the first item to show the unscheduling path.
	if err := engine.Scheduler().Unschedule(ctx, 1); err != nil {
		log.Fatalf("unschedule: %v", err)
	}
	fmt.Println("item 1 reverted to draft")
}
