// Package schedules adapts EventBridge Scheduler to the ReminderScheduler
// port.
package schedules

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
)

// SchedulerClient is the subset of the EventBridge Scheduler API this
// adapter uses.
type SchedulerClient interface {
	CreateSchedule(ctx context.Context, input *scheduler.CreateScheduleInput, opts ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error)
	DeleteSchedule(ctx context.Context, input *scheduler.DeleteScheduleInput, opts ...func(*scheduler.Options)) (*scheduler.DeleteScheduleOutput, error)
}

// ReminderScheduler registers one-shot schedules that fire a reminder
// delivery target at the scheduled time.
type ReminderScheduler struct {
	client    SchedulerClient
	groupName string
	targetArn string
	roleArn   string
	logger    *zap.Logger
}

// NewReminderScheduler creates a scheduler adapter for the given schedule
// group and delivery target.
func NewReminderScheduler(client SchedulerClient, groupName, targetArn, roleArn string, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		client:    client,
		groupName: groupName,
		targetArn: targetArn,
		roleArn:   roleArn,
		logger:    logger,
	}
}

// CreateSchedule registers a one-shot at(...) schedule. The schedule deletes
// itself after firing.
func (s *ReminderScheduler) CreateSchedule(ctx context.Context, name string, at time.Time, payload ports.SchedulePayload) error {
	input, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule payload: %w", err)
	}

	// at() expressions take a local timestamp without zone; the schedule is
	// pinned to UTC explicitly.
	expression := fmt.Sprintf("at(%s)", at.UTC().Format("2006-01-02T15:04:05"))

	_, err = s.client.CreateSchedule(ctx, &scheduler.CreateScheduleInput{
		Name:                       aws.String(name),
		GroupName:                  aws.String(s.groupName),
		ScheduleExpression:         aws.String(expression),
		ScheduleExpressionTimezone: aws.String("UTC"),
		ActionAfterCompletion:      types.ActionAfterCompletionDelete,
		FlexibleTimeWindow: &types.FlexibleTimeWindow{
			Mode: types.FlexibleTimeWindowModeOff,
		},
		Target: &types.Target{
			Arn:     aws.String(s.targetArn),
			RoleArn: aws.String(s.roleArn),
			Input:   aws.String(string(input)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule %s: %w", name, err)
	}

	s.logger.Info("reminder schedule created",
		zap.String("schedule", name),
		zap.Time("at", at),
	)
	return nil
}

// DeleteSchedule removes a registered schedule.
func (s *ReminderScheduler) DeleteSchedule(ctx context.Context, name string) error {
	_, err := s.client.DeleteSchedule(ctx, &scheduler.DeleteScheduleInput{
		Name:      aws.String(name),
		GroupName: aws.String(s.groupName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete schedule %s: %w", name, err)
	}
	return nil
}
