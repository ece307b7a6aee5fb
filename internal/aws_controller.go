package internal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cloudwatchtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fleetwise-io/ecsautoscalr/internal/ifaces"
)

const taskStatusStopped = "STOPPED"

// AWSController implements ControllerInterface against CloudWatch and ECS.
type AWSController struct {
	Controller

	// Clients.
	CloudWatch ifaces.CloudWatch
	ECS        ifaces.ECS

	// Configuration.
	ECSCluster      string
	ECSService      string
	MetricNamespace string
	MetricName      string
}

// NewAWSController creates a new AWS controller instance, resolving the
// Slack webhook from SSM Parameter Store when configured that way.
func NewAWSController(ctx context.Context, cfg *RuntimeConfig, logger *slog.Logger) (*AWSController, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("could not load AWS configuration: %w", err)
	}

	otelaws.AppendMiddlewares(&awsConfig.APIOptions)

	webhook := resolveSlackWebhook(ctx, ssm.NewFromConfig(awsConfig), cfg, logger)

	return &AWSController{
		Controller: Controller{
			HTTP:            newSlackHTTPClient(),
			SlackWebhookURL: webhook,
			Tracer:          otel.Tracer("github.com/fleetwise-io/ecsautoscalr/internal/controller"),
		},
		CloudWatch:      cloudwatch.NewFromConfig(awsConfig),
		ECS:             ecs.NewFromConfig(awsConfig),
		ECSCluster:      cfg.ECSCluster,
		ECSService:      cfg.ECSService,
		MetricNamespace: cfg.MetricNamespace,
		MetricName:      cfg.MetricName,
	}, nil
}

// resolveSlackWebhook prefers the plain environment variable, then the SSM
// parameter. Notification delivery is best-effort, so a failed SSM lookup
// only disables notifications for the cycle; it never blocks scaling or
// healing.
func resolveSlackWebhook(ctx context.Context, client ifaces.SSM, cfg *RuntimeConfig, logger *slog.Logger) string {
	if cfg.SlackWebhookURL != "" {
		return cfg.SlackWebhookURL
	}

	if cfg.SlackWebhookSSMParam == "" {
		return ""
	}

	output, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.SlackWebhookSSMParam),
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		logger.Warn("could not get Slack webhook from SSM, notifications disabled",
			"parameter", cfg.SlackWebhookSSMParam,
			"error", err,
		)
		return ""
	}

	if output.Parameter == nil || output.Parameter.Value == nil {
		logger.Warn("could not find Slack webhook value in SSM, notifications disabled",
			"parameter", cfg.SlackWebhookSSMParam,
		)
		return ""
	}

	return *output.Parameter.Value
}

// FetchMetricSeries returns the Average statistic of the configured metric
// for the service, ordered oldest-first. CloudWatch does not guarantee
// datapoint ordering, so the series is sorted by timestamp here.
func (c *AWSController) FetchMetricSeries(ctx context.Context, start, end time.Time, period time.Duration) (series []float64, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.cloudwatch.getmetricstatistics")
	defer span.End()

	var output *cloudwatch.GetMetricStatisticsOutput

	output, err = c.CloudWatch.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(c.MetricNamespace),
		MetricName: aws.String(c.MetricName),
		Dimensions: []cloudwatchtypes.Dimension{
			{Name: aws.String("ClusterName"), Value: aws.String(c.ECSCluster)},
			{Name: aws.String("ServiceName"), Value: aws.String(c.ECSService)},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(int32(period.Seconds())),
		Statistics: []cloudwatchtypes.Statistic{cloudwatchtypes.StatisticAverage},
	})

	if err != nil {
		err = fmt.Errorf("could not fetch metric statistics: %w", err)
		return nil, err
	}

	datapoints := output.Datapoints
	sort.Slice(datapoints, func(i, j int) bool {
		return aws.ToTime(datapoints[i].Timestamp).Before(aws.ToTime(datapoints[j].Timestamp))
	})

	for _, dp := range datapoints {
		if dp.Average == nil {
			continue
		}

		series = append(series, *dp.Average)
	}

	span.SetAttributes(attribute.Int("datapoints", len(series)))

	return series, nil
}

// DescribeService returns the desired and running counts of the service.
func (c *AWSController) DescribeService(ctx context.Context) (snapshot *ServiceSnapshot, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ecs.describeservice")
	defer span.End()

	var output *ecs.DescribeServicesOutput

	output, err = c.ECS.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(c.ECSCluster),
		Services: []string{c.ECSService},
	})

	if err != nil {
		err = fmt.Errorf("could not describe service: %w", err)
		return nil, err
	}

	if len(output.Services) == 0 {
		err = fmt.Errorf("could not find service %s in cluster %s", c.ECSService, c.ECSCluster)
		return nil, err
	}

	service := output.Services[0]

	span.SetAttributes(
		attribute.Int("desired_count", int(service.DesiredCount)),
		attribute.Int("running_count", int(service.RunningCount)),
	)

	return &ServiceSnapshot{
		DesiredCount: int(service.DesiredCount),
		RunningCount: int(service.RunningCount),
	}, nil
}

// ListTaskSummary counts the recently known task attempts for the service
// and how many of them report STOPPED. ListTasks filters on desired status
// and defaults to RUNNING, so stopped attempts have to be enumerated with
// their own query.
func (c *AWSController) ListTaskSummary(ctx context.Context) (summary *TaskSummary, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ecs.listtasksummary")
	defer span.End()

	var taskARNs []string

	for _, status := range []ecstypes.DesiredStatus{ecstypes.DesiredStatusRunning, ecstypes.DesiredStatusStopped} {
		var listed *ecs.ListTasksOutput

		listed, err = c.ECS.ListTasks(ctx, &ecs.ListTasksInput{
			Cluster:       aws.String(c.ECSCluster),
			ServiceName:   aws.String(c.ECSService),
			DesiredStatus: status,
		})

		if err != nil {
			err = fmt.Errorf("could not list %s tasks: %w", status, err)
			return nil, err
		}

		taskARNs = append(taskARNs, listed.TaskArns...)
	}

	if len(taskARNs) == 0 {
		return &TaskSummary{}, nil
	}

	var described *ecs.DescribeTasksOutput

	described, err = c.ECS.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: aws.String(c.ECSCluster),
		Tasks:   taskARNs,
	})

	if err != nil {
		err = fmt.Errorf("could not describe tasks: %w", err)
		return nil, err
	}

	stopped := 0
	for _, task := range described.Tasks {
		if aws.ToString(task.LastStatus) == taskStatusStopped {
			stopped++
		}
	}

	span.SetAttributes(
		attribute.Int("total_tasks", len(taskARNs)),
		attribute.Int("stopped_tasks", stopped),
	)

	return &TaskSummary{
		TotalKnownTasks:  len(taskARNs),
		StoppedTaskCount: stopped,
	}, nil
}

// SetDesiredCount updates the service's desired task count. The call is
// fire-and-forget: ECS converges eventually, and the next cycle observes the
// outcome.
func (c *AWSController) SetDesiredCount(ctx context.Context, count int) (err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ecs.setdesiredcount")
	defer span.End()

	span.SetAttributes(attribute.Int("desired_count", count))

	_, err = c.ECS.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:      aws.String(c.ECSCluster),
		Service:      aws.String(c.ECSService),
		DesiredCount: aws.Int32(int32(count)),
	})

	if err != nil {
		err = fmt.Errorf("could not update desired count: %w", err)
		return err
	}

	return nil
}

// ForceRedeploy forces a new deployment of the service, replacing all of its
// tasks with fresh ones.
func (c *AWSController) ForceRedeploy(ctx context.Context) (err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ecs.forceredeploy")
	defer span.End()

	_, err = c.ECS.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:            aws.String(c.ECSCluster),
		Service:            aws.String(c.ECSService),
		ForceNewDeployment: true,
	})

	if err != nil {
		err = fmt.Errorf("could not force new deployment: %w", err)
		return err
	}

	return nil
}
