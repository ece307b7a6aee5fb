package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// CloudWatch is an interface which mocks the subset of the CloudWatch client
// that we use in the controller.
//
//go:generate mockery --inpackage --name CloudWatch --filename mock_cloudwatch.go
type CloudWatch interface {
	GetMetricStatistics(context.Context, *cloudwatch.GetMetricStatisticsInput, ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}
