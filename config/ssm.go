package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// parameterLister is the slice of the SSM client used here
type parameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSM overlays every parameter under SSM_PARAMETER_PATH onto the config.
// It does nothing when the path is not configured.
func (c *Config) LoadSSM(ctx context.Context) error {
	path := GetString(c, "SSM_PARAMETER_PATH", "")
	if path == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(GetString(c, "AWS_REGION", "us-east-1")))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	values, err := fetchParameters(ctx, ssm.NewFromConfig(awsCfg), path)
	if err != nil {
		return err
	}

	c.Overlay(values)
	log.Info().Str("path", path).Int("count", len(values)).Msg("Loaded parameters from SSM")
	return nil
}

// fetchParameters returns the parameters under path keyed by the last segment
// of their name, so /portfolio/prod/JWT_SECRET becomes JWT_SECRET.
func fetchParameters(ctx context.Context, client parameterLister, path string) (map[string]string, error) {
	values := map[string]string{}
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get parameters by path %s: %w", path, err)
		}
		for _, param := range page.Parameters {
			name := aws.ToString(param.Name)
			key := name[strings.LastIndex(name, "/")+1:]
			if key == "" {
				continue
			}
			values[key] = aws.ToString(param.Value)
		}
	}
	return values, nil
}
