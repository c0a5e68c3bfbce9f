package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := FromMap(map[string]string{
		"PORT":               "9090",
		"READ_TIMEOUT":       "oops",
		"ENFORCE_ADMIN_AUTH": "true",
		"ACCEPTED_ORIGINS":   "https://a.example, ,https://b.example",
	})

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	assert.Equal(t, 24, GetInt(c, "JWT_TTL_HOURS", 1), "defaults table applies")
	assert.Equal(t, 7, GetInt(c, "READ_TIMEOUT", 7), "unparsable ints fall back")
	assert.True(t, GetBool(c, "ENFORCE_ADMIN_AUTH", false))
	assert.Equal(t, 180*time.Second, GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 1))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(c, "ACCEPTED_ORIGINS"))
	assert.Empty(t, GetList(c, "NOTHING"))
}

func TestNilConfigUsesDefaults(t *testing.T) {
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))
	assert.Equal(t, 3, GetInt(nil, "PORT", 3))
	assert.False(t, GetBool(nil, "PORT", false))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "debug")

	c := New()
	assert.Equal(t, "7000", GetString(c, "PORT", ""))
	assert.Equal(t, "debug", GetString(c, "LOG_LEVEL", ""))

	c.Overlay(map[string]string{"PORT": "7001"})
	assert.Equal(t, "7001", GetString(c, "PORT", ""))
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[f.calls]}
	f.calls++
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestFetchParameters(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/portfolio/prod/db/DATABASE_URL"), Value: aws.String("postgres://x")}},
	}}

	values, err := fetchParameters(context.Background(), client, "/portfolio/prod")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"JWT_SECRET":   "s3cret",
		"DATABASE_URL": "postgres://x",
	}, values)
	assert.Equal(t, 2, client.calls)
}

func TestFetchParametersError(t *testing.T) {
	_, err := fetchParameters(context.Background(), &fakeSSM{err: errors.New("denied")}, "/p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestLoadSSMWithoutPathIsNoop(t *testing.T) {
	c := FromMap(nil)
	require.NoError(t, c.LoadSSM(context.Background()))
}
